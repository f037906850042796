package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apoi01/risyusupport/pkg/response"
)

// BodyLimit リクエストボディの大きさを全体で制限するミドルウェア
// maxBytes: 許容する最大バイト数（例: 1<<20 = 1MB）
// 一括追加フォームと JSON API は小さな入力しか受けないので十分に収まる
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "リクエストボディが大きすぎます")
				return
			}
		}
	}
}
