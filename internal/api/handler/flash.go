package handler

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// addFlash 次のリクエストで表示するフラッシュメッセージを積む
func addFlash(c *gin.Context, message string) {
	sess := sessions.Default(c)
	sess.AddFlash(message)
	_ = sess.Save()
}

// takeFlashes 積まれたフラッシュメッセージを取り出して消費する
func takeFlashes(c *gin.Context) []string {
	sess := sessions.Default(c)
	raw := sess.Flashes()
	if len(raw) > 0 {
		// Flashes は読み出しで消えるが、Cookie へ反映するには保存が要る
		_ = sess.Save()
	}

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}
