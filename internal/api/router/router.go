package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apoi01/risyusupport/config"
	"github.com/apoi01/risyusupport/internal/api/handler"
	"github.com/apoi01/risyusupport/internal/api/middleware"
	"github.com/apoi01/risyusupport/internal/api/view"
)

// Setup Gin ルータを初期化して返す
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── グローバルミドルウェア ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))

	// フラッシュメッセージ用 Cookie セッション
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	r.Use(sessions.Sessions("risyusupport", store))

	// ── HTML テンプレート ──
	r.SetHTMLTemplate(view.Templates())

	// ── ヘルスチェック ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 画面 ──
	r.GET("/", h.Course.Index)
	r.GET("/mypage", h.Favorite.Mypage)
	r.POST("/favorite/:id", h.Favorite.Favorite)
	r.POST("/unfavorite/:id", h.Favorite.Unfavorite)
	r.POST("/bulk-fav", h.Favorite.BulkFav)
	r.POST("/clear-favs", h.Favorite.ClearFavs)

	// ── JSON API ──
	v1 := r.Group("/api/v1")
	{
		v1.GET("/courses", h.Course.Search)

		favorites := v1.Group("/favorites")
		{
			favorites.GET("", h.Favorite.List)
			favorites.POST("", h.Favorite.Create)
			favorites.POST("/bulk", h.Favorite.BulkCreate)
			favorites.DELETE("/:id", h.Favorite.Delete)
			favorites.DELETE("", h.Favorite.Clear)
		}
	}

	return r
}
