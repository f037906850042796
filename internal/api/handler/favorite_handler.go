package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/apoi01/risyusupport/config"
	"github.com/apoi01/risyusupport/internal/dto"
	"github.com/apoi01/risyusupport/internal/service"
	"github.com/apoi01/risyusupport/pkg/response"
)

// FavoriteHandler お気に入り（マイページ）の HTTP 処理
type FavoriteHandler struct {
	appTitle string
	favSvc   service.FavoriteService
}

// NewFavoriteHandler FavoriteHandler を作成する
func NewFavoriteHandler(cfg *config.Config, favSvc service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{appTitle: cfg.Server.Title, favSvc: favSvc}
}

// ── HTML 画面 ──

// Favorite お気に入りに追加して元の画面へ戻る
// POST /favorite/:id
func (h *FavoriteHandler) Favorite(c *gin.Context) {
	id, err := parseCourseID(c.Param("id"))
	if err != nil {
		addFlash(c, "不正な講義IDです。")
		redirectBack(c, "/")
		return
	}

	if err := h.favSvc.Add(c.Request.Context(), id); err != nil {
		// ストア障害は一時的なメッセージとして画面に出す。自動リトライはしない
		addFlash(c, fmt.Sprintf("追加に失敗しました: %v", err))
	} else {
		addFlash(c, "マイページに追加しました。")
	}
	redirectBack(c, "/")
}

// Unfavorite お気に入りから外してマイページ文脈へ戻る
// POST /unfavorite/:id
func (h *FavoriteHandler) Unfavorite(c *gin.Context) {
	id, err := parseCourseID(c.Param("id"))
	if err != nil {
		addFlash(c, "不正な講義IDです。")
		redirectBack(c, "/mypage")
		return
	}

	if err := h.favSvc.Remove(c.Request.Context(), id); err != nil {
		addFlash(c, fmt.Sprintf("削除に失敗しました: %v", err))
	} else {
		addFlash(c, "マイページから外しました。")
	}
	redirectBack(c, "/mypage")
}

// BulkFav 選択した講義をまとめてお気に入りへ追加する
// POST /bulk-fav（フォームの ids はカンマ区切り）
func (h *FavoriteHandler) BulkFav(c *gin.Context) {
	ids := strings.TrimSpace(c.PostForm("ids"))
	if ids == "" {
		addFlash(c, "講義が選択されていません。")
		c.Redirect(http.StatusFound, "/")
		return
	}

	processed, err := h.favSvc.BulkAdd(c.Request.Context(), ids)
	if err != nil {
		addFlash(c, fmt.Sprintf("追加に失敗しました: %v", err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	addFlash(c, fmt.Sprintf("%d件をマイページに追加しました。", processed))
	c.Redirect(http.StatusFound, "/mypage")
}

// Mypage お気に入り一覧画面
// GET /mypage
func (h *FavoriteHandler) Mypage(c *gin.Context) {
	result, err := h.favSvc.List(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "サーバ内部エラー")
		return
	}

	c.HTML(http.StatusOK, "mypage.html", gin.H{
		"Title":    h.appTitle + "｜マイページ",
		"AppTitle": h.appTitle,
		"Active":   "mypage",
		"Flashes":  takeFlashes(c),
		"Result":   result,
	})
}

// ClearFavs お気に入りを全件削除する（確認はテンプレート側の confirm）
// POST /clear-favs
func (h *FavoriteHandler) ClearFavs(c *gin.Context) {
	if err := h.favSvc.Clear(c.Request.Context()); err != nil {
		addFlash(c, fmt.Sprintf("削除に失敗しました: %v", err))
	} else {
		addFlash(c, "マイページを空にしました。")
	}
	c.Redirect(http.StatusFound, "/mypage")
}

// ── JSON API ──

// List お気に入り一覧
// GET /api/v1/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	result, err := h.favSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Create お気に入り追加
// POST /api/v1/favorites
func (h *FavoriteHandler) Create(c *gin.Context) {
	var req dto.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗")
		return
	}

	if err := h.favSvc.Add(c.Request.Context(), req.CourseID); err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, nil)
}

// Delete お気に入り削除
// DELETE /api/v1/favorites/:id
func (h *FavoriteHandler) Delete(c *gin.Context) {
	id, err := parseCourseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, 10001, "講義IDが不正")
		return
	}

	if err := h.favSvc.Remove(c.Request.Context(), id); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// BulkCreate お気に入り一括追加
// POST /api/v1/favorites/bulk
func (h *FavoriteHandler) BulkCreate(c *gin.Context) {
	var req dto.BulkAddFavoritesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗")
		return
	}

	processed, err := h.favSvc.BulkAdd(c.Request.Context(), req.IDs)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, dto.BulkAddFavoritesResponse{Processed: processed})
}

// Clear お気に入り全削除
// DELETE /api/v1/favorites
func (h *FavoriteHandler) Clear(c *gin.Context) {
	if err := h.favSvc.Clear(c.Request.Context()); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ── 内部ヘルパ ──

// parseCourseID パスパラメータの講義 ID を解析する
func parseCourseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// redirectBack Referer へ戻す。無ければ fallback へ
func redirectBack(c *gin.Context, fallback string) {
	target := c.Request.Referer()
	if target == "" {
		target = fallback
	}
	c.Redirect(http.StatusFound, target)
}
