package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apoi01/risyusupport/config"
	"github.com/apoi01/risyusupport/internal/dto"
	"github.com/apoi01/risyusupport/internal/service"
	"github.com/apoi01/risyusupport/pkg/response"
)

// weekdayChoices 検索フォームの曜日プルダウン
var weekdayChoices = []string{"月", "火", "水", "木", "金", "土", "日"}

// CourseHandler 講義検索の HTTP 処理
type CourseHandler struct {
	appTitle  string
	courseSvc service.CourseService
}

// NewCourseHandler CourseHandler を作成する
func NewCourseHandler(cfg *config.Config, courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{appTitle: cfg.Server.Title, courseSvc: courseSvc}
}

// Index 講義一覧 + 検索フォーム
// GET /
func (h *CourseHandler) Index(c *gin.Context) {
	var req dto.CourseSearchRequest
	// 不正なクエリでも検索自体は続行する（フィルタなしへ縮退）
	_ = c.ShouldBindQuery(&req)

	result, err := h.courseSvc.Search(c.Request.Context(), &req)
	if err != nil {
		c.String(http.StatusInternalServerError, "サーバ内部エラー")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":    h.appTitle + "｜講義一覧",
		"AppTitle": h.appTitle,
		"Active":   "index",
		"Flashes":  takeFlashes(c),
		"Query":    req,
		"Result":   result,
		"Weekdays": weekdayChoices,
	})
}

// Search 講義検索 API
// GET /api/v1/courses
func (h *CourseHandler) Search(c *gin.Context) {
	var req dto.CourseSearchRequest
	_ = c.ShouldBindQuery(&req)

	result, err := h.courseSvc.Search(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
