package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/apoi01/risyusupport/internal/dto"
	"github.com/apoi01/risyusupport/internal/repository"
	"github.com/apoi01/risyusupport/pkg/normalize"
)

// validWeekdays 曜日フィルタで受け付けるトークン
// これ以外の値は「フィルタなし」に縮退する
var validWeekdays = map[string]bool{
	"月": true, "火": true, "水": true, "木": true,
	"金": true, "土": true, "日": true,
}

// CourseService 講義検索の業務インターフェース
type CourseService interface {
	// Search 検索条件を正規化して講義を検索し、お気に入り判定と
	// フィルタ選択肢（学部・開講時期）を付与して返す
	Search(ctx context.Context, req *dto.CourseSearchRequest) (*dto.CourseSearchResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService CourseService を作成する
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

func (s *courseService) Search(ctx context.Context, req *dto.CourseSearchRequest) (*dto.CourseSearchResponse, error) {
	filter := buildCourseFilter(req)

	courses, err := s.repo.Course.Search(ctx, filter)
	if err != nil {
		s.logger.Error("講義検索に失敗", zap.Error(err))
		return nil, err
	}

	// お気に入り判定の付与
	favIDs, err := s.repo.Favorite.ListCourseIDs(ctx)
	if err != nil {
		s.logger.Error("お気に入り一覧の取得に失敗", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		c := &courses[i]
		result = append(result, dto.CourseResponse{
			ID:               c.ID,
			Title:            c.Title,
			ExternalCode:     c.ExternalCode,
			Term:             c.Term,
			Instructor:       c.Instructor,
			Faculty:          c.Faculty,
			WeekdayPeriod:    c.WeekdayPeriod,
			EvaluationMethod: c.EvaluationMethod,
			IsFavorite:       favIDs[c.ID],
		})
	}

	// プルダウン選択肢
	faculties, err := s.repo.Course.ListFaculties(ctx)
	if err != nil {
		s.logger.Error("学部一覧の取得に失敗", zap.Error(err))
		return nil, err
	}
	terms, err := s.repo.Course.ListTerms(ctx)
	if err != nil {
		s.logger.Error("開講時期一覧の取得に失敗", zap.Error(err))
		return nil, err
	}

	return &dto.CourseSearchResponse{
		Courses:   result,
		Total:     len(result),
		Faculties: faculties,
		Terms:     terms,
	}, nil
}

// buildCourseFilter 検索リクエストを型付きフィルタへ変換する
// 不正な入力はエラーにせず、その条件を外すか素の部分一致へ縮退させる
func buildCourseFilter(req *dto.CourseSearchRequest) *repository.CourseFilter {
	if req == nil {
		return &repository.CourseFilter{}
	}

	weekday := strings.TrimSpace(req.Weekday)
	if !validWeekdays[weekday] {
		weekday = ""
	}

	return &repository.CourseFilter{
		Keyword: normalize.Z2H(strings.TrimSpace(req.Keyword)),
		Faculty: strings.TrimSpace(req.Faculty),
		Term:    strings.TrimSpace(req.Term),
		Weekday: weekday,
		Period:  normalizePeriod(req.Period),
	}
}

// normalizePeriod 時限入力の表記ゆれを吸収する
// 全角→半角のうえ末尾の単位「限」を落とし、ダッシュ類をハイフンに揃える
// （例: 「３限」→「3」、「3−4」→「3-4」）
func normalizePeriod(period string) string {
	p := normalize.Z2H(strings.TrimSpace(period))
	p = strings.TrimSuffix(p, "限")
	replacer := strings.NewReplacer("－", "-", "—", "-", "–", "-")
	return replacer.Replace(p)
}
