package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/apoi01/risyusupport/internal/dto"
	"github.com/apoi01/risyusupport/internal/repository"
)

// FavoriteService お気に入り（マイページ）の業務インターフェース
type FavoriteService interface {
	// Add 講義をお気に入りに追加する。冪等
	// 講義の存在は検証しない（孤児参照は許容。判定は UNIQUE 制約に委ねる）
	Add(ctx context.Context, courseID uint) error
	// Remove お気に入りから外す。未登録なら何もしない
	Remove(ctx context.Context, courseID uint) error
	// BulkAdd カンマ区切りの講義 ID 列をまとめて追加する
	// 整数に解釈できないトークンは黙って捨て、整形済み ID の件数を返す
	// （重複や登録済みも件数に含める）
	BulkAdd(ctx context.Context, ids string) (int, error)
	// Clear お気に入りを全件削除する
	Clear(ctx context.Context) error
	// List お気に入りの講義を検索結果と同じ並び順で返す
	List(ctx context.Context) (*dto.FavoriteListResponse, error)
}

type favoriteService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFavoriteService FavoriteService を作成する
func NewFavoriteService(repo *repository.Repository, logger *zap.Logger) FavoriteService {
	return &favoriteService{repo: repo, logger: logger}
}

func (s *favoriteService) Add(ctx context.Context, courseID uint) error {
	if err := s.repo.Favorite.Add(ctx, courseID); err != nil {
		s.logger.Error("お気に入り追加に失敗", zap.Uint("course_id", courseID), zap.Error(err))
		return err
	}
	return nil
}

func (s *favoriteService) Remove(ctx context.Context, courseID uint) error {
	if err := s.repo.Favorite.Remove(ctx, courseID); err != nil {
		s.logger.Error("お気に入り削除に失敗", zap.Uint("course_id", courseID), zap.Error(err))
		return err
	}
	return nil
}

func (s *favoriteService) BulkAdd(ctx context.Context, ids string) (int, error) {
	parsed := parseIDList(ids)
	for _, id := range parsed {
		if err := s.repo.Favorite.Add(ctx, id); err != nil {
			s.logger.Error("一括追加に失敗", zap.Uint("course_id", id), zap.Error(err))
			return 0, err
		}
	}
	return len(parsed), nil
}

func (s *favoriteService) Clear(ctx context.Context) error {
	if err := s.repo.Favorite.Clear(ctx); err != nil {
		s.logger.Error("お気に入り全削除に失敗", zap.Error(err))
		return err
	}
	return nil
}

func (s *favoriteService) List(ctx context.Context) (*dto.FavoriteListResponse, error) {
	courses, err := s.repo.Favorite.ListCourses(ctx)
	if err != nil {
		s.logger.Error("マイページ一覧の取得に失敗", zap.Error(err))
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
			IsFavorite:       true,
		})
	}

	return &dto.FavoriteListResponse{Courses: result, Total: len(result)}, nil
}

// parseIDList カンマ区切りの ID 列を解析する
// 空要素・整数でないトークンは読み飛ばす
func parseIDList(ids string) []uint {
	if strings.TrimSpace(ids) == "" {
		return nil
	}
	var result []uint
	for _, token := range strings.Split(ids, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(token), 10, 32)
		if err != nil {
			continue
		}
		result = append(result, uint(n))
	}
	return result
}
