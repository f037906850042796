package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/apoi01/risyusupport/internal/model"
)

// FavoriteRepository お気に入りデータアクセスインターフェース
type FavoriteRepository interface {
	// Add 講義をお気に入りに追加する。既に存在する場合は何もしない（冪等）
	// 講義の存在チェックは行わない。同時実行は course_id の UNIQUE 制約で守る
	Add(ctx context.Context, courseID uint) error
	// Remove お気に入りを削除する。存在しなければ何もしない
	Remove(ctx context.Context, courseID uint) error
	// Clear お気に入りを全件削除する
	Clear(ctx context.Context) error
	// ListCourseIDs お気に入り中の講義 ID 集合を返す
	ListCourseIDs(ctx context.Context) (map[uint]bool, error)
	// ListCourses お気に入りの講義を courses と結合して
	// 開講学部→開講時期→曜日時限→講義名 の昇順で返す
	ListCourses(ctx context.Context) ([]model.Course, error)
}

type favoriteRepo struct {
	db *gorm.DB
}

// NewFavoriteRepo FavoriteRepository を作成する
func NewFavoriteRepo(db *gorm.DB) FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Add(ctx context.Context, courseID uint) error {
	fav := model.Favorite{CourseID: courseID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}},
			DoNothing: true,
		}).
		Create(&fav).Error
}

func (r *favoriteRepo) Remove(ctx context.Context, courseID uint) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&model.Favorite{}).Error
}

func (r *favoriteRepo) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.Favorite{}).Error
}

func (r *favoriteRepo) ListCourseIDs(ctx context.Context) (map[uint]bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *favoriteRepo) ListCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).Model(&model.Course{}).
		Joins("JOIN favorites ON favorites.course_id = courses.id").
		Order("faculty ASC, term ASC, weekday_period ASC, title ASC").
		Find(&courses).Error
	return courses, err
}
