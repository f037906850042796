package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/apoi01/risyusupport/internal/model"
)

// CourseFilter 型付きの検索条件
// 値は Service 層で正規化済み。空フィールドは「条件なし」を意味し、
// 指定された条件は AND で結合される
type CourseFilter struct {
	// Keyword 講義名 / 担当教員 / 評価方法の部分一致
	Keyword string
	// Faculty 開講学部の完全一致
	Faculty string
	// Term 開講時期の完全一致
	Term string
	// Weekday 曜日時限の前方一致（月〜日のいずれか）
	Weekday string
	// Period 曜日時限の部分一致（正規化済みトークン）
	Period string
}

// CourseRepository 講義データアクセスインターフェース
type CourseRepository interface {
	// Search 条件に一致する講義を 開講学部→開講時期→曜日時限→講義名 の昇順で返す
	Search(ctx context.Context, filter *CourseFilter) ([]model.Course, error)
	// BatchCreateSkipDuplicates 講義を一括挿入する
	// 時間割コードが既存行と重複する行は黙ってスキップする（先勝ち）
	BatchCreateSkipDuplicates(ctx context.Context, courses []model.Course) error
	// ListFaculties 空でない開講学部の一覧（重複なし・昇順）
	ListFaculties(ctx context.Context) ([]string, error)
	// ListTerms 空でない開講時期の一覧（重複なし・昇順）
	ListTerms(ctx context.Context) ([]string, error)
	// Count 登録済み講義数
	Count(ctx context.Context) (int64, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo CourseRepository を作成する
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Search(ctx context.Context, filter *CourseFilter) ([]model.Course, error) {
	q := r.db.WithContext(ctx).Model(&model.Course{})

	if filter != nil {
		if filter.Keyword != "" {
			like := "%" + filter.Keyword + "%"
			q = q.Where("title LIKE ? OR instructor LIKE ? OR evaluation_method LIKE ?", like, like, like)
		}
		if filter.Faculty != "" {
			q = q.Where("faculty = ?", filter.Faculty)
		}
		if filter.Term != "" {
			q = q.Where("term = ?", filter.Term)
		}
		if filter.Weekday != "" {
			q = q.Where("weekday_period LIKE ?", filter.Weekday+"%")
		}
		if filter.Period != "" {
			q = q.Where("weekday_period LIKE ?", "%"+filter.Period+"%")
		}
	}

	var courses []model.Course
	err := q.Order("faculty ASC, term ASC, weekday_period ASC, title ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepo) BatchCreateSkipDuplicates(ctx context.Context, courses []model.Course) error {
	if len(courses) == 0 {
		return nil
	}
	// 時間割コードの UNIQUE 制約に委ねて重複を無視する（INSERT OR IGNORE 相当）
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_code"}},
			DoNothing: true,
		}).
		Create(&courses).Error
}

func (r *courseRepo) ListFaculties(ctx context.Context) ([]string, error) {
	var faculties []string
	err := r.db.WithContext(ctx).Model(&model.Course{}).
		Distinct("faculty").
		Where("faculty <> ''").
		Order("faculty ASC").
		Pluck("faculty", &faculties).Error
	return faculties, err
}

func (r *courseRepo) ListTerms(ctx context.Context) ([]string, error) {
	var terms []string
	err := r.db.WithContext(ctx).Model(&model.Course{}).
		Distinct("term").
		Where("term <> ''").
		Order("term ASC").
		Pluck("term", &terms).Error
	return terms, err
}

func (r *courseRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&count).Error
	return count, err
}
