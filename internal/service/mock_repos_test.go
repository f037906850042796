package service

import (
	"context"
	"sort"
	"strings"

	"github.com/apoi01/risyusupport/internal/model"
	"github.com/apoi01/risyusupport/internal/repository"
)

// ── Mock CourseRepository ──

// mockCourseRepo 実リポジトリと同じ絞り込み・並び順をメモリ上で再現する
type mockCourseRepo struct {
	courses []model.Course
	nextID  uint
	// searchErr を設定すると Search が失敗する
	searchErr error
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{nextID: 1}
}

func (m *mockCourseRepo) Search(_ context.Context, filter *repository.CourseFilter) ([]model.Course, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}

	var result []model.Course
	for _, c := range m.courses {
		if filter != nil {
			if filter.Keyword != "" &&
				!strings.Contains(c.Title, filter.Keyword) &&
				!strings.Contains(c.Instructor, filter.Keyword) &&
				!strings.Contains(c.EvaluationMethod, filter.Keyword) {
				continue
			}
			if filter.Faculty != "" && c.Faculty != filter.Faculty {
				continue
			}
			if filter.Term != "" && c.Term != filter.Term {
				continue
			}
			if filter.Weekday != "" && !strings.HasPrefix(c.WeekdayPeriod, filter.Weekday) {
				continue
			}
			if filter.Period != "" && !strings.Contains(c.WeekdayPeriod, filter.Period) {
				continue
			}
		}
		result = append(result, c)
	}

	sortCourses(result)
	return result, nil
}

func (m *mockCourseRepo) BatchCreateSkipDuplicates(_ context.Context, courses []model.Course) error {
	for _, c := range courses {
		// 時間割コードの UNIQUE 制約を再現（先勝ち）
		dup := false
		for _, existing := range m.courses {
			if existing.ExternalCode == c.ExternalCode {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		c.ID = m.nextID
		m.nextID++
		m.courses = append(m.courses, c)
	}
	return nil
}

func (m *mockCourseRepo) ListFaculties(_ context.Context) ([]string, error) {
	return m.distinct(func(c model.Course) string { return c.Faculty }), nil
}

func (m *mockCourseRepo) ListTerms(_ context.Context) ([]string, error) {
	return m.distinct(func(c model.Course) string { return c.Term }), nil
}

func (m *mockCourseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.courses)), nil
}

func (m *mockCourseRepo) distinct(key func(model.Course) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, c := range m.courses {
		v := key(c)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// sortCourses 開講学部→開講時期→曜日時限→講義名 の昇順
func sortCourses(courses []model.Course) {
	sort.Slice(courses, func(i, j int) bool {
		a, b := courses[i], courses[j]
		if a.Faculty != b.Faculty {
			return a.Faculty < b.Faculty
		}
		if a.Term != b.Term {
			return a.Term < b.Term
		}
		if a.WeekdayPeriod != b.WeekdayPeriod {
			return a.WeekdayPeriod < b.WeekdayPeriod
		}
		return a.Title < b.Title
	})
}

// ── Mock FavoriteRepository ──

type mockFavoriteRepo struct {
	favorites map[uint]bool
	courses   *mockCourseRepo
	// addErr を設定すると Add が失敗する
	addErr error
}

func newMockFavoriteRepo(courses *mockCourseRepo) *mockFavoriteRepo {
	return &mockFavoriteRepo{favorites: make(map[uint]bool), courses: courses}
}

func (m *mockFavoriteRepo) Add(_ context.Context, courseID uint) error {
	if m.addErr != nil {
		return m.addErr
	}
	// UNIQUE 制約相当: 既にあれば何もしない
	m.favorites[courseID] = true
	return nil
}

func (m *mockFavoriteRepo) Remove(_ context.Context, courseID uint) error {
	delete(m.favorites, courseID)
	return nil
}

func (m *mockFavoriteRepo) Clear(_ context.Context) error {
	m.favorites = make(map[uint]bool)
	return nil
}

func (m *mockFavoriteRepo) ListCourseIDs(_ context.Context) (map[uint]bool, error) {
	set := make(map[uint]bool, len(m.favorites))
	for id := range m.favorites {
		set[id] = true
	}
	return set, nil
}

func (m *mockFavoriteRepo) ListCourses(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses.courses {
		if m.favorites[c.ID] {
			result = append(result, c)
		}
	}
	sortCourses(result)
	return result, nil
}
