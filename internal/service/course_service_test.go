package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/apoi01/risyusupport/internal/dto"
	"github.com/apoi01/risyusupport/internal/model"
	"github.com/apoi01/risyusupport/internal/repository"
)

// ── テスト補助 ──

func setupTestCourseService() (CourseService, *mockCourseRepo, *mockFavoriteRepo) {
	courseRepo := newMockCourseRepo()
	favRepo := newMockFavoriteRepo(courseRepo)
	repo := &repository.Repository{
		Course:   courseRepo,
		Favorite: favRepo,
	}
	svc := NewCourseService(repo, zap.NewNop())
	return svc, courseRepo, favRepo
}

func seedCourses(t *testing.T, repo *mockCourseRepo, courses []model.Course) {
	t.Helper()
	if err := repo.BatchCreateSkipDuplicates(context.Background(), courses); err != nil {
		t.Fatalf("講義の投入に失敗: %v", err)
	}
}

// 4 件の固定データ。並び順の検証に使う
func orderingFixture() []model.Course {
	return []model.Course{
		{Title: "ミクロ経済学", ExternalCode: "B002", Term: "秋", Faculty: "経済", WeekdayPeriod: "火2"},
		{Title: "マーケティング論", ExternalCode: "A001", Term: "春", Faculty: "経営", WeekdayPeriod: "月3-4", Instructor: "鈴木", EvaluationMethod: "レポート"},
		{Title: "会計学", ExternalCode: "A002", Term: "秋", Faculty: "経営", WeekdayPeriod: "火3-4", Instructor: "佐藤", EvaluationMethod: "試験"},
		{Title: "マクロ経済学", ExternalCode: "B001", Term: "春", Faculty: "経済", WeekdayPeriod: "水1"},
	}
}

// ── Search ──

func TestCourseService_Search_NoFilter(t *testing.T) {
	svc, courseRepo, _ := setupTestCourseService()
	seedCourses(t, courseRepo, orderingFixture())

	result, err := svc.Search(context.Background(), &dto.CourseSearchRequest{})
	if err != nil {
		t.Fatalf("Search は成功すべき: %v", err)
	}
	if result.Total != 4 {
		t.Fatalf("期待 4 件、実際 %d 件", result.Total)
	}

	// 開講学部→開講時期→曜日時限→講義名 の昇順
	wantTitles := []string{"マーケティング論", "会計学", "マクロ経済学", "ミクロ経済学"}
	for i, want := range wantTitles {
		if result.Courses[i].Title != want {
			t.Errorf("位置 %d: 期待 %s、実際 %s", i, want, result.Courses[i].Title)
		}
	}
}

func TestCourseService_Search_Keyword(t *testing.T) {
	svc, courseRepo, _ := setupTestCourseService()
	seedCourses(t, courseRepo, orderingFixture())

	result, err := svc.Search(context.Background(), &dto.CourseSearchRequest{Keyword: "マーケ"})
	if err != nil {
		t.Fatalf("Search は成功すべき: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("期待 1 件、実際 %d 件", result.Total)
	}
	if result.Courses[0].Title != "マーケティング論" {
		t.Errorf("期待 マーケティング論、実際 %s", result.Courses[0].Title)
	}
}

func TestCourseService_Search_KeywordMatchesInstructorAndEvaluation(t *testing.T) {
	svc, courseRepo, _ := setupTestCourseService()
	seedCourses(t, courseRepo, orderingFixture())

	// 担当教員に一致
	result, err := svc.Search(context.Background(), &dto.CourseSearchRequest{Keyword: "鈴木"})
	if err != nil {
		t.Fatalf("Search は成功すべき: %v", err)
	}
	if result.Total != 1 || result.Courses[0].Title != "マーケティング論" {
		t.Errorf("教員名での一致に失敗: %+v", result.Courses)
	}

	// 評価方法に一致
	result, err = svc.Search(context.Background(), &dto.CourseSearchRequest{Keyword: "試験"})
	if err != nil {
		t.Fatalf("Search は成功すべき: %v", err)
	}
	if result.Total != 1 || result.Courses[0].Title != "会計学" {
		t.Errorf("評価方法での一致に失敗: %+v", result.Courses)
	}
}

func TestCourseService_Search_KeywordNormalized(t *testing.T) {
	svc, courseRepo, _ := setupTestCourseService()
	seedCourses(t, courseRepo, []model.Course{
		// 投入時に正規化済みの想定（半角で保存されている）
		{Title: "経営学A", ExternalCode: "C001", Term: "春", Faculty: "経営", WeekdayPeriod: "金1"},
	})

	// 全角キーワードでも半角に畳まれて一致する
	result, err := svc.Search(context.Background(), &dto.CourseSearchRequest{Keyword: "経営学Ａ"})
	if err != nil {
		t.Fatalf("Search は成功すべき: %v", err)
	}
	if result.Total != 1 {
		t.Errorf("全角キーワードが正規化されていない: %d 件", result.Total)
	}
}

func TestCourseService_Search_WeekdayAndPeriod(t *testing.T) {
	svc, courseRepo, _ := setupTestCourseService()
	seedCourses(t, courseRepo, orderingFixture())

	// 月3-4 は一致、火3-4 は曜日で除外される
	result, err := svc.Search(context.Background(), &dto.CourseSearchRequest{Weekday: "月", Period: "3"})
	if err != nil {
		t.Fatalf("Search は成功すべき: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("期待 1 件、実際 %d 件", result.Total)
	}
	if result.Courses[0].WeekdayPeriod != "月3-4" {
		t.Errorf("期待 月3-4、実際 %s", result.Courses[0].WeekdayPeriod)
	}
}

func TestCourseService_Search_InvalidWeekdayIgnored(t *testing.T) {
	svc, courseRepo, _ := setupTestCourseService()
	seedCourses(t, courseRepo, orderingFixture())

	// 曜日として解釈できない値はフィルタなしに縮退する
	result, err := svc.Search(context.Background(), &dto.CourseSearchRequest{Weekday: "祝"})
	if err != nil {
		t.Fatalf("Search は成功すべき: %v", err)
	}
	if result.Total != 4 {
		t.Errorf("不正な曜日は無視されるべき: %d 件", result.Total)
	}
}

func TestCourseService_Search_PeriodVariants(t *testing.T) {
	svc, courseRepo, _ := setupTestCourseService()
	seedCourses(t, courseRepo, orderingFixture())

	// 「３限」→「3」、「3−4」（ダッシュ類）→「3-4」に正規化される
	variants := []string{"3", "３", "3限", "３限"}
	for _, p := range variants {
		result, err := svc.Search(context.Background(), &dto.CourseSearchRequest{Weekday: "月", Period: p})
		if err != nil {
			t.Fatalf("Search は成功すべき: %v", err)
		}
		if result.Total != 1 {
			t.Errorf("period=%q: 期待 1 件、実際 %d 件", p, result.Total)
		}
	}
}

func TestCourseService_Search_Monotonicity(t *testing.T) {
	svc, courseRepo, _ := setupTestCourseService()
	seedCourses(t, courseRepo, orderingFixture())

	// 条件を足すほど結果は単調に狭まる
	steps := []dto.CourseSearchRequest{
		{},
		{Faculty: "経営"},
		{Faculty: "経営", Term: "秋"},
		{Faculty: "経営", Term: "秋", Weekday: "火"},
		{Faculty: "経営", Term: "秋", Weekday: "火", Period: "3"},
	}

	var prev int
	for i, req := range steps {
		result, err := svc.Search(context.Background(), &req)
		if err != nil {
			t.Fatalf("Search は成功すべき: %v", err)
		}
		if i > 0 && result.Total > prev {
			t.Errorf("ステップ %d で結果が増えた: %d → %d", i, prev, result.Total)
		}
		prev = result.Total
	}
}

func TestCourseService_Search_FavoriteAnnotation(t *testing.T) {
	svc, courseRepo, favRepo := setupTestCourseService()
	seedCourses(t, courseRepo, orderingFixture())

	if err := favRepo.Add(context.Background(), 2); err != nil {
		t.Fatalf("お気に入り追加に失敗: %v", err)
	}

	result, err := svc.Search(context.Background(), &dto.CourseSearchRequest{})
	if err != nil {
		t.Fatalf("Search は成功すべき: %v", err)
	}

	for _, c := range result.Courses {
		want := c.ID == 2
		if c.IsFavorite != want {
			t.Errorf("講義 %d: IsFavorite 期待 %v、実際 %v", c.ID, want, c.IsFavorite)
		}
	}
}

func TestCourseService_Search_Facets(t *testing.T) {
	svc, courseRepo, _ := setupTestCourseService()
	seedCourses(t, courseRepo, orderingFixture())

	result, err := svc.Search(context.Background(), &dto.CourseSearchRequest{})
	if err != nil {
		t.Fatalf("Search は成功すべき: %v", err)
	}

	wantFaculties := []string{"経営", "経済"}
	if len(result.Faculties) != len(wantFaculties) {
		t.Fatalf("学部一覧: 期待 %v、実際 %v", wantFaculties, result.Faculties)
	}
	for i, f := range wantFaculties {
		if result.Faculties[i] != f {
			t.Errorf("学部一覧[%d]: 期待 %s、実際 %s", i, f, result.Faculties[i])
		}
	}

	wantTerms := []string{"春", "秋"}
	if len(result.Terms) != 2 {
		t.Fatalf("開講時期一覧: 期待 %v、実際 %v", wantTerms, result.Terms)
	}
}

// ── normalizePeriod ──

func TestNormalizePeriod(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3", "3"},
		{"3限", "3"},
		{"３限", "3"},
		{"3-4", "3-4"},
		{"３－４", "3-4"},
		{"3—4", "3-4"}, // em ダッシュ
		{"3–4", "3-4"}, // en ダッシュ
		{" 3 ", "3"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalizePeriod(tc.in); got != tc.want {
			t.Errorf("normalizePeriod(%q) = %q, 期待 %q", tc.in, got, tc.want)
		}
	}
}
