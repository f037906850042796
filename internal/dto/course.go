package dto

// CourseSearchRequest 講義検索のクエリパラメータ
// すべて任意。不正値はエラーにせず「フィルタなし」へ縮退する
type CourseSearchRequest struct {
	// Keyword 講義名・担当教員・評価方法に対する部分一致キーワード
	Keyword string `form:"q"`
	// Faculty 開講学部の完全一致
	Faculty string `form:"faculty"`
	// Term 開講時期の完全一致
	Term string `form:"term"`
	// Weekday 曜日（月〜日のいずれか）。曜日時限の前方一致
	Weekday string `form:"weekday"`
	// Period 時限の自由記述（例: 3 / 3-4 / 3限）。曜日時限の部分一致
	Period string `form:"period"`
}

// CourseResponse 検索結果 1 件
type CourseResponse struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	ExternalCode     string `json:"external_code"`
	Term             string `json:"term"`
	Instructor       string `json:"instructor"`
	Faculty          string `json:"faculty"`
	WeekdayPeriod    string `json:"weekday_period"`
	EvaluationMethod string `json:"evaluation_method"`
	// IsFavorite 現在お気に入りに入っているか
	IsFavorite bool `json:"is_favorite"`
}

// CourseSearchResponse 検索結果 + フィルタ選択肢
type CourseSearchResponse struct {
	Courses []CourseResponse `json:"courses"`
	Total   int              `json:"total"`
	// Faculties プルダウン用の学部一覧（重複なし・昇順）
	Faculties []string `json:"faculties"`
	// Terms プルダウン用の開講時期一覧（重複なし・昇順）
	Terms []string `json:"terms"`
}
