package model

// Course 講義テーブル（courses）に対応するモデル
// 行はカタログ投入時にのみ作られ、ユーザ操作では変更・削除されない
type Course struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Title 講義名
	Title string `gorm:"not null" json:"title"`
	// ExternalCode 時間割コード。投入時の重複排除キー（先勝ち）
	ExternalCode string `gorm:"uniqueIndex" json:"external_code"`
	// Term 開講時期（例: 春, 秋）
	Term string `gorm:"index" json:"term"`
	// Instructor 担当教員
	Instructor string `json:"instructor"`
	// Faculty 開講学部
	Faculty string `gorm:"index" json:"faculty"`
	// WeekdayPeriod 曜日時限（例: 月3-4）。自由記述の緩い形式
	WeekdayPeriod string `gorm:"index" json:"weekday_period"`
	// EvaluationMethod 評価方法（自由記述）
	EvaluationMethod string `json:"evaluation_method"`
}

// TableName テーブル名を指定
func (Course) TableName() string { return "courses" }
