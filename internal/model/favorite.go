package model

// Favorite お気に入りテーブル（favorites）に対応するモデル
// ユーザは単一（暗黙）なので course_id のみで一意
type Favorite struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	CourseID uint `gorm:"uniqueIndex;not null" json:"course_id"`
}

// TableName テーブル名を指定
func (Favorite) TableName() string { return "favorites" }
