package repository

import "gorm.io/gorm"

// Repository 全 Repository の集約
type Repository struct {
	Course   CourseRepository
	Favorite FavoriteRepository
}

// NewRepository Repository 集約を作成する
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Course:   NewCourseRepo(db),
		Favorite: NewFavoriteRepo(db),
	}
}
