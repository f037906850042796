package handler

import (
	"github.com/apoi01/risyusupport/config"
	"github.com/apoi01/risyusupport/internal/service"
)

// Handler 全 Handler の集約
type Handler struct {
	Course   *CourseHandler
	Favorite *FavoriteHandler
}

// NewHandler Handler 集約を作成する
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Course:   NewCourseHandler(cfg, svc.Course),
		Favorite: NewFavoriteHandler(cfg, svc.Favorite),
	}
}
