package service

import (
	"go.uber.org/zap"

	"github.com/apoi01/risyusupport/config"
	"github.com/apoi01/risyusupport/internal/repository"
)

// Service 全 Service の集約
type Service struct {
	Course   CourseService
	Favorite FavoriteService
	Ingest   IngestService
}

// NewService Service 集約を作成する
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		Course:   NewCourseService(repo, logger),
		Favorite: NewFavoriteService(repo, logger),
		Ingest:   NewIngestService(cfg.Catalog.Sources, repo, logger),
	}
}
