package service

import (
	"context"

	"github.com/octobees/recycling-finder/internal/dto"
	"github.com/octobees/recycling-finder/internal/entity"
	"github.com/octobees/recycling-finder/internal/repository"
)

// BusinessesService exposes read operations over the stored businesses.
type BusinessesService struct {
	repo repository.BusinessesRepository
}

// NewBusinessesService creates a new instance of BusinessesService.
func NewBusinessesService(repo repository.BusinessesRepository) *BusinessesService {
	return &BusinessesService{repo: repo}
}

// ListBusinesses returns stored businesses respecting pagination defaults.
func (s *BusinessesService) ListBusinesses(ctx context.Context, filter dto.BusinessFilter) ([]entity.StoredBusiness, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}
	return s.repo.List(ctx, filter)
}
