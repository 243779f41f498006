package services

import (
	"context"
	"fmt"
	"strings"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/db/repositories"
	"appfiy/backoffice/internal/logging"
	"appfiy/backoffice/internal/models/dtos"
	gormModels "appfiy/backoffice/internal/models/gorm"
)

type LayoutTypeService struct {
	repo *repositories.LayoutTypeRepository
}

func NewLayoutTypeService(repo *repositories.LayoutTypeRepository) *LayoutTypeService {
	return &LayoutTypeService{repo: repo}
}

func (s *LayoutTypeService) List(ctx context.Context, withTrashed bool) ([]gormModels.LayoutType, error) {
	return s.repo.List(ctx, withTrashed)
}

func (s *LayoutTypeService) Get(ctx context.Context, id uint) (*gormModels.LayoutType, error) {
	row, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("layout type %d: %w", id, ErrNotFound)
	}
	return row, nil
}

// Create generates the slug from the name when none is given.
func (s *LayoutTypeService) Create(ctx context.Context, req dtos.LayoutTypeReq) (*gormModels.LayoutType, error) {
	name, slug, err := s.normalize(ctx, req, 0)
	if err != nil {
		return nil, err
	}

	row := &gormModels.LayoutType{Name: name, Slug: slug}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	logging.Info("Layout type created", "id", row.ID, "slug", row.Slug)
	return row, nil
}

func (s *LayoutTypeService) Update(ctx context.Context, id uint, req dtos.LayoutTypeReq) (*gormModels.LayoutType, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name, slug, err := s.normalize(ctx, req, id)
	if err != nil {
		return nil, err
	}
	row.Name, row.Slug = name, slug

	ok, err := s.repo.Update(ctx, row)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("layout type %d: %w", id, ErrNotFound)
	}
	logging.Info("Layout type updated", "id", id, "slug", slug)
	return row, nil
}

func (s *LayoutTypeService) Delete(ctx context.Context, id uint) error {
	ok, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("layout type %d: %w", id, ErrNotFound)
	}
	logging.Info("Layout type soft deleted", "id", id)
	return nil
}

// Restore brings back a soft-deleted layout type.
func (s *LayoutTypeService) Restore(ctx context.Context, id uint) (*gormModels.LayoutType, error) {
	ok, err := s.repo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("deleted layout type %d: %w", id, ErrNotFound)
	}
	logging.Info("Layout type restored", "id", id)
	return s.Get(ctx, id)
}

func (s *LayoutTypeService) normalize(ctx context.Context, req dtos.LayoutTypeReq, id uint) (string, string, error) {
	req.Name = common.SanitizeText(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := validateStruct(req); err != nil {
		return "", "", err
	}

	slug := req.Slug
	if slug == "" {
		slug = req.Name
	}
	slug = common.MakeSlug(slug, "layout")

	exists, err := s.repo.SlugExists(ctx, slug, id)
	if err != nil {
		return "", "", err
	}
	if exists {
		return "", "", &ValidationError{
			Fields: map[string]string{"slug": "has already been taken"},
			cause:  ErrConflict,
		}
	}
	return req.Name, slug, nil
}
