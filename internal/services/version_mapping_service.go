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

// VersionMappingService manages mobile support apps and their version
// mappings. mobile_version_code is never taken from input.
type VersionMappingService struct {
	repo   *repositories.MobileVersionRepository
	compat *CompatibilityService
}

func NewVersionMappingService(repo *repositories.MobileVersionRepository, compat *CompatibilityService) *VersionMappingService {
	return &VersionMappingService{repo: repo, compat: compat}
}

func (s *VersionMappingService) ListApps(ctx context.Context) ([]gormModels.MobileSupportApp, error) {
	return s.repo.ListApps(ctx)
}

func (s *VersionMappingService) CreateApp(ctx context.Context, req dtos.MobileSupportAppReq) (*gormModels.MobileSupportApp, error) {
	req.Name = common.SanitizeText(req.Name)
	req.PackageName = strings.TrimSpace(req.PackageName)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.PackageNameExists(ctx, req.PackageName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("package %s: %w", req.PackageName, ErrConflict)
	}

	app := &gormModels.MobileSupportApp{
		Name:        req.Name,
		PackageName: req.PackageName,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.CreateApp(ctx, app); err != nil {
		return nil, err
	}
	logging.Info("Mobile app created", "mobile_app_id", app.ID, "package_name", app.PackageName)
	return app, nil
}

func (s *VersionMappingService) ListMappings(ctx context.Context, appID uint) ([]gormModels.MobileVersionMapping, error) {
	if _, err := s.requireApp(ctx, appID); err != nil {
		return nil, err
	}
	return s.repo.ListMappings(ctx, appID)
}

func (s *VersionMappingService) GetMapping(ctx context.Context, id uint) (*gormModels.MobileVersionMapping, error) {
	m, err := s.repo.GetMapping(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("version mapping %d: %w", id, ErrNotFound)
	}
	return m, nil
}

func (s *VersionMappingService) CreateMapping(ctx context.Context, appID uint, req dtos.VersionMappingReq) (*gormModels.MobileVersionMapping, error) {
	if err := validateMappingReq(&req); err != nil {
		return nil, err
	}
	if _, err := s.requireApp(ctx, appID); err != nil {
		return nil, err
	}

	m := &gormModels.MobileVersionMapping{MobileAppID: appID}
	applyMappingReq(m, req)
	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return nil, versionError("mobile_version", err)
	}

	s.compat.InvalidateApp(ctx, appID)
	logging.Info("Version mapping created",
		"id", m.ID, "mobile_app_id", appID, "mobile_version", m.MobileVersion, "code", m.MobileVersionCode)
	return m, nil
}

func (s *VersionMappingService) UpdateMapping(ctx context.Context, id uint, req dtos.VersionMappingReq) (*gormModels.MobileVersionMapping, error) {
	if err := validateMappingReq(&req); err != nil {
		return nil, err
	}

	m, err := s.GetMapping(ctx, id)
	if err != nil {
		return nil, err
	}
	applyMappingReq(m, req)

	ok, err := s.repo.UpdateMapping(ctx, m)
	if err != nil {
		return nil, versionError("mobile_version", err)
	}
	if !ok {
		return nil, fmt.Errorf("version mapping %d: %w", id, ErrNotFound)
	}

	s.compat.InvalidateApp(ctx, m.MobileAppID)
	logging.Info("Version mapping updated",
		"id", m.ID, "mobile_app_id", m.MobileAppID, "mobile_version", m.MobileVersion, "code", m.MobileVersionCode)
	return m, nil
}

func (s *VersionMappingService) requireApp(ctx context.Context, appID uint) (*gormModels.MobileSupportApp, error) {
	app, err := s.repo.GetApp(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("mobile app %d: %w", appID, ErrNotFound)
	}
	return app, nil
}

// validateMappingReq also parses the version so a bad value is reported as
// a field error before anything is written.
func validateMappingReq(req *dtos.VersionMappingReq) error {
	req.MobileVersion = strings.TrimSpace(req.MobileVersion)
	req.MinimumPluginVersion = strings.TrimSpace(req.MinimumPluginVersion)
	req.LatestPluginVersion = strings.TrimSpace(req.LatestPluginVersion)
	if err := validateStruct(*req); err != nil {
		return err
	}
	if _, err := common.EncodeVersion(req.MobileVersion); err != nil {
		return versionError("mobile_version", err)
	}
	return nil
}

func applyMappingReq(m *gormModels.MobileVersionMapping, req dtos.VersionMappingReq) {
	m.MobileVersion = req.MobileVersion
	m.MinimumPluginVersion = req.MinimumPluginVersion
	m.LatestPluginVersion = req.LatestPluginVersion
	m.ForceUpdate = req.ForceUpdate
	m.IsActive = req.IsActive == nil || *req.IsActive
	if req.OptionalMessage != nil {
		m.OptionalMessage = common.NilIfEmpty(common.SanitizeText(*req.OptionalMessage))
	} else {
		m.OptionalMessage = nil
	}
}
