package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/db/repositories"
	"appfiy/backoffice/internal/logging"
	"appfiy/backoffice/internal/metrics"
	"appfiy/backoffice/internal/models/dtos"
	gormModels "appfiy/backoffice/internal/models/gorm"
)

// ThemeService assembles the page/component aggregate of a theme. The
// aggregate is cached and every write path calls Invalidate.
type ThemeService struct {
	repo            *repositories.ThemeRepository
	cache           common.CacheInterface
	metrics         *metrics.MetricsRegistry
	imagePublicPath string
	ttl             time.Duration
}

func NewThemeService(
	repo *repositories.ThemeRepository,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
	imagePublicPath string,
	ttl time.Duration,
) *ThemeService {
	return &ThemeService{
		repo:            repo,
		cache:           cache,
		metrics:         metricsReg,
		imagePublicPath: imagePublicPath,
		ttl:             ttl,
	}
}

func themeCacheKey(themeID uint) string {
	return string(constants.CachePrefixThemeView) + strconv.FormatUint(uint64(themeID), 10)
}

// Load returns the pages of a theme ordered by sort_order, each with its
// components ordered by sort_ordering. Soft-deleted pages are left out.
func (s *ThemeService) Load(ctx context.Context, themeID uint) (*dtos.ThemeView, error) {
	view, hit, err := common.GetOrLoad(ctx, s.cache, themeCacheKey(themeID), s.ttl,
		func(ctx context.Context) (*dtos.ThemeView, error) {
			return s.build(ctx, themeID)
		})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveCache(string(constants.CachePrefixThemeView), hit)
	return view, nil
}

func (s *ThemeService) build(ctx context.Context, themeID uint) (*dtos.ThemeView, error) {
	theme, err := s.repo.GetTheme(ctx, themeID)
	if err != nil {
		return nil, err
	}
	if theme == nil {
		return nil, fmt.Errorf("theme %d: %w", themeID, ErrNotFound)
	}

	pages, err := s.repo.ListPagesWithComponents(ctx, themeID)
	if err != nil {
		return nil, err
	}

	view := &dtos.ThemeView{
		ThemeID: theme.ID,
		Name:    theme.Name,
		Slug:    theme.Slug,
		Pages:   make([]dtos.ThemePageView, 0, len(pages)),
	}
	for i := range pages {
		view.Pages = append(view.Pages, s.pageView(&pages[i]))
	}
	return view, nil
}

func (s *ThemeService) pageView(p *gormModels.ThemePage) dtos.ThemePageView {
	issues := PageIssues(p)
	pv := dtos.ThemePageView{
		ThemePageID:             p.ID,
		Slug:                    p.Slug,
		Name:                    p.Name,
		SortOrder:               p.SortOrder,
		PersistentFooterButtons: p.PersistentFooterButtons,
		ScreenStatus:            p.ScreenStatus,
		StaticScreenMessage:     p.StaticScreenMessage,
		StaticScreenImage:       p.StaticScreenImage,
		StaticScreenImageURL:    common.JoinPublicPath(s.imagePublicPath, common.StringValue(p.StaticScreenImage)),
		Complete:                len(issues) == 0,
		Issues:                  issues,
		Components:              make([]dtos.ThemeComponentView, 0, len(p.Components)),
	}
	for _, c := range p.Components {
		pv.Components = append(pv.Components, dtos.ThemeComponentView{
			ID:             c.ID,
			DisplayName:    c.DisplayName,
			Selected:       c.Selected,
			SortOrdering:   c.SortOrdering,
			CloneComponent: c.CloneComponent,
		})
	}
	return pv
}

// PageIssues lists what keeps a page configuration from being complete.
// A static page without an image is incomplete.
func PageIssues(p *gormModels.ThemePage) []string {
	var issues []string
	if !p.ScreenStatus.Valid() {
		issues = append(issues, fmt.Sprintf("unknown screen_status %q", p.ScreenStatus))
	}
	if p.ScreenStatus == constants.ScreenStatusStatic && common.StringValue(p.StaticScreenImage) == "" {
		issues = append(issues, constants.MsgStaticImageRequired)
	}
	return issues
}

// Invalidate drops the cached aggregate of a theme.
func (s *ThemeService) Invalidate(ctx context.Context, themeID uint) {
	if err := s.cache.Delete(ctx, themeCacheKey(themeID)); err != nil {
		logging.Warn("Failed to invalidate theme cache", "theme_id", themeID, "error", err.Error())
	}
}

// DeletePage soft deletes a theme page.
func (s *ThemeService) DeletePage(ctx context.Context, pageID uint) error {
	page, err := s.repo.GetPage(ctx, pageID)
	if err != nil {
		return err
	}
	if page == nil {
		return fmt.Errorf("theme page %d: %w", pageID, ErrNotFound)
	}

	ok, err := s.repo.SoftDeletePage(ctx, pageID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("theme page %d: %w", pageID, ErrNotFound)
	}

	s.Invalidate(ctx, page.ThemeID)
	logging.Info("Theme page soft deleted", "theme_page_id", pageID, "theme_id", page.ThemeID)
	return nil
}
