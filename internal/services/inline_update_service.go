package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/db/repositories"
	"appfiy/backoffice/internal/logging"
	"appfiy/backoffice/internal/metrics"
	"appfiy/backoffice/internal/models/dtos"
	gormModels "appfiy/backoffice/internal/models/gorm"
)

// valueParser turns the raw request value into the value written to the
// column. isChecked is only sent for checkbox fields.
type valueParser func(raw string, isChecked *string) (any, error)

type componentField struct {
	column string
	parse  valueParser
	read   func(c *gormModels.ThemeComponent) any
}

type pageField struct {
	column string
	parse  valueParser
	read   func(p *gormModels.ThemePage) any
}

// The only (entity, field) pairs that can be written inline. Anything else
// is rejected before the database is touched.
var (
	componentFields = map[string]componentField{
		constants.FieldDisplayName: {
			column: "display_name",
			parse:  parseDisplayName,
			read:   func(c *gormModels.ThemeComponent) any { return c.DisplayName },
		},
		constants.FieldCloneComponent: {
			column: "clone_component",
			parse:  parseOptionalText,
			read:   func(c *gormModels.ThemeComponent) any { return c.CloneComponent },
		},
		constants.FieldSelected: {
			column: "selected",
			parse:  parseChecked,
			read:   func(c *gormModels.ThemeComponent) any { return c.Selected },
		},
		constants.FieldSortOrdering: {
			column: "sort_ordering",
			parse:  parseInt,
			read:   func(c *gormModels.ThemeComponent) any { return c.SortOrdering },
		},
	}

	pageFields = map[string]pageField{
		constants.FieldPersistentFooterButtons: {
			column: "persistent_footer_buttons",
			parse:  parseNonNegativeInt,
			read:   func(p *gormModels.ThemePage) any { return p.PersistentFooterButtons },
		},
		constants.FieldSortOrder: {
			column: "sort_order",
			parse:  parseInt,
			read:   func(p *gormModels.ThemePage) any { return p.SortOrder },
		},
		constants.FieldScreenStatus: {
			column: "screen_status",
			parse:  parseScreenStatus,
			read:   func(p *gormModels.ThemePage) any { return p.ScreenStatus },
		},
		constants.FieldStaticScreenMessage: {
			column: "static_screen_message",
			parse:  parseOptionalText,
			read:   func(p *gormModels.ThemePage) any { return p.StaticScreenMessage },
		},
	}
)

// EditableFields lists the inline-editable field names of an entity kind.
func EditableFields(kind constants.EntityKind) []string {
	var out []string
	switch kind {
	case constants.EntityThemeComponent:
		for name := range componentFields {
			out = append(out, name)
		}
	case constants.EntityThemePage:
		for name := range pageFields {
			out = append(out, name)
		}
	}
	return out
}

type InlineUpdateService struct {
	repo    *repositories.ThemeRepository
	themes  *ThemeService
	metrics *metrics.MetricsRegistry
}

func NewInlineUpdateService(
	repo *repositories.ThemeRepository,
	themes *ThemeService,
	metricsReg *metrics.MetricsRegistry,
) *InlineUpdateService {
	return &InlineUpdateService{repo: repo, themes: themes, metrics: metricsReg}
}

// UpdateField writes exactly one column of one page or component and returns
// the value read back from the database.
func (s *InlineUpdateService) UpdateField(
	ctx context.Context,
	kind constants.EntityKind,
	id uint,
	field string,
	raw string,
	isChecked *string,
) (*dtos.InlineUpdateResult, error) {
	var (
		res *dtos.InlineUpdateResult
		err error
	)
	switch kind {
	case constants.EntityThemeComponent:
		res, err = s.updateComponent(ctx, id, field, raw, isChecked)
	case constants.EntityThemePage:
		res, err = s.updatePage(ctx, id, field, raw, isChecked)
	default:
		err = unknownField(field)
	}

	s.metrics.ObserveInlineUpdate(string(kind), metricFieldLabel(kind, field), resultLabel(err))
	if err != nil {
		logging.Warn("Inline update rejected",
			"entity", kind, "id", id, "field", field, "error", err.Error())
		return nil, err
	}

	logging.Info("Inline update applied", "entity", kind, "id", id, "field", field)
	return res, nil
}

func (s *InlineUpdateService) updateComponent(ctx context.Context, id uint, field, raw string, isChecked *string) (*dtos.InlineUpdateResult, error) {
	def, ok := componentFields[field]
	if !ok {
		return nil, unknownField(field)
	}

	current, err := s.repo.GetComponent(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("theme component %d: %w", id, ErrNotFound)
	}

	value, err := def.parse(raw, isChecked)
	if err != nil {
		return nil, newFieldError(field, err.Error(), err)
	}

	updated, err := s.repo.UpdateComponentColumn(ctx, id, def.column, value)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("theme component %d: %w", id, ErrNotFound)
	}

	stored, err := s.repo.GetComponent(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("theme component %d: %w", id, ErrNotFound)
	}

	if themeID, err := s.repo.ThemeIDForComponent(ctx, id); err == nil {
		s.themes.Invalidate(ctx, themeID)
	}

	return &dtos.InlineUpdateResult{
		ID:        id,
		Entity:    constants.EntityThemeComponent,
		FieldName: field,
		Value:     def.read(stored),
	}, nil
}

func (s *InlineUpdateService) updatePage(ctx context.Context, id uint, field, raw string, isChecked *string) (*dtos.InlineUpdateResult, error) {
	def, ok := pageFields[field]
	if !ok {
		return nil, unknownField(field)
	}

	current, err := s.repo.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("theme page %d: %w", id, ErrNotFound)
	}

	value, err := def.parse(raw, isChecked)
	if err != nil {
		return nil, newFieldError(field, err.Error(), err)
	}

	updated, err := s.repo.UpdatePageColumn(ctx, id, def.column, value)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("theme page %d: %w", id, ErrNotFound)
	}

	stored, err := s.repo.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("theme page %d: %w", id, ErrNotFound)
	}
	s.themes.Invalidate(ctx, stored.ThemeID)

	issues := PageIssues(stored)
	complete := len(issues) == 0
	return &dtos.InlineUpdateResult{
		ID:        id,
		Entity:    constants.EntityThemePage,
		FieldName: field,
		Value:     def.read(stored),
		Complete:  &complete,
		Issues:    issues,
	}, nil
}

func unknownField(field string) error {
	return newFieldError(field, constants.MsgUnknownInlineField, ErrUnknownField)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnknownField):
		return "unknown_field"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return "invalid"
	}
	return "error"
}

// metricFieldLabel keeps client-chosen field names out of label values.
func metricFieldLabel(kind constants.EntityKind, field string) string {
	switch kind {
	case constants.EntityThemeComponent:
		if _, ok := componentFields[field]; ok {
			return field
		}
	case constants.EntityThemePage:
		if _, ok := pageFields[field]; ok {
			return field
		}
	}
	return "other"
}

func parseDisplayName(raw string, _ *string) (any, error) {
	v := common.SanitizeText(raw)
	if v == "" {
		return nil, errors.New("is required")
	}
	if utf8.RuneCountInString(v) > constants.DisplayNameMaxLength {
		return nil, fmt.Errorf("must be at most %d characters", constants.DisplayNameMaxLength)
	}
	return v, nil
}

// parseOptionalText stores blank input as NULL.
func parseOptionalText(raw string, _ *string) (any, error) {
	v := common.SanitizeText(raw)
	if v == "" {
		return nil, nil
	}
	return v, nil
}

// parseChecked accepts only 0, 1, true and false. The checkbox state comes
// from isChecked; value is used when isChecked is absent.
func parseChecked(raw string, isChecked *string) (any, error) {
	src := raw
	if isChecked != nil {
		src = *isChecked
	}
	switch strings.ToLower(strings.TrimSpace(src)) {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return nil, errors.New("must be a boolean")
}

func parseInt(raw string, _ *string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, errors.New("must be an integer")
	}
	return n, nil
}

func parseNonNegativeInt(raw string, isChecked *string) (any, error) {
	v, err := parseInt(raw, isChecked)
	if err != nil {
		return nil, err
	}
	if v.(int) < 0 {
		return nil, errors.New("must be zero or greater")
	}
	return v, nil
}

func parseScreenStatus(raw string, _ *string) (any, error) {
	status := constants.ScreenStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return nil, fmt.Errorf("must be %s or %s", constants.ScreenStatusDynamic, constants.ScreenStatusStatic)
	}
	return string(status), nil
}
