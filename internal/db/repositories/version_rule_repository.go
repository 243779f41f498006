package repositories

import (
	"context"
	"fmt"

	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// VersionRuleRepo is the read path of the compatibility evaluator.
type VersionRuleRepo struct {
	db *sqlx.DB
}

func NewVersionRuleRepo(db *sqlx.DB) *VersionRuleRepo {
	return &VersionRuleRepo{db}
}

// ListActive returns the active rules of an app, highest code first.
func (r *VersionRuleRepo) ListActive(ctx context.Context, appID uint) ([]entities.VersionRule, error) {
	var rules []entities.VersionRule

	err := r.db.SelectContext(ctx, &rules, r.db.Rebind(constants.ListActiveVersionRules), appID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list version rules: %w", err)
	}
	return rules, nil
}
