package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type BuildDomainRepo struct {
	db *sqlx.DB
}

func NewBuildDomainRepo(db *sqlx.DB) *BuildDomainRepo {
	return &BuildDomainRepo{db}
}

// FindActive returns the active build domain registered for a site and
// license key, or nil.
func (r *BuildDomainRepo) FindActive(ctx context.Context, siteURL, licenseKey string) (*entities.BuildDomainTarget, error) {
	var target entities.BuildDomainTarget

	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind(constants.GetActiveBuildDomainBySiteAndLicense),
		siteURL, licenseKey, true,
	).StructScan(&target)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch build domain: %w", err)
	}
	target.IsActive = true
	return &target, nil
}

func (r *BuildDomainRepo) List(ctx context.Context) ([]entities.BuildDomainTarget, error) {
	var rows []entities.BuildDomainTarget

	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(constants.ListBuildDomains)); err != nil {
		return nil, fmt.Errorf("failed to list build domains: %w", err)
	}
	return rows, nil
}

// UpdatePushURLs reports false when no build domain has the given id.
func (r *BuildDomainRepo) UpdatePushURLs(ctx context.Context, id uint, android, ios *string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(constants.UpdateBuildDomainPushURLs),
		android, ios, time.Now().UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update push urls: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
