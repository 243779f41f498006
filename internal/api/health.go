package api

import (
	"context"
	"net/http"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

func checkDependency(ctx context.Context, backend string, ping func(context.Context) error) entities.DependencyStatus {
	start := time.Now()
	err := ping(ctx)
	st := entities.DependencyStatus{
		Status:    "ok",
		Backend:   backend,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		st.Status = "down"
		st.Error = err.Error()
	}
	return st
}

// HealthCheckHandler handles GET /healthCheck. It always answers 200; the
// overall state is carried in data.status.
func HealthCheckHandler(db *sqlx.DB, cache common.CacheInterface, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		report := entities.HealthReport{
			Status: "ok",
			Dependencies: map[string]entities.DependencyStatus{
				"postgres": checkDependency(ctx, "postgres", db.PingContext),
				"cache":    checkDependency(ctx, cache.Name(), cache.Ping),
			},
			UpSince: upSince,
			Uptime:  time.Since(upSince).Round(time.Second).String(),
		}
		for _, dep := range report.Dependencies {
			if !dep.Healthy() {
				report.Status = "degraded"
				break
			}
		}

		common.RespondSuccess(w, initTime, "Health check", report)
	}
}
