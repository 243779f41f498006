package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/logging"
	"appfiy/backoffice/internal/metrics"
	"appfiy/backoffice/internal/models/dtos"
	"appfiy/backoffice/internal/models/entities"
	"appfiy/backoffice/internal/providers"

	"golang.org/x/sync/errgroup"
)

// Dispatch outcome statuses.
const (
	DispatchSent    = "sent"
	DispatchFailed  = "failed"
	DispatchSkipped = "skipped"
)

// BuildDomainStore is the sqlx read/write path of appfiy_build_domain.
type BuildDomainStore interface {
	FindActive(ctx context.Context, siteURL, licenseKey string) (*entities.BuildDomainTarget, error)
	List(ctx context.Context) ([]entities.BuildDomainTarget, error)
	UpdatePushURLs(ctx context.Context, id uint, android, ios *string) (bool, error)
}

type BuildNotificationService struct {
	domains BuildDomainStore
	push    providers.PushProvider
	metrics *metrics.MetricsRegistry
}

func NewBuildNotificationService(
	domains BuildDomainStore,
	push providers.PushProvider,
	metricsReg *metrics.MetricsRegistry,
) *BuildNotificationService {
	return &BuildNotificationService{domains: domains, push: push, metrics: metricsReg}
}

// Notify validates the request, resolves the build domain and sends each
// platform's content to that platform's push URL. Validation failures are
// returned before anything is sent.
func (s *BuildNotificationService) Notify(ctx context.Context, req dtos.BuildNotificationReq) (*dtos.BuildNotificationResult, error) {
	req.SiteURL = strings.TrimSpace(req.SiteURL)
	req.LicenseKey = strings.TrimSpace(req.LicenseKey)
	req.AndroidNotificationContent = strings.TrimSpace(req.AndroidNotificationContent)
	req.IOSNotificationContent = strings.TrimSpace(req.IOSNotificationContent)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	domain, err := s.domains.FindActive(ctx, req.SiteURL, req.LicenseKey)
	if err != nil {
		return nil, err
	}
	if domain == nil {
		return nil, fmt.Errorf("build domain for %s: %w", req.SiteURL, ErrNotFound)
	}

	type job struct {
		platform constants.Platform
		content  string
		url      *string
	}
	jobs := []job{
		{constants.PlatformAndroid, req.AndroidNotificationContent, domain.AndroidPushNotificationURL},
		{constants.PlatformIOS, req.IOSNotificationContent, domain.IOSPushNotificationURL},
	}

	var (
		mu       sync.Mutex
		outcomes = make([]dtos.PushDispatchOutcome, len(jobs))
	)
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		i, j := i, j
		if j.content == "" {
			continue
		}
		target := common.StringValue(j.url)
		if target == "" {
			outcomes[i] = dtos.PushDispatchOutcome{Platform: j.platform, Status: DispatchSkipped, Error: "no push notification url configured"}
			s.metrics.ObservePushDispatch(string(j.platform), DispatchSkipped, 0)
			continue
		}

		g.Go(func() error {
			msg := providers.PushMessage{
				Platform:    j.platform,
				SiteURL:     domain.SiteURL,
				LicenseKey:  domain.LicenseKey,
				PackageName: common.StringValue(domain.PackageName),
				Content:     j.content,
			}
			start := time.Now()
			status, err := s.push.Send(gctx, target, msg)

			outcome := dtos.PushDispatchOutcome{Platform: j.platform, Status: DispatchSent, HTTPStatus: status}
			if err != nil {
				outcome.Status = DispatchFailed
				outcome.Error = err.Error()
				logging.Warn("Push dispatch failed",
					"build_domain_id", domain.ID, "platform", j.platform, "status", status, "error", err.Error())
			}
			s.metrics.ObservePushDispatch(string(j.platform), outcome.Status, time.Since(start).Seconds())

			mu.Lock()
			outcomes[i] = outcome
			mu.Unlock()
			// one platform failing must not cancel the other
			return nil
		})
	}
	_ = g.Wait()

	res := &dtos.BuildNotificationResult{BuildDomainID: domain.ID, SiteURL: domain.SiteURL}
	for _, o := range outcomes {
		if o.Platform != "" {
			res.Dispatches = append(res.Dispatches, o)
		}
	}
	logging.Info("Build notification processed", "build_domain_id", domain.ID, "dispatches", len(res.Dispatches))
	return res, nil
}

func (s *BuildNotificationService) ListDomains(ctx context.Context) ([]dtos.BuildDomainView, error) {
	rows, err := s.domains.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dtos.BuildDomainView, 0, len(rows))
	for _, r := range rows {
		out = append(out, dtos.BuildDomainView{
			ID:                         r.ID,
			SiteURL:                    r.SiteURL,
			LicenseKeyHint:             licenseKeyHint(r.LicenseKey),
			PackageName:                r.PackageName,
			AndroidPushNotificationURL: r.AndroidPushNotificationURL,
			IOSPushNotificationURL:     r.IOSPushNotificationURL,
			IsActive:                   r.IsActive,
		})
	}
	return out, nil
}

// UpdatePushURLs sets both URLs; a blank or missing URL clears the column.
func (s *BuildNotificationService) UpdatePushURLs(ctx context.Context, id uint, req dtos.PushURLsReq) error {
	android := trimmedPtr(req.AndroidPushNotificationURL)
	ios := trimmedPtr(req.IOSPushNotificationURL)
	req.AndroidPushNotificationURL, req.IOSPushNotificationURL = android, ios
	if err := validateStruct(req); err != nil {
		return err
	}

	ok, err := s.domains.UpdatePushURLs(ctx, id, android, ios)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("build domain %d: %w", id, ErrNotFound)
	}
	logging.Info("Push urls updated", "build_domain_id", id)
	return nil
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return common.NilIfEmpty(*s)
}

// licenseKeyHint keeps only the last four characters of a license key.
func licenseKeyHint(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
