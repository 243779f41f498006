package services

import (
	"context"
	"fmt"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/config"
	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/logging"
	"appfiy/backoffice/internal/metrics"
	"appfiy/backoffice/internal/models/dtos"
	"appfiy/backoffice/internal/models/entities"
)

// VersionRuleSource lists the active mapping rows of an app, highest code first.
type VersionRuleSource interface {
	ListActive(ctx context.Context, appID uint) ([]entities.VersionRule, error)
}

type CompatibilityPolicy struct {
	Match     string
	Unmatched string
	CacheTTL  time.Duration
}

// CompatibilityService answers mobile version checks against the active
// version mapping rows.
type CompatibilityService struct {
	rules   VersionRuleSource
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
	policy  CompatibilityPolicy
}

func NewCompatibilityService(
	rules VersionRuleSource,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
	policy CompatibilityPolicy,
) *CompatibilityService {
	if policy.Match == "" {
		policy.Match = config.MatchPolicyExact
	}
	if policy.Unmatched == "" {
		policy.Unmatched = config.UnmatchedPolicyUnconstrained
	}
	return &CompatibilityService{rules: rules, cache: cache, metrics: metricsReg, policy: policy}
}

func compatibilityCacheKey(appID uint, code int) string {
	return fmt.Sprintf("%s%d_%d", constants.CachePrefixCompatibility, appID, code)
}

// Evaluate checks a reported version. The version string wins over a
// pre-encoded code when both are given.
func (s *CompatibilityService) Evaluate(ctx context.Context, appID uint, version string, code *int) (*dtos.CompatibilityResult, error) {
	reported, err := reportedCode(version, code)
	if err != nil {
		s.metrics.ObserveVersionCheck("invalid")
		return nil, err
	}

	res, hit, err := common.GetOrLoad(ctx, s.cache, compatibilityCacheKey(appID, reported), s.policy.CacheTTL,
		func(ctx context.Context) (*dtos.CompatibilityResult, error) {
			return s.evaluate(ctx, appID, reported)
		})
	if err != nil {
		s.metrics.ObserveVersionCheck("error")
		return nil, err
	}
	s.metrics.ObserveCache(string(constants.CachePrefixCompatibility), hit)

	outcome := "unmatched"
	if res.Matched {
		outcome = "matched"
	}
	s.metrics.ObserveVersionCheck(outcome)
	logging.Debug("Version check evaluated",
		"mobile_app_id", appID, "code", reported, "matched", res.Matched, "force_update", res.ForceUpdate)
	return res, nil
}

func reportedCode(version string, code *int) (int, error) {
	if version != "" {
		c, err := common.EncodeVersion(version)
		if err != nil {
			return 0, versionError("mobile_version", err)
		}
		return c, nil
	}
	if code == nil {
		return 0, newFieldError("mobile_version", "is required", nil)
	}
	if *code < 0 {
		return 0, newFieldError("mobile_version_code", "must be at least 0", nil)
	}
	return *code, nil
}

func (s *CompatibilityService) evaluate(ctx context.Context, appID uint, reported int) (*dtos.CompatibilityResult, error) {
	rules, err := s.rules.ListActive(ctx, appID)
	if err != nil {
		return nil, err
	}

	res := &dtos.CompatibilityResult{MobileAppID: appID, MobileVersionCode: reported}

	rule := MatchRule(rules, reported, s.policy.Match)
	if rule == nil {
		res.ForceUpdate = s.policy.Unmatched == config.UnmatchedPolicyForceUpdate
		return res, nil
	}

	res.Matched = true
	res.MatchedVersion = rule.MobileVersion
	res.ForceUpdate = rule.ForceUpdate
	res.MinimumPluginVersion = rule.MinimumPluginVersion
	res.LatestPluginVersion = rule.LatestPluginVersion
	res.OptionalMessage = rule.OptionalMessage
	return res, nil
}

// MatchRule picks the rule for a reported code. Under the exact policy the
// row code must equal the reported code; under nearest_below the highest
// row code not above it wins. Ties go to the newest row.
func MatchRule(rules []entities.VersionRule, reported int, policy string) *entities.VersionRule {
	var best *entities.VersionRule
	for i := range rules {
		r := &rules[i]
		switch policy {
		case config.MatchPolicyNearestBelow:
			if r.MobileVersionCode > reported {
				continue
			}
		default:
			if r.MobileVersionCode != reported {
				continue
			}
		}
		if best == nil ||
			r.MobileVersionCode > best.MobileVersionCode ||
			(r.MobileVersionCode == best.MobileVersionCode && r.ID > best.ID) {
			best = r
		}
	}
	return best
}

// InvalidateApp drops every cached result of an app after its mapping changed.
func (s *CompatibilityService) InvalidateApp(ctx context.Context, appID uint) {
	prefix := fmt.Sprintf("%s%d_", constants.CachePrefixCompatibility, appID)
	if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
		logging.Warn("Failed to invalidate compatibility cache", "mobile_app_id", appID, "error", err.Error())
	}
}
