package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/config"
	"appfiy/backoffice/internal/models/dtos"
	"appfiy/backoffice/internal/models/entities"
)

type fakeRuleSource struct {
	rules map[uint][]entities.VersionRule
	calls int
	err   error
}

func (f *fakeRuleSource) ListActive(ctx context.Context, appID uint) ([]entities.VersionRule, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rules[appID], nil
}

func sampleRules() *fakeRuleSource {
	return &fakeRuleSource{rules: map[uint][]entities.VersionRule{
		1: {
			{ID: 3, MobileVersion: "2.0.0", MobileVersionCode: 20000, MinimumPluginVersion: "3.0.0", LatestPluginVersion: "3.2.0"},
			{ID: 2, MobileVersion: "1.2.3", MobileVersionCode: 10203, MinimumPluginVersion: "2.0.0", LatestPluginVersion: "2.4.0", ForceUpdate: true, OptionalMessage: strPtr("Please update")},
			{ID: 1, MobileVersion: "1.0.0", MobileVersionCode: 10000, MinimumPluginVersion: "1.0.0", LatestPluginVersion: "1.9.0"},
		},
	}}
}

func newCompat(src VersionRuleSource, match, unmatched string) *CompatibilityService {
	return NewCompatibilityService(src, common.NewCacheService(60, 120), nil, CompatibilityPolicy{
		Match:     match,
		Unmatched: unmatched,
		CacheTTL:  time.Minute,
	})
}

func evaluate(t *testing.T, svc *CompatibilityService, appID uint, version string) *dtos.CompatibilityResult {
	t.Helper()
	res, err := svc.Evaluate(context.Background(), appID, version, nil)
	if err != nil {
		t.Fatalf("Evaluate(%d, %q) failed: %v", appID, version, err)
	}
	return res
}

func TestMatchRule(t *testing.T) {
	rules := sampleRules().rules[1]
	dup := append([]entities.VersionRule{{ID: 9, MobileVersionCode: 10203}}, rules...)

	cases := []struct {
		name   string
		rules  []entities.VersionRule
		code   int
		policy string
		wantID int64
	}{
		{"exact hit", rules, 10203, config.MatchPolicyExact, 2},
		{"exact miss", rules, 10500, config.MatchPolicyExact, 0},
		{"nearest below", rules, 10500, config.MatchPolicyNearestBelow, 2},
		{"nearest below above all", rules, 90909, config.MatchPolicyNearestBelow, 3},
		{"nearest below under all", rules, 9999, config.MatchPolicyNearestBelow, 0},
		{"first duplicate wins", dup, 10203, config.MatchPolicyExact, 9},
	}
	for _, tc := range cases {
		got := MatchRule(tc.rules, tc.code, tc.policy)
		switch {
		case tc.wantID == 0 && got != nil:
			t.Errorf("%s: expected no match, got rule %d", tc.name, got.ID)
		case tc.wantID != 0 && got == nil:
			t.Errorf("%s: expected rule %d, got no match", tc.name, tc.wantID)
		case got != nil && got.ID != tc.wantID:
			t.Errorf("%s: expected rule %d, got %d", tc.name, tc.wantID, got.ID)
		}
	}
}

func TestCompatibility_ExactMatch(t *testing.T) {
	svc := newCompat(sampleRules(), config.MatchPolicyExact, config.UnmatchedPolicyUnconstrained)
	res := evaluate(t, svc, 1, "1.2.3")

	if !res.Matched || !res.ForceUpdate {
		t.Errorf("Expected matched force update, got %+v", res)
	}
	if res.MobileVersionCode != 10203 {
		t.Errorf("Expected code 10203, got %d", res.MobileVersionCode)
	}
	if res.MinimumPluginVersion != "2.0.0" || res.LatestPluginVersion != "2.4.0" {
		t.Errorf("Unexpected plugin versions %s / %s", res.MinimumPluginVersion, res.LatestPluginVersion)
	}
	if res.OptionalMessage == nil || *res.OptionalMessage != "Please update" {
		t.Errorf("Expected optional message, got %v", res.OptionalMessage)
	}
}

func TestCompatibility_PreEncodedCode(t *testing.T) {
	svc := newCompat(sampleRules(), config.MatchPolicyExact, config.UnmatchedPolicyUnconstrained)
	code := 20000

	res, err := svc.Evaluate(context.Background(), 1, "", &code)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !res.Matched || res.MatchedVersion != "2.0.0" {
		t.Errorf("Expected match on 2.0.0, got %+v", res)
	}
}

func TestCompatibility_UnmatchedPolicies(t *testing.T) {
	open := newCompat(sampleRules(), config.MatchPolicyExact, config.UnmatchedPolicyUnconstrained)
	res := evaluate(t, open, 1, "1.5.0")
	if res.Matched || res.ForceUpdate || res.MinimumPluginVersion != "" {
		t.Errorf("Expected unconstrained result, got %+v", res)
	}

	strict := newCompat(sampleRules(), config.MatchPolicyExact, config.UnmatchedPolicyForceUpdate)
	res = evaluate(t, strict, 1, "1.5.0")
	if res.Matched || !res.ForceUpdate {
		t.Errorf("Expected forced update for unmatched version, got %+v", res)
	}

	// an app without rules is unconstrained by default
	if res = evaluate(t, open, 42, "1.0.0"); res.ForceUpdate {
		t.Errorf("Expected no force update for app without rules")
	}
}

func TestCompatibility_NearestBelow(t *testing.T) {
	svc := newCompat(sampleRules(), config.MatchPolicyNearestBelow, config.UnmatchedPolicyUnconstrained)
	res := evaluate(t, svc, 1, "1.9.9")

	if !res.Matched || res.MatchedVersion != "1.2.3" {
		t.Errorf("Expected match on 1.2.3, got %+v", res)
	}
	if res.MobileVersionCode != 10909 {
		t.Errorf("Expected reported code 10909, got %d", res.MobileVersionCode)
	}
}

func TestCompatibility_InvalidVersion(t *testing.T) {
	src := sampleRules()
	svc := newCompat(src, config.MatchPolicyExact, config.UnmatchedPolicyUnconstrained)

	for _, v := range []string{"1.a.3", "", "922337203685478.0.0"} {
		_, err := svc.Evaluate(context.Background(), 1, v, nil)
		if _, ok := fieldErrors(t, err)["mobile_version"]; !ok {
			t.Errorf("%q: expected mobile_version field error, got %v", v, err)
		}
	}

	_, err := svc.Evaluate(context.Background(), 1, "1.a.3", nil)
	var parseErr *common.VersionParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Expected wrapped *VersionParseError, got %v", err)
	}
	if src.calls != 0 {
		t.Errorf("Expected no rule lookup for invalid versions, got %d", src.calls)
	}
}

func TestCompatibility_CachesAndInvalidates(t *testing.T) {
	src := sampleRules()
	svc := newCompat(src, config.MatchPolicyExact, config.UnmatchedPolicyUnconstrained)

	evaluate(t, svc, 1, "1.2.3")
	evaluate(t, svc, 1, "1.2.3")
	if src.calls != 1 {
		t.Errorf("Expected one lookup with caching, got %d", src.calls)
	}

	src.rules[1][1].ForceUpdate = false
	svc.InvalidateApp(context.Background(), 1)

	res := evaluate(t, svc, 1, "1.2.3")
	if src.calls != 2 {
		t.Errorf("Expected a fresh lookup after invalidation, got %d", src.calls)
	}
	if res.ForceUpdate {
		t.Errorf("Expected refreshed rule without force update")
	}
}

func TestCompatibility_SourceError(t *testing.T) {
	boom := errors.New("db down")
	svc := newCompat(&fakeRuleSource{err: boom}, config.MatchPolicyExact, config.UnmatchedPolicyUnconstrained)

	if _, err := svc.Evaluate(context.Background(), 1, "1.0.0", nil); !errors.Is(err, boom) {
		t.Errorf("Expected source error, got %v", err)
	}
}
