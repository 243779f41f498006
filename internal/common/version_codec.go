package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// VersionParseError reports a mobile version string that is not MAJOR.MINOR.PATCH.
type VersionParseError struct {
	Version string
	Reason  string
}

func (e *VersionParseError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Version, e.Reason)
}

const (
	maxSegmentDigits = 6
	// MaxVersionCode keeps codes inside a postgres integer column.
	MaxVersionCode = math.MaxInt32
)

// EncodeVersion turns "MAJOR.MINOR.PATCH" into MAJOR*10000 + MINOR*100 + PATCH.
//
// Ordering is only preserved while MINOR and PATCH stay within 0..99; larger
// segments are accepted but overlap the next segment ("1.100.0" == "2.0.0").
func EncodeVersion(version string) (int, error) {
	trimmed := strings.TrimSpace(version)
	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return 0, &VersionParseError{Version: version, Reason: fmt.Sprintf("expected 3 segments, got %d", len(parts))}
	}

	var segments [3]int
	for i, part := range parts {
		n, err := parseSegment(part)
		if err != nil {
			return 0, &VersionParseError{Version: version, Reason: fmt.Sprintf("segment %d: %v", i+1, err)}
		}
		segments[i] = n
	}

	code := int64(segments[0])*10000 + int64(segments[1])*100 + int64(segments[2])
	if code > MaxVersionCode {
		return 0, &VersionParseError{Version: version, Reason: fmt.Sprintf("code %d exceeds %d", code, MaxVersionCode)}
	}
	return int(code), nil
}

// DecodeVersion is the inverse of EncodeVersion for in-range segments.
func DecodeVersion(code int) string {
	if code < 0 {
		code = 0
	}
	return fmt.Sprintf("%d.%d.%d", code/10000, (code/100)%100, code%100)
}

func parseSegment(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	if len(s) > maxSegmentDigits {
		return 0, fmt.Errorf("%q has more than %d digits", s, maxSegmentDigits)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not numeric", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q out of range", s)
	}
	return n, nil
}
