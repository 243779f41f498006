package constants

import (
	"database/sql/driver"
	"fmt"
)

// ScreenStatus mirrors the screen_status column of appfiy_theme_page.
type ScreenStatus string

const (
	ScreenStatusDynamic ScreenStatus = "dynamic"
	ScreenStatusStatic  ScreenStatus = "static"
)

func (s ScreenStatus) String() string { return string(s) }

func (s ScreenStatus) Valid() bool {
	return s == ScreenStatusDynamic || s == ScreenStatusStatic
}

func (s *ScreenStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ScreenStatusDynamic
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = ScreenStatus(v)
	case []byte:
		*s = ScreenStatus(v)
	default:
		return fmt.Errorf("ScreenStatus: cannot scan type %T", src)
	}
	return nil
}

func (s ScreenStatus) Value() (driver.Value, error) { return string(s), nil }

// AdminRole is carried by admin bearer tokens.
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "super_admin"
	RoleAdmin      AdminRole = "admin"
	RoleEditor     AdminRole = "editor"
)

func (r AdminRole) String() string { return string(r) }

// rank orders roles so that a higher role satisfies a lower requirement.
func (r AdminRole) rank() int {
	switch r {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin:
		return 2
	case RoleEditor:
		return 1
	}
	return 0
}

// Satisfies reports whether r is at least as privileged as required.
func (r AdminRole) Satisfies(required AdminRole) bool {
	return r.rank() > 0 && r.rank() >= required.rank()
}
