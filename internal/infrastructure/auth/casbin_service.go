package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// OwnerSubject is granted to a caller acting on their own resources
const OwnerSubject = "role_owner"

// Subject returns the casbin subject for a user role
func Subject(role string) string {
	return "role_" + role
}

// DefaultPolicies are installed when the policy table is empty
var DefaultPolicies = [][]string{
	{"role_admin", "/admin/*", "(GET|POST|DELETE)"},
	{"role_admin", "/artisans/*", "(GET|PUT|POST|DELETE)"},
	{"role_admin", "/upload", "(POST|DELETE)"},
	{"role_admin", "/auth/me", "GET"},
	{"role_admin", "/auth/logout", "POST"},

	{"role_artisan", "/upload", "(POST|DELETE)"},
	{"role_artisan", "/auth/me", "GET"},
	{"role_artisan", "/auth/logout", "POST"},

	{"role_student", "/upload", "(POST|DELETE)"},
	{"role_student", "/auth/me", "GET"},
	{"role_student", "/auth/logout", "POST"},

	{OwnerSubject, "/artisans/:user_id/profile", "(GET|PUT)"},
	{OwnerSubject, "/artisans/:user_id/profile/submit", "POST"},
	{OwnerSubject, "/artisans/:user_id/documents", "POST"},
	{OwnerSubject, "/artisans/:user_id/documents/:doc_id", "DELETE"},
}

type CasbinService struct{ E *casbin.Enforcer }

func NewCasbinService(db *gorm.DB, modelPath string) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}
	e, err := casbin.NewEnforcer(modelPath, adp)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("casbin load policy: %w", err)
	}
	return &CasbinService{E: e}, nil
}

// SeedDefaultPolicies installs DefaultPolicies when no policy exists yet.
// It reports whether anything was written.
func (s *CasbinService) SeedDefaultPolicies() (bool, error) {
	policies, err := s.E.GetPolicy()
	if err != nil {
		return false, err
	}
	if len(policies) > 0 {
		return false, nil
	}
	if _, err := s.E.AddPolicies(DefaultPolicies); err != nil {
		return false, fmt.Errorf("seed policies: %w", err)
	}
	return true, nil
}
