package services

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface.
// The gorm adapter persists each added or removed rule on its own.
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

// PolicyServiceImpl implements domain.PolicyService using Casbin.
// Roles are given bare ("admin") or as casbin subjects ("role_admin").
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
	log      logrus.FieldLogger
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer, log logrus.FieldLogger) domain.PolicyService {
	return NewPolicyServiceWithEnforcer(NewCasbinEnforcerWrapper(enforcer), log)
}

// NewPolicyServiceWithEnforcer creates a policy service over any CasbinEnforcer
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer, log logrus.FieldLogger) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: enforcer,
		log:      log.WithField("component", "policy_service"),
	}
}

func policySubject(role string) string {
	role = strings.TrimSpace(role)
	if strings.HasPrefix(role, "role_") {
		return role
	}
	return "role_" + role
}

func validatePolicy(role, resource, action string) error {
	if strings.TrimSpace(role) == "" || strings.TrimSpace(resource) == "" || strings.TrimSpace(action) == "" {
		return fmt.Errorf("%w: role, resource and action are required", domain.ErrInvalidInput)
	}
	return nil
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	if err := validatePolicy(role, resource, action); err != nil {
		return err
	}
	added, err := p.enforcer.AddPolicy(policySubject(role), resource, action)
	if err != nil {
		return err
	}
	if added {
		p.log.WithFields(logrus.Fields{"subject": policySubject(role), "resource": resource, "action": action}).Info("policy added")
	}
	return nil
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	if err := validatePolicy(role, resource, action); err != nil {
		return err
	}
	removed, err := p.enforcer.RemovePolicy(policySubject(role), resource, action)
	if err != nil {
		return err
	}
	if removed {
		p.log.WithFields(logrus.Fields{"subject": policySubject(role), "resource": resource, "action": action}).Info("policy removed")
	}
	return nil
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(policySubject(role), resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, err := p.enforcer.GetPolicy()
	if err != nil {
		p.log.WithError(err).Error("load policies failed")
		return [][]string{}
	}
	return policies
}
