package mocks

import "github.com/talentnest247/Talentnest-sub001/domain"

// MockCasbinEnforcer implements domain.CasbinEnforcer with an exact-match policy list
type MockCasbinEnforcer struct {
	AddPolicyFunc    func(params ...interface{}) (bool, error)
	RemovePolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc      func(rvals ...interface{}) (bool, error)
	GetPolicyFunc    func() ([][]string, error)

	Policies [][]string
}

// NewMockCasbinEnforcer creates an enforcer holding the given policies
func NewMockCasbinEnforcer(policies ...[]string) *MockCasbinEnforcer {
	return &MockCasbinEnforcer{Policies: policies}
}

func toRule(params []interface{}) []string {
	rule := make([]string, 0, len(params))
	for _, p := range params {
		s, _ := p.(string)
		rule = append(rule, s)
	}
	return rule
}

func (m *MockCasbinEnforcer) indexOf(rule []string) int {
	for i, p := range m.Policies {
		if len(p) != len(rule) {
			continue
		}
		match := true
		for j := range p {
			if p[j] != rule[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	rule := toRule(params)
	if m.indexOf(rule) >= 0 {
		return false, nil
	}
	m.Policies = append(m.Policies, rule)
	return true, nil
}

func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	i := m.indexOf(toRule(params))
	if i < 0 {
		return false, nil
	}
	m.Policies = append(m.Policies[:i], m.Policies[i+1:]...)
	return true, nil
}

func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	return m.indexOf(toRule(rvals)) >= 0, nil
}

func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	out := make([][]string, len(m.Policies))
	for i, p := range m.Policies {
		out[i] = append([]string(nil), p...)
	}
	return out, nil
}

var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)
