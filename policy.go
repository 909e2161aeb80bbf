package edfsched

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Policy decides how a wrapped difference between two [Tick] values is
// interpreted when computing the time remaining until a deadline.
type Policy struct {
	policy
}

// ParsePolicy creates a new [Policy] from the given value.
func ParsePolicy(p any) Policy {
	switch v := p.(type) {
	case Policy:
		return v
	case string:
		return Policy{stringToPolicy(v)}
	case fmt.Stringer:
		return Policy{stringToPolicy(v.String())}
	case bool:
		if v {
			return Policies.Signed
		}
		return Policies.Unsigned
	default:
		return Policy{policyUnknown}
	}
}

// IsSigned reports whether remaining values are interpreted in two's
// complement.
func (p Policy) IsSigned() bool {
	return p.policy == policySigned
}

func (p Policy) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p *Policy) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*p = ParsePolicy(s)
	return nil
}

func (p Policy) MarshalYAML() (any, error) {
	return p.String(), nil
}

func (p *Policy) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("decoding policy: %w", err)
	}
	*p = ParsePolicy(s)
	return nil
}

// Policies may be used to reference a [Policy] value by name.
var Policies = policyContainer{
	Unknown:  Policy{policyUnknown},
	Signed:   Policy{policySigned},
	Unsigned: Policy{policyUnsigned},
}

// All returns all valid policies.
func (c policyContainer) All() []Policy {
	return []Policy{c.Signed, c.Unsigned}
}

type policy int

const (
	policyUnknown policy = iota
	policySigned
	policyUnsigned
)

var (
	strPolicyMap = map[policy]string{
		policyUnknown:  "unknown",
		policySigned:   "signed",
		policyUnsigned: "unsigned",
	}

	typePolicyMap = map[string]policy{
		"unknown":  policyUnknown,
		"signed":   policySigned,
		"unsigned": policyUnsigned,
	}
)

func (p policy) String() string {
	return strPolicyMap[p]
}

func (p policy) IsValid() bool {
	return p == policySigned || p == policyUnsigned
}

func stringToPolicy(s string) policy {
	if v, ok := typePolicyMap[s]; ok {
		return v
	}
	return policyUnknown
}

type policyContainer struct {
	Unknown  Policy
	Signed   Policy
	Unsigned Policy
}
