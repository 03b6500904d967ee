package lookup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMarker is assigned when no routing rule matches.
const DefaultMarker = "UNASSIGNED"

// RoutingRule is one row of a decision table. All set conditions must hold
// for the rule to match; rules are evaluated top to bottom and the first
// match wins, so rule order encodes precedence (amount threshold first, then
// name-substring overrides, then country membership).
type RoutingRule struct {
	Label        string   `yaml:"label"`
	MinAmountUSD *float64 `yaml:"minAmountUSD,omitempty"`
	Countries    []string `yaml:"countries,omitempty"`
	NameContains string   `yaml:"nameContains,omitempty"`
}

type Tables struct {
	Countries         map[string]string `yaml:"countries"`
	CreditManagers    []RoutingRule     `yaml:"creditManagers"`
	AccountExecutives []RoutingRule     `yaml:"accountExecutives"`
}

// Resolver answers the pure lookup questions the combiner asks. It carries
// no state beyond the loaded tables.
type Resolver struct {
	tables Tables
}

func NewResolver(tables Tables) *Resolver {
	return &Resolver{tables: tables}
}

// Load reads routing.yaml from dir, falling back to the built-in tables when
// the file does not exist.
func Load(dir string) (*Resolver, error) {
	path := filepath.Join(dir, "routing.yaml")
	blob, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewResolver(Defaults()), nil
	}
	if err != nil {
		return nil, err
	}

	var tables Tables
	if err := yaml.Unmarshal(blob, &tables); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if tables.Countries == nil {
		tables.Countries = Defaults().Countries
	}
	return NewResolver(tables), nil
}

// Country resolves a two-letter code to a country name. Unknown codes come
// back unchanged so they stay visible in the output.
func (r *Resolver) Country(code string) string {
	if name, ok := r.tables.Countries[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

func (r *Resolver) CreditManager(countryCode string, amountUSD *float64, partnerName string) string {
	return match(r.tables.CreditManagers, countryCode, amountUSD, partnerName)
}

func (r *Resolver) AccountExecutive(countryCode, partnerName string) string {
	return match(r.tables.AccountExecutives, countryCode, nil, partnerName)
}

func match(rules []RoutingRule, countryCode string, amountUSD *float64, partnerName string) string {
	country := strings.ToUpper(countryCode)
	name := strings.ToUpper(partnerName)

	for _, rule := range rules {
		if rule.MinAmountUSD != nil {
			if amountUSD == nil || *amountUSD < *rule.MinAmountUSD {
				continue
			}
		}
		if rule.NameContains != "" && !strings.Contains(name, strings.ToUpper(rule.NameContains)) {
			continue
		}
		if len(rule.Countries) > 0 && !containsFold(rule.Countries, country) {
			continue
		}
		return rule.Label
	}
	return DefaultMarker
}

func containsFold(values []string, probe string) bool {
	for _, v := range values {
		if strings.EqualFold(v, probe) {
			return true
		}
	}
	return false
}
