package promotion

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Rule kinds accepted in configuration.
const (
	KindNone             = "none"
	KindFixedDatePercent = "fixed_date_percent"
)

// Spec is the configuration form of a rule.
type Spec struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Date    string `yaml:"date"` // MM-DD, for fixed_date_percent
	Percent string `yaml:"percent"`
}

// DefaultSpecs is the promotion list used when none is configured.
func DefaultSpecs() []Spec {
	return []Spec{{Name: "Gudi Padwa", Kind: KindFixedDatePercent, Date: "03-22", Percent: "10"}}
}

// Build turns specs into a single Rule. No specs means no discounts.
func Build(specs []Spec) (Rule, error) {
	rules := make(FirstMatch, 0, len(specs))
	for i, spec := range specs {
		rule, err := build(spec)
		if err != nil {
			return nil, fmt.Errorf("promotion %d (%s): %w", i+1, spec.Name, err)
		}
		rules = append(rules, rule)
	}

	switch len(rules) {
	case 0:
		return None{}, nil
	case 1:
		return rules[0], nil
	default:
		return rules, nil
	}
}

func build(spec Spec) (Rule, error) {
	switch spec.Kind {
	case KindNone:
		return None{}, nil
	case KindFixedDatePercent:
		day, err := time.Parse("01-02", spec.Date)
		if err != nil {
			return nil, fmt.Errorf("date must be MM-DD: %w", err)
		}
		percent, err := decimal.NewFromString(spec.Percent)
		if err != nil {
			return nil, fmt.Errorf("invalid percent %q: %w", spec.Percent, err)
		}
		return NewFixedDatePercent(spec.Name, day.Month(), day.Day(), percent)
	default:
		return nil, fmt.Errorf("unknown kind %q", spec.Kind)
	}
}
