package moderation

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var categoryName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ThresholdPolicy decides which classifier categories exceed their limit.
// Rules are compiled once; evaluation is read-only and safe for concurrent use.
type ThresholdPolicy struct {
	rules      []thresholdRule
	categories []string
}

type thresholdRule struct {
	category   string
	expression string
	program    *vm.Program
}

// NewThresholdPolicy compiles one "category > limit" rule per entry.
// Category names must be snake_case identifiers.
func NewThresholdPolicy(thresholds map[string]float64) (*ThresholdPolicy, error) {
	categories := make([]string, 0, len(thresholds))
	for category := range thresholds {
		if !categoryName.MatchString(category) {
			return nil, fmt.Errorf("invalid category name %q", category)
		}
		categories = append(categories, category)
	}
	sort.Strings(categories)

	env := make(map[string]interface{}, len(categories))
	for _, category := range categories {
		env[category] = 0.0
	}

	policy := &ThresholdPolicy{categories: categories}
	for _, category := range categories {
		expression := fmt.Sprintf("%s > %v", category, thresholds[category])
		program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("invalid threshold for %s: %w", category, err)
		}
		policy.rules = append(policy.rules, thresholdRule{
			category:   category,
			expression: expression,
			program:    program,
		})
	}

	return policy, nil
}

// MustThresholdPolicy is NewThresholdPolicy for static thresholds.
func MustThresholdPolicy(thresholds map[string]float64) *ThresholdPolicy {
	policy, err := NewThresholdPolicy(thresholds)
	if err != nil {
		panic(err)
	}
	return policy
}

// Violations returns the categories whose score exceeds the threshold, in
// name order. Categories missing from scores count as 0.
func (p *ThresholdPolicy) Violations(scores map[string]float64) ([]string, error) {
	env := make(map[string]interface{}, len(p.categories))
	for _, category := range p.categories {
		env[category] = scores[category]
	}

	var violations []string
	for _, rule := range p.rules {
		result, err := expr.Run(rule.program, env)
		if err != nil {
			return nil, fmt.Errorf("evaluate %q: %w", rule.expression, err)
		}
		exceeded, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("expression did not return boolean: %T", result)
		}
		if exceeded {
			violations = append(violations, rule.category)
		}
	}

	return violations, nil
}

// Categories returns the categories the policy has a rule for.
func (p *ThresholdPolicy) Categories() []string {
	return append([]string(nil), p.categories...)
}
