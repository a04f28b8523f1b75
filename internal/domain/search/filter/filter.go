package filter

import (
	"fmt"
	"strings"
)

// MaxConditions is the maximum number of conditions per expression.
const MaxConditions = 8

// Attribute keys understood by the searchers.
const (
	KeyDepartment = "department"
	KeyStatus     = "status"
)

// Expression is a conjunction of exact attribute matches.
type Expression struct {
	must []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must ...Condition) (Expression, error) {
	if len(must) > MaxConditions {
		return Expression{}, fmt.Errorf("too many filter conditions (max %d)", MaxConditions)
	}
	return Expression{must: must}, nil
}

// FromParams builds an expression from optional department/status values; blanks are skipped.
func FromParams(department, status string) (Expression, error) {
	var conds []Condition
	for _, kv := range [][2]string{{KeyDepartment, department}, {KeyStatus, status}} {
		if strings.TrimSpace(kv[1]) == "" {
			continue
		}
		c, err := NewMatch(kv[0], kv[1])
		if err != nil {
			return Expression{}, err
		}
		conds = append(conds, c)
	}
	return NewExpression(conds...)
}

// Must returns the conditions.
func (e Expression) Must() []Condition { return e.must }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.must) == 0 }

// Matches reports whether attrs satisfy every condition. A record that lacks a
// filtered attribute does not match: a department filter keeps team members only.
func (e Expression) Matches(attrs map[string]string) bool {
	for _, c := range e.must {
		v, ok := attrs[c.key]
		if !ok || !strings.EqualFold(strings.TrimSpace(v), c.match) {
			return false
		}
	}
	return true
}

// Condition is a single case-insensitive exact match clause.
type Condition struct {
	key   string
	match string
}

// NewMatch creates an exact match condition.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	match = strings.TrimSpace(match)
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, match: match}, nil
}

// Key returns the attribute name.
func (c Condition) Key() string { return c.key }

// Match returns the expected value.
func (c Condition) Match() string { return c.match }
