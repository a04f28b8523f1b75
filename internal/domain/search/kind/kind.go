package kind

import (
	"fmt"
	"strings"
)

// Kind tags a searchable record.
type Kind string

// Record kinds, in the order universal search concatenates them.
const (
	Document   Kind = "document"
	TeamMember Kind = "team-member"
	Project    Kind = "project"
)

// All lists every kind in aggregation order.
var All = []Kind{Document, TeamMember, Project}

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Document || k == TeamMember || k == Project
}

// Parse maps a request "type" value to a scope. Empty or "all" yields every kind.
// Singular and plural spellings are accepted case-insensitively.
func Parse(s string) ([]Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "universal":
		return All, nil
	case "document", "documents":
		return []Kind{Document}, nil
	case "team-member", "team-members", "member", "members":
		return []Kind{TeamMember}, nil
	case "project", "projects":
		return []Kind{Project}, nil
	default:
		return nil, fmt.Errorf("unknown search type %q", s)
	}
}
