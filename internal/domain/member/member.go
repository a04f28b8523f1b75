package member

import (
	"fmt"
	"strings"
)

// Attrs carries the attributes used to build a Member.
type Attrs struct {
	ProjectID  string
	Name       string
	Email      string
	Role       string
	Expertise  string
	Department string
}

// Member is a researcher attached to a project.
type Member struct {
	id    string
	attrs Attrs
}

// New validates and creates a Member.
func New(id string, a Attrs) (Member, error) {
	if strings.TrimSpace(id) == "" {
		return Member{}, fmt.Errorf("member ID is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return Member{}, fmt.Errorf("member name is required")
	}
	if a.Email != "" && !strings.Contains(a.Email, "@") {
		return Member{}, fmt.Errorf("member email %q is not an address", a.Email)
	}
	return Member{id: id, attrs: a}, nil
}

// Reconstruct creates a Member without validation (storage hydration).
func Reconstruct(id string, a Attrs) Member {
	return Member{id: id, attrs: a}
}

// ID returns the member identifier.
func (m *Member) ID() string { return m.id }

// ProjectID returns the project the member belongs to; may be empty.
func (m *Member) ProjectID() string { return m.attrs.ProjectID }

// Name returns the full name.
func (m *Member) Name() string { return m.attrs.Name }

// Email returns the contact address.
func (m *Member) Email() string { return m.attrs.Email }

// Role returns the project role.
func (m *Member) Role() string { return m.attrs.Role }

// Expertise returns the free-text expertise.
func (m *Member) Expertise() string { return m.attrs.Expertise }

// Department returns the department.
func (m *Member) Department() string { return m.attrs.Department }

// Attrs returns a copy of the attributes.
func (m *Member) Attrs() Attrs { return m.attrs }
