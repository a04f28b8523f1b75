package labdex

import (
	"context"
	"fmt"

	domdoc "github.com/kailas-cloud/labdex/internal/domain/document"
	dommem "github.com/kailas-cloud/labdex/internal/domain/member"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
)

// UpsertProject stores a project. Returns true if it was created.
func (c *Client) UpsertProject(ctx context.Context, p Project) (bool, error) {
	proj, err := domproj.New(p.ID, domproj.Attrs{
		Title:        p.Title,
		Description:  p.Description,
		Keywords:     p.Keywords,
		ResearchArea: p.ResearchArea,
		Status:       domproj.Status(p.Status),
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
	})
	if err != nil {
		return false, fmt.Errorf("upsert project: %w", err)
	}
	created, err := c.projects.Save(ctx, proj)
	if err != nil {
		return false, fmt.Errorf("upsert project: %w", err)
	}
	return created, nil
}

// UpsertDocument stores a document. Returns true if it was created.
func (c *Client) UpsertDocument(ctx context.Context, d Document) (bool, error) {
	doc, err := domdoc.New(d.ID, domdoc.Attrs{
		ProjectID:   d.ProjectID,
		FileName:    d.FileName,
		FileType:    d.FileType,
		FilePath:    d.FilePath,
		Description: d.Description,
		UploadedBy:  d.UploadedBy,
		UploadDate:  d.UploadDate,
	})
	if err != nil {
		return false, fmt.Errorf("upsert document: %w", err)
	}
	created, err := c.documents.Save(ctx, doc)
	if err != nil {
		return false, fmt.Errorf("upsert document: %w", err)
	}
	return created, nil
}

// UpsertMember stores a team member. Returns true if it was created.
func (c *Client) UpsertMember(ctx context.Context, m Member) (bool, error) {
	mem, err := dommem.New(m.ID, dommem.Attrs{
		ProjectID:  m.ProjectID,
		Name:       m.Name,
		Email:      m.Email,
		Role:       m.Role,
		Expertise:  m.Expertise,
		Department: m.Department,
	})
	if err != nil {
		return false, fmt.Errorf("upsert member: %w", err)
	}
	created, err := c.members.Save(ctx, mem)
	if err != nil {
		return false, fmt.Errorf("upsert member: %w", err)
	}
	return created, nil
}

// DeleteProject removes a project. Its documents, members and analytics
// history are left in place.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := c.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	if err := c.documents.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// DeleteMember removes a team member.
func (c *Client) DeleteMember(ctx context.Context, id string) error {
	if err := c.members.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
