package document

import (
	"fmt"
	"regexp"
	"time"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxDescriptionSize is the maximum description size in bytes.
const MaxDescriptionSize = 163840 // 160KB

// Status is the processing state of an uploaded document.
type Status string

// Document statuses.
const (
	StatusUploaded  Status = "UPLOADED"
	StatusProcessed Status = "PROCESSED"
)

// Attrs carries the attributes used to build a Document.
type Attrs struct {
	ProjectID   string
	FileName    string
	FileType    string
	FilePath    string
	Description string
	UploadedBy  string
	UploadDate  time.Time
	Status      Status
}

// Document is a file uploaded to a research project. Its description is the
// only text the engine reads; file contents live in external storage.
type Document struct {
	id    string
	attrs Attrs
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. FileName and ProjectID are required.
func New(id string, a Attrs) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("document ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with underscores and hyphens")
	}
	if a.ProjectID == "" {
		return Document{}, fmt.Errorf("document project ID is required")
	}
	if a.FileName == "" {
		return Document{}, fmt.Errorf("file name is required")
	}
	if len(a.Description) > MaxDescriptionSize {
		return Document{}, fmt.Errorf("description too large (max %d bytes)", MaxDescriptionSize)
	}
	if a.Status == "" {
		a.Status = StatusUploaded
	}
	return Document{id: id, attrs: a}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id string, a Attrs) Document {
	return Document{id: id, attrs: a}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// ProjectID returns the owning project.
func (d *Document) ProjectID() string { return d.attrs.ProjectID }

// FileName returns the uploaded file name.
func (d *Document) FileName() string { return d.attrs.FileName }

// FileType returns the MIME type or extension.
func (d *Document) FileType() string { return d.attrs.FileType }

// FilePath returns the storage path.
func (d *Document) FilePath() string { return d.attrs.FilePath }

// Description returns the free-text description.
func (d *Document) Description() string { return d.attrs.Description }

// UploadedBy returns the uploader name.
func (d *Document) UploadedBy() string { return d.attrs.UploadedBy }

// UploadDate returns the upload timestamp.
func (d *Document) UploadDate() time.Time { return d.attrs.UploadDate }

// Status returns the processing status.
func (d *Document) Status() Status { return d.attrs.Status }

// Attrs returns a copy of the attributes.
func (d *Document) Attrs() Attrs { return d.attrs }

// WithStatus returns a copy with the given status set.
func (d *Document) WithStatus(s Status) Document {
	a := d.attrs
	a.Status = s
	return Document{id: d.id, attrs: a}
}
