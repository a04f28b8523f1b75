package document

import (
	"time"

	domdoc "github.com/kailas-cloud/labdex/internal/domain/document"
)

type documentRow struct {
	ProjectID   string    `json:"projectId"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType,omitempty"`
	FilePath    string    `json:"filePath,omitempty"`
	Description string    `json:"description,omitempty"`
	UploadedBy  string    `json:"uploadedBy,omitempty"`
	UploadDate  time.Time `json:"uploadDate"`
	Status      string    `json:"status"`
}

func toRow(d *domdoc.Document) documentRow {
	return documentRow{
		ProjectID:   d.ProjectID(),
		FileName:    d.FileName(),
		FileType:    d.FileType(),
		FilePath:    d.FilePath(),
		Description: d.Description(),
		UploadedBy:  d.UploadedBy(),
		UploadDate:  d.UploadDate().UTC(),
		Status:      string(d.Status()),
	}
}

func fromRow(id string, r documentRow) domdoc.Document {
	return domdoc.Reconstruct(id, domdoc.Attrs{
		ProjectID:   r.ProjectID,
		FileName:    r.FileName,
		FileType:    r.FileType,
		FilePath:    r.FilePath,
		Description: r.Description,
		UploadedBy:  r.UploadedBy,
		UploadDate:  r.UploadDate,
		Status:      domdoc.Status(r.Status),
	})
}
