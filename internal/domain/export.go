package domain

import (
	"strings"
	"time"
)

// ExportJob describes one request to turn generated content into a
// downloadable document. Jobs are consumed synchronously by the export
// service; no state is retained afterward.
type ExportJob struct {
	// Content is the plain text to lay out and rasterize.
	Content string

	// Title is rendered on the first page above the content.
	Title string

	// Filename is the base name for the saved document. The document
	// extension is appended by the export service.
	Filename string
}

// Validate checks that the job carries content, a title and a filename.
func (j ExportJob) Validate() error {
	if strings.TrimSpace(j.Content) == "" {
		return ErrEmptyContent
	}
	if strings.TrimSpace(j.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(j.Filename) == "" {
		return ErrEmptyFilename
	}
	return nil
}

// Artifact identifies one saved export document.
type Artifact struct {
	// Name is the final file name including the document extension.
	Name string `json:"name"`

	// Path is the absolute location of the saved document.
	Path string `json:"-"`

	// Size is the document size in bytes.
	Size int64 `json:"size"`

	// CreatedAt is when the document was saved.
	CreatedAt time.Time `json:"created_at"`
}
