package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/kdriscoll/mentora-api/internal/config"
	"github.com/kdriscoll/mentora-api/internal/domain"
)

// ErrExport is returned when rasterization or document assembly fails.
// The operation is all-or-nothing: no partial artifact is ever saved.
var ErrExport = errors.New("document export failed")

// Extension is the fixed document extension appended to every export.
const Extension = ".pdf"

// A4 layout constants in millimeters.
const (
	pageWidthMM     = 210.0
	pageHeightMM    = 297.0
	pageMarginMM    = 10.0
	contentWidthMM  = pageWidthMM - 2*pageMarginMM
	titleFontSizePt = 18.0
	titleGapMM      = 4.0
)

// Exporter assembles export jobs into PDF documents saved under a
// configured directory.
type Exporter struct {
	dir        string
	rasterizer Rasterizer
	logger     *slog.Logger

	// mu serializes final-name selection and rename; without it two
	// concurrent exports could pick the same name and overwrite each other.
	mu sync.Mutex
}

// NewExporter creates an Exporter writing into cfg.Dir, creating the
// directory if needed.
func NewExporter(cfg config.ExportConfig, logger *slog.Logger) (*Exporter, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.Dir == "" {
		return nil, errors.New("export directory cannot be empty")
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", cfg.Dir, err)
	}

	rasterizer, err := NewTextRasterizer(cfg.PageWidthPx, cfg.FontSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create rasterizer: %w", err)
	}

	return &Exporter{
		dir:        cfg.Dir,
		rasterizer: rasterizer,
		logger:     logger.With("component", "exporter"),
	}, nil
}

// WithRasterizer replaces the rasterizer. Intended for tests that need
// to force rasterization failures.
func (e *Exporter) WithRasterizer(r Rasterizer) *Exporter {
	e.rasterizer = r
	return e
}

// Export lays out and rasterizes the job's content, assembles the PDF,
// and saves it as {filename}.pdf in the export directory. When the name
// is already taken, a numeric suffix is added so repeated exports yield
// independent artifacts.
func (e *Exporter) Export(ctx context.Context, job domain.ExportJob) (domain.Artifact, error) {
	if err := job.Validate(); err != nil {
		return domain.Artifact{}, err
	}

	base, err := sanitizeFilename(job.Filename)
	if err != nil {
		return domain.Artifact{}, err
	}

	png, pngWidth, pngHeight, err := e.rasterizer.Rasterize(job.Content)
	if err != nil {
		e.logger.ErrorContext(ctx, "content rasterization failed", "error", err)
		return domain.Artifact{}, fmt.Errorf("%w: rasterization: %v", ErrExport, err)
	}

	document, err := e.assemble(job.Title, png, pngWidth, pngHeight)
	if err != nil {
		e.logger.ErrorContext(ctx, "document assembly failed", "error", err)
		return domain.Artifact{}, fmt.Errorf("%w: assembly: %v", ErrExport, err)
	}

	artifact, err := e.save(base, document)
	if err != nil {
		e.logger.ErrorContext(ctx, "document save failed", "error", err)
		return domain.Artifact{}, fmt.Errorf("%w: save: %v", ErrExport, err)
	}

	e.logger.InfoContext(ctx, "document exported",
		"name", artifact.Name,
		"size_bytes", artifact.Size)

	return artifact, nil
}

// assemble builds the PDF: title line at a larger font on page 1 with
// the rasterized content image anchored below it. The image is scaled
// to the content width; if it is taller than the remaining page it is
// shrunk to fit rather than paginated.
func (e *Exporter) assemble(title string, png []byte, pngWidth, pngHeight int) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", titleFontSizePt)
	pdf.MultiCell(contentWidthMM, 9, tr(title), "", "L", false)

	imageTop := pdf.GetY() + titleGapMM

	// Proportional height at full content width, clamped to what remains
	// of the page below the title.
	imageWidth := contentWidthMM
	imageHeight := imageWidth * float64(pngHeight) / float64(pngWidth)
	maxHeight := pageHeightMM - pageMarginMM - imageTop
	if imageHeight > maxHeight {
		scale := maxHeight / imageHeight
		imageHeight = maxHeight
		imageWidth = imageWidth * scale
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("content", opts, bytes.NewReader(png))
	pdf.ImageOptions("content", pageMarginMM, imageTop, imageWidth, imageHeight, false, opts, 0, "")

	if pdf.Err() {
		return nil, pdf.Error()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// save writes the document under a unique {base}.pdf name via a
// temporary file and rename, so a failure never leaves a partial
// artifact behind.
func (e *Exporter) save(base string, document []byte) (domain.Artifact, error) {
	tmp, err := os.CreateTemp(e.dir, ".export-*")
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(document); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return domain.Artifact{}, fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return domain.Artifact{}, fmt.Errorf("failed to close temp file: %w", err)
	}

	e.mu.Lock()
	name, path := e.uniquePath(base)
	err = os.Rename(tmpPath, path)
	e.mu.Unlock()
	if err != nil {
		_ = os.Remove(tmpPath)
		return domain.Artifact{}, fmt.Errorf("failed to finalize document: %w", err)
	}

	return domain.Artifact{
		Name:      name,
		Path:      path,
		Size:      int64(len(document)),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// uniquePath picks {base}.pdf, or {base}-N.pdf when the name is taken.
func (e *Exporter) uniquePath(base string) (string, string) {
	name := base + Extension
	path := filepath.Join(e.dir, name)

	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return name, path
		}
		name = fmt.Sprintf("%s-%d%s", base, n, Extension)
		path = filepath.Join(e.dir, name)
	}
}

// Open returns a reader over a previously saved artifact by name. The
// name is reduced to its base to keep lookups inside the export
// directory.
func (e *Exporter) Open(name string) (*os.File, error) {
	clean := filepath.Base(name)
	if clean != name || strings.Contains(name, "..") {
		return nil, domain.ErrInvalidID
	}
	return os.Open(filepath.Join(e.dir, clean))
}

// sanitizeFilename reduces a requested filename to a safe base name
// without path elements or extension.
func sanitizeFilename(filename string) (string, error) {
	base := filepath.Base(strings.TrimSpace(filename))
	base = strings.TrimSuffix(base, Extension)

	// Replace characters that are unsafe across filesystems.
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-", "?", "-",
		"\"", "-", "<", "-", ">", "-", "|", "-",
	)
	base = strings.Trim(replacer.Replace(base), ". ")

	if base == "" || base == "-" {
		return "", domain.ErrEmptyFilename
	}
	return base, nil
}
