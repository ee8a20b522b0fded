package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bft-labs/pagemark/internal/domain"
)

// ReportFile writes reports as indented JSON.
type ReportFile struct {
	path string
}

// NewReportFile creates a ReportFile for path.
func NewReportFile(path string) *ReportFile {
	return &ReportFile{path: path}
}

// Save writes v atomically: to a temp file first, then renamed into place.
func (r *ReportFile) Save(v any) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

// SaveReport writes a bookmark report.
func (r *ReportFile) SaveReport(rep domain.Report) error {
	return r.Save(rep)
}
