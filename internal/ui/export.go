package ui

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/askdb/internal/assistant"
	"github.com/nhath/askdb/internal/render"
)

// ExportFormat is the file format written by /export
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// exportResultCmd writes the last result table to filename. An empty
// filename picks a timestamped name in the working directory.
func (m Model) exportResultCmd(format ExportFormat, filename string) tea.Cmd {
	if m.lastResult == nil || m.lastResult.Response == nil {
		return nil
	}

	// Capture result data for the closure
	resp := m.lastResult.Response
	frag := render.Response(resp)

	return func() tea.Msg {
		exportPath := resolveExportPath(filename, format, time.Now())
		if err := writeExport(exportPath, format, resp.Results, frag); err != nil {
			return ExportCompleteMsg{Err: err}
		}
		return ExportCompleteMsg{Path: exportPath, Rows: len(frag.Rows)}
	}
}

func writeExport(path string, format ExportFormat, rows []assistant.Row, frag render.Fragment) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	switch format {
	case ExportJSON:
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		w := csv.NewWriter(f)
		if err := w.Write(frag.Columns); err != nil {
			return err
		}
		return w.WriteAll(frag.Rows)
	}
}

func resolveExportPath(filename string, format ExportFormat, now time.Time) string {
	if filename == "" {
		filename = fmt.Sprintf("askdb-%s", now.Format("20060102-150405"))
	}
	if !filepath.IsAbs(filename) {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		filename = filepath.Join(cwd, filename)
	}
	ext := "." + string(format)
	if !strings.HasSuffix(strings.ToLower(filename), ext) {
		filename += ext
	}
	return filename
}
