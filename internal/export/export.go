// Package export renders the task list in interchange and report formats.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/tasker-go/internal/tasks"
)

// Formats returns the supported format names.
func Formats() []string {
	return []string{"json", "yaml", "csv", "pdf"}
}

// Render encodes list in the named format.
//
// PDF output uses the core Arial font, whose text is encoded as cp1252.
// Accented Latin characters render, but characters outside cp1252 (CJK,
// emoji) do not; use json, yaml or csv for such task lists.
func Render(list []tasks.Task, format string) ([]byte, error) {
	if list == nil {
		list = []tasks.Task{}
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(list)
	case "csv":
		return renderCSV(list)
	case "pdf":
		return renderPDF(list)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

func renderCSV(list []tasks.Task) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"id", "description", "priority", "completed", "created_at"}); err != nil {
		return nil, err
	}
	for _, t := range list {
		record := []string{
			strconv.Itoa(t.ID),
			t.Description,
			string(t.Priority),
			strconv.FormatBool(t.Completed),
			t.CreatedAt,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func renderPDF(list []tasks.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Task Report", true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if len(list) == 0 {
		pdf.MultiCell(0, 6, "No tasks.", "0", "L", false)
	}
	for _, t := range list {
		pdf.MultiCell(0, 6, tr(reportLine(t)), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func reportLine(t tasks.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] #%d (%s) %s - %s", mark, t.ID, t.Priority, t.Description, t.CreatedAt)
}
