package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Tabular values can render themselves as rows for the text format.
type Tabular interface {
	Table() (headers []string, rows [][]string)
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - yaml
// - text (only for Tabular values)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "yaml", "yml":
		return WriteYAML(w, v)
	case "text":
		t, ok := v.(Tabular)
		if !ok {
			return fmt.Errorf("text output is not available for %T; use json or yaml", v)
		}
		return WriteTable(w, t)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON, one document per call.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func WriteTable(w io.Writer, t Tabular) error {
	headers, rows := t.Table()
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
