package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/johan-st/sqlite-grid/internal/config"
	"github.com/johan-st/sqlite-grid/internal/database"
)

// render writes rs to w in the given format.
func render(w io.Writer, rs database.ResultSet, format string) error {
	switch format {
	case config.FormatTable, "":
		return renderTable(w, rs)
	case config.FormatJSON:
		return renderJSON(w, rs)
	case config.FormatYAML:
		return renderYAML(w, rs)
	case config.FormatTSV:
		return renderTSV(w, rs)
	default:
		return fmt.Errorf("unknown format %q (use %s)", format, strings.Join(config.Formats, ", "))
	}
}

func renderTable(w io.Writer, rs database.ResultSet) error {
	if rs.Empty() {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	// Header
	headerRow := make(table.Row, len(rs.Columns))
	for i, col := range rs.Columns {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	// Rows
	for _, values := range rs.Rows {
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = v
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%s rows)\n", humanize.Comma(int64(len(rs.Rows))))
	return nil
}

// records pairs values with their column names. Rows shorter than the
// header leave the missing columns out.
func records(rs database.ResultSet) []map[string]string {
	out := make([]map[string]string, 0, len(rs.Rows))
	for _, values := range rs.Rows {
		m := make(map[string]string, len(rs.Columns))
		for i, col := range rs.Columns {
			if i < len(values) {
				m[col] = values[i]
			}
		}
		out = append(out, m)
	}
	return out
}

func renderJSON(w io.Writer, rs database.ResultSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records(rs))
}

// renderYAML keeps columns in table order, which a map would lose.
func renderYAML(w io.Writer, rs database.ResultSet) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, values := range rs.Rows {
		rec := &yaml.Node{Kind: yaml.MappingNode}
		for i, col := range rs.Columns {
			if i >= len(values) {
				break
			}
			rec.Content = append(rec.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: values[i]},
			)
		}
		doc.Content = append(doc.Content, rec)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func renderTSV(w io.Writer, rs database.ResultSet) error {
	if _, err := fmt.Fprintln(w, strings.Join(escapeTSV(rs.Columns), "\t")); err != nil {
		return err
	}
	for _, values := range rs.Rows {
		if _, err := fmt.Fprintln(w, strings.Join(escapeTSV(values), "\t")); err != nil {
			return err
		}
	}
	return nil
}

var tsvEscaper = strings.NewReplacer(`\`, `\\`, "\t", `\t`, "\n", `\n`, "\r", `\r`)

// escapeTSV escapes the characters that would break a TSV line.
func escapeTSV(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = tsvEscaper.Replace(v)
	}
	return out
}
