// package formatter renders the configuration document for people: option tables, a Markdown summary and a schedule CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/tfx/internal/models"
	"github.com/desertthunder/tfx/internal/projection"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Format names an export format accepted by `tfx export --format`.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatCSV      Format = "csv"
)

// ParseFormat maps a flag value onto a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use json, md, or csv)", s)
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderTable draws a rounded table, or tab-separated values when plain is set.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment, plain bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	if plain {
		return tw.RenderTSV()
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func status(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// PlaylistTable lists playlist options with their position in the document.
func PlaylistTable(opts []projection.PlaylistOption, plain bool) string {
	rows := make([][]string, len(opts))
	for i, o := range opts {
		rows[i] = []string{
			strconv.Itoa(o.Index + 1),
			o.Label,
			string(o.Playlist.Type),
			status(o.Playlist.Active),
			o.Playlist.URLOrFolder,
		}
	}
	return renderTable(
		[]string{"#", "Playlist", "Type", "Status", "URL / Folders"},
		rows,
		[]columnAlignment{alignRight},
		plain,
	)
}

// ScheduleTable lists schedule options with the key used to update or delete them.
func ScheduleTable(opts []projection.ScheduleOption, plain bool) string {
	rows := make([][]string, len(opts))
	for i, o := range opts {
		rows[i] = []string{
			strconv.Itoa(o.Schedule.Schedule),
			o.Label,
			o.Value,
			Occurrence(o.Schedule),
			status(o.Schedule.Active),
		}
	}
	return renderTable(
		[]string{"#", "Schedule", "Key", "When", "Status"},
		rows,
		[]columnAlignment{alignRight},
		plain,
	)
}

// PickerTable lists the combined delete picker. Separator rows have no value.
func PickerTable(opts []projection.PickerOption, plain bool) string {
	rows := make([][]string, 0, len(opts))
	for _, o := range opts {
		if !o.Selectable() {
			rows = append(rows, []string{"", "-- " + o.Label + " --", ""})
			continue
		}
		rows = append(rows, []string{string(o.Kind), o.Label, o.Value})
	}
	return renderTable([]string{"Kind", "Label", "Value"}, rows, nil, plain)
}

// PlaylistTypesTable describes each playlist type and the form fields it uses.
func PlaylistTypesTable(plain bool) string {
	rows := make([][]string, len(models.PlaylistTypes))
	for i, t := range models.PlaylistTypes {
		var fields []string
		if t.IsOnline() {
			fields = append(fields, "url")
		} else {
			fields = append(fields, "folders")
		}
		if t.UsesSeekTo() {
			fields = append(fields, "seekTo")
		}
		if t.UsesBumpers() {
			fields = append(fields, "bumpers")
		}
		if t.UsesRepeat() {
			fields = append(fields, "repeat")
		}
		rows[i] = []string{string(t), t.Description(), strings.Join(fields, ", ")}
	}
	return renderTable([]string{"Type", "Description", "Fields"}, rows, nil, plain)
}

// Occurrence describes when a schedule airs, e.g. "Mon, Tue @ 08:00" or "daily @ 20:00".
func Occurrence(s models.Schedule) string {
	var when string
	switch {
	case s.UsesDates():
		when = strings.Join(s.Dates, ", ")
	case len(s.Days) > 0:
		names := make([]string, 0, len(s.Days))
		for _, d := range s.Days {
			if name := models.DayName(d); name != "" {
				names = append(names, name[:3])
			}
		}
		when = strings.Join(names, ", ")
	case s.IsDaily():
		when = "daily"
	default:
		return "unscheduled"
	}
	if s.Start != "" {
		when += " @ " + s.Start
	}
	return when
}

// ExportSchedulesToCSV converts the schedules to CSV with columns: Schedule, Playlist, Start, Days, Dates, Type, Active, Color
func ExportSchedulesToCSV(doc *models.ConfigDocument) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Schedule", "Playlist", "Start", "Days", "Dates", "Type", "Active", "Color"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, s := range doc.Schedules {
		days := make([]string, len(s.Days))
		for i, d := range s.Days {
			days[i] = strconv.Itoa(d)
		}
		record := []string{
			strconv.Itoa(s.Schedule),
			s.Name,
			s.Start,
			strings.Join(days, " "),
			strings.Join(s.Dates, " "),
			string(s.Type),
			strconv.FormatBool(s.Active),
			s.Color,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown summarizes the document's settings, playlists and schedules
func ExportToMarkdown(doc *models.ConfigDocument) ([]byte, error) {
	var buf bytes.Buffer

	title := doc.Name
	if title == "" {
		title = "Untitled configuration"
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)

	if doc.Version != "" {
		fmt.Fprintf(&buf, "**Version**: %s\n", doc.Version)
	}
	if doc.LastModified != "" {
		fmt.Fprintf(&buf, "**Last modified**: %s\n", doc.LastModified)
	}
	fmt.Fprintf(&buf, "**Wait**: %ds\n", doc.Wait)
	fmt.Fprintf(&buf, "**Automation**: %s\n", enabled(!doc.AutomationDisabled))
	fmt.Fprintf(&buf, "**Notifications**: %s\n\n", enabled(!doc.NotificationsDisabled))

	buf.WriteString("## Playlists\n\n")
	if len(doc.Playlists) == 0 {
		buf.WriteString("_None_\n")
	}
	for i, p := range doc.Playlists {
		fmt.Fprintf(&buf, "%d. %s **%s** (%s)", i+1, glyph(p.Active), strings.TrimSpace(p.Name), p.Type)
		if p.URLOrFolder != "" {
			fmt.Fprintf(&buf, ": `%s`", p.URLOrFolder)
		}
		buf.WriteString("\n")
		if p.Description != "" {
			fmt.Fprintf(&buf, "   %s\n", p.Description)
		}
	}

	buf.WriteString("\n## Schedules\n\n")
	if len(doc.Schedules) == 0 {
		buf.WriteString("_None_\n")
	}
	for _, s := range doc.Schedules {
		fmt.Fprintf(&buf, "- %s **%s** #%d: %s\n", glyph(s.Active), strings.TrimSpace(s.Name), s.Schedule, Occurrence(s))
	}

	return buf.Bytes(), nil
}

func enabled(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

func glyph(active bool) string {
	if active {
		return "✅"
	}
	return "❌"
}

// WriteExport writes doc in a non-JSON format into dir and returns the file path.
//
// Markdown goes to config.md and CSV to schedules.csv.
func WriteExport(doc *models.ConfigDocument, format Format, dir string) (string, error) {
	var (
		data []byte
		name string
		err  error
	)
	switch format {
	case FormatMarkdown:
		data, err = ExportToMarkdown(doc)
		name = "config.md"
	case FormatCSV:
		data, err = ExportSchedulesToCSV(doc)
		name = "schedules.csv"
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
