// package formatter exports the action journal to various formats (plain text table, CSV, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"

	"github.com/desertthunder/jamx/internal/models"
	"github.com/desertthunder/jamx/internal/shared"
)

// Format names an export format accepted by [ExportEvents].
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists every supported format in display order
var Formats = []Format{FormatText, FormatCSV, FormatMarkdown, FormatJSON}

// ParseFormat resolves a user-supplied format name. "md" is accepted for Markdown.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "md" {
		return FormatMarkdown, nil
	}
	if f, ok := lo.Find(Formats, func(f Format) bool { return string(f) == name }); ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown format %q (expected one of %s)", shared.ErrInvalidFlag, s,
		strings.Join(lo.Map(Formats, func(f Format, _ int) string { return string(f) }), ", "))
}

const timeLayout = "2006-01-02 15:04:05"

var csvHeaders = []string{"Sequence", "ID", "Time", "Action", "Outcome", "Tempo", "Key", "Message"}

// eventRecord is the JSON shape of a journal row
type eventRecord struct {
	ID        string    `json:"id"`
	Sequence  int       `json:"sequence"`
	Action    string    `json:"action"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message"`
	Tempo     *float64  `json:"tempo,omitempty"`
	Key       string    `json:"key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toRecord(e *models.Event, _ int) eventRecord {
	rec := eventRecord{
		ID:        e.ID(),
		Sequence:  e.Sequence(),
		Action:    string(e.Action()),
		Outcome:   string(e.Outcome()),
		Message:   e.Message(),
		CreatedAt: e.CreatedAt(),
	}
	if song := e.Song(); song != nil {
		tempo := song.Tempo
		rec.Tempo = &tempo
		rec.Key = song.Key
	}
	return rec
}

func songColumns(e *models.Event) (string, string) {
	if song := e.Song(); song != nil {
		return song.TempoText(), song.Key
	}
	return "", ""
}

// ExportEvents writes events to w in the requested format
func ExportEvents(w io.Writer, events []*models.Event, format Format) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatText:
		data, err = ExportToText(events)
	case FormatCSV:
		data, err = ExportToCSV(events)
	case FormatMarkdown:
		data, err = ExportToMarkdown(events)
	case FormatJSON:
		data, err = ExportToJSON(events)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ExportToText renders events as a table followed by an outcome summary
func ExportToText(events []*models.Event) ([]byte, error) {
	var buf bytes.Buffer

	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Time", "Action", "Outcome", "Tempo", "Key", "Message"})

	for _, e := range events {
		tempo, key := songColumns(e)
		t.AppendRow(table.Row{
			e.Sequence(),
			e.CreatedAt().Local().Format(timeLayout),
			string(e.Action()),
			outcomeColor(e.Outcome())(string(e.Outcome())),
			tempo,
			key,
			e.Message(),
		})
	}

	t.Render()

	counts := lo.CountValuesBy(events, func(e *models.Event) models.Outcome { return e.Outcome() })
	buf.WriteString(fmt.Sprintf("\nEvents: %d (ok: %d, rejected: %d, failed: %d)\n",
		len(events), counts[models.OutcomeOK], counts[models.OutcomeRejected], counts[models.OutcomeFailed]))

	return buf.Bytes(), nil
}

func outcomeColor(o models.Outcome) func(a ...any) string {
	switch o {
	case models.OutcomeOK:
		return text.FgGreen.Sprint
	case models.OutcomeRejected:
		return text.FgYellow.Sprint
	default:
		return text.FgHiRed.Sprint
	}
}

// ExportToCSV converts events to CSV with columns: Sequence, ID, Time, Action, Outcome, Tempo, Key, Message
func ExportToCSV(events []*models.Event) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range events {
		tempo, key := songColumns(e)
		record := []string{
			strconv.Itoa(e.Sequence()),
			e.ID(),
			e.CreatedAt().UTC().Format(time.RFC3339),
			string(e.Action()),
			string(e.Outcome()),
			tempo,
			key,
			e.Message(),
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

// ExportToMarkdown converts events to a Markdown document with a summary and a table
func ExportToMarkdown(events []*models.Event) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Jam Session History\n\n")
	buf.WriteString(fmt.Sprintf("**Events**: %d\n\n", len(events)))

	if len(events) == 0 {
		buf.WriteString("_No events recorded._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Time | Action | Outcome | Song | Message |\n")
	buf.WriteString("|---|------|--------|---------|------|---------|\n")
	for _, e := range events {
		song := ""
		if s := e.Song(); s != nil {
			song = s.String()
		}
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n",
			e.Sequence(),
			e.CreatedAt().UTC().Format(timeLayout),
			e.Action(),
			e.Outcome(),
			escapeCell(song),
			escapeCell(e.Message()),
		))
	}

	return buf.Bytes(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// ExportToJSON converts events to an indented JSON array
func ExportToJSON(events []*models.Event) ([]byte, error) {
	records := lo.Map(events, toRecord)
	if records == nil {
		records = []eventRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal events: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteExport writes events to path in the requested format.
//
// Defaults to jamx_history.{ext} when path is empty.
func WriteExport(events []*models.Event, format Format, path string) (string, error) {
	if path == "" {
		path = "jamx_history." + Extension(format)
	}

	var buf bytes.Buffer
	if err := ExportEvents(&buf, events, format); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// Extension returns the conventional file extension for format
func Extension(format Format) string {
	switch format {
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	default:
		return "txt"
	}
}
