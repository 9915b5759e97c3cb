package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/jamx/internal/models"
	"github.com/desertthunder/jamx/internal/shared"
	th "github.com/desertthunder/jamx/internal/testing"
)

func fixtureEvents() []*models.Event {
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	song := &models.SongDetails{Tempo: 120.5, Key: "C#m"}

	return []*models.Event{
		models.RestoreEvent("evt-1", 1, models.ActionRecord, models.OutcomeOK, "Audio analyzed!", song, at, at, nil),
		models.RestoreEvent("evt-2", 2, models.ActionGenerate, models.OutcomeRejected, "Error: model | offline", nil, at, at, nil),
		models.RestoreEvent("evt-3", 3, models.ActionStop, models.OutcomeFailed, "Failed to stop playback!", song, at, at, nil),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"CSV", FormatCSV},
		{"md", FormatMarkdown},
		{" markdown ", FormatMarkdown},
		{"json", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if err != nil {
				t.Fatalf("ParseFormat(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseFormat("yaml")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
		if !strings.Contains(err.Error(), "text, csv, markdown, json") {
			t.Errorf("expected supported formats in error, got %v", err)
		}
	})
}

func TestExporters(t *testing.T) {
	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(fixtureEvents())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"Action", "record", "generate", "stop", "120.5", "C#m", "Audio analyzed!"} {
			if !strings.Contains(output, want) {
				t.Errorf("text export missing %q, got:\n%s", want, output)
			}
		}

		if !strings.Contains(output, "Events: 3 (ok: 1, rejected: 1, failed: 1)") {
			t.Errorf("text export missing summary, got:\n%s", output)
		}
	})

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(fixtureEvents())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected header and 3 rows, got %d lines", len(lines))
		}

		if lines[0] != "Sequence,ID,Time,Action,Outcome,Tempo,Key,Message" {
			t.Errorf("unexpected CSV headers: %s", lines[0])
		}

		if lines[1] != "1,evt-1,2026-03-14T15:09:26Z,record,ok,120.5,C#m,Audio analyzed!" {
			t.Errorf("unexpected first row: %s", lines[1])
		}

		if !strings.HasPrefix(lines[2], "2,evt-2,2026-03-14T15:09:26Z,generate,rejected,,,") {
			t.Errorf("expected empty song columns for event without song: %s", lines[2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(fixtureEvents())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "# Jam Session History") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "**Events**: 3") {
			t.Error("Markdown missing event count")
		}
		if !strings.Contains(output, "| 1 | 2026-03-14 15:09:26 | record | ok | 120.5 BPM, C#m | Audio analyzed! |") {
			t.Errorf("Markdown missing first row, got:\n%s", output)
		}
		if !strings.Contains(output, `Error: model \| offline`) {
			t.Error("Markdown should escape pipes in cells")
		}
	})

	t.Run("ExportToMarkdown empty", func(t *testing.T) {
		data, err := ExportToMarkdown(nil)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if !strings.Contains(string(data), "_No events recorded._") {
			t.Errorf("expected empty marker, got: %s", data)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(fixtureEvents())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var records []map[string]any
		if err := json.Unmarshal(data, &records); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}

		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		if records[0]["tempo"] != 120.5 || records[0]["key"] != "C#m" {
			t.Errorf("unexpected song fields: %v", records[0])
		}
		if _, ok := records[1]["tempo"]; ok {
			t.Error("expected tempo to be omitted for event without song")
		}
	})

	t.Run("ExportToJSON empty", func(t *testing.T) {
		data, err := ExportToJSON(nil)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if strings.TrimSpace(string(data)) != "[]" {
			t.Errorf("expected empty array, got %s", data)
		}
	})
}

func TestExportEvents(t *testing.T) {
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := ExportEvents(&buf, fixtureEvents(), format); err != nil {
				t.Fatalf("ExportEvents failed: %v", err)
			}
			if buf.Len() == 0 {
				t.Error("expected output")
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := ExportEvents(&buf, fixtureEvents(), Format("xml")); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("writes to path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.csv")

		got, err := WriteExport(fixtureEvents(), FormatCSV, path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if got != path {
			t.Errorf("expected path %s, got %s", path, got)
		}

		data := th.MustReadFile(t, path)
		if !strings.HasPrefix(data, "Sequence,ID") {
			t.Errorf("unexpected file contents: %s", data)
		}
	})

	t.Run("default filename", func(t *testing.T) {
		t.Chdir(t.TempDir())

		got, err := WriteExport(fixtureEvents(), FormatMarkdown, "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if got != "jamx_history.md" {
			t.Errorf("expected default filename, got %s", got)
		}
	})
}
