package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klyr/pathnorm/internal/logging"
)

func writeEvents(t *testing.T, events []logging.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "events.jsonl")
	logger, closeFn, err := logging.OpenEventLog(path)
	if err != nil {
		t.Fatalf("OpenEventLog: %v", err)
	}
	defer closeFn()
	for _, e := range events {
		if err := logger.Write(e); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	return path
}

func TestReaderReadsJSONL(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	path := writeEvents(t, []logging.Event{
		{Timestamp: base, Operation: "normalize", Dialect: "posix", ResultName: "Success", DurationUS: 10},
		{Timestamp: base.Add(time.Minute), Operation: "normalize", Dialect: "posix", ResultName: "InvalidPathFormat", DurationUS: 20},
	})

	var r Reader
	events, err := r.Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
}

func TestReaderFiltersBySince(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	path := writeEvents(t, []logging.Event{
		{Timestamp: base, Operation: "normalize", ResultName: "Success"},
		{Timestamp: base.Add(time.Hour), Operation: "normalize", ResultName: "Success"},
	})

	r := Reader{Since: base.Add(30 * time.Minute)}
	events, err := r.Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
}

func TestReaderErrorsOnMissingFile(t *testing.T) {
	var r Reader
	if _, err := r.Read(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []logging.Event{
		{Timestamp: base, Operation: "normalize", Dialect: "posix", ResultName: "Success", DurationUS: 10},
		{Timestamp: base.Add(time.Second), Operation: "normalize", Dialect: "posix", ResultName: "InvalidPathFormat", DurationUS: 20},
		{Timestamp: base.Add(2 * time.Second), Operation: "is_normalized", Dialect: "win", ResultName: "Success", DurationUS: 30},
		{Timestamp: base.Add(3 * time.Second), Operation: "normalize", ResultName: "RateLimited"},
	}

	summary := Summarize(events)
	if summary.Total != 4 {
		t.Fatalf("Total = %d, want 4", summary.Total)
	}
	if summary.Succeeded != 2 {
		t.Fatalf("Succeeded = %d, want 2", summary.Succeeded)
	}
	if summary.Failed != 2 {
		t.Fatalf("Failed = %d, want 2", summary.Failed)
	}
	if summary.RateLimited != 1 {
		t.Fatalf("RateLimited = %d, want 1", summary.RateLimited)
	}
	if !summary.Start.Equal(base) {
		t.Fatalf("Start = %v, want %v", summary.Start, base)
	}
	if !summary.End.Equal(base.Add(3 * time.Second)) {
		t.Fatalf("End = %v, want %v", summary.End, base.Add(3*time.Second))
	}
	if len(summary.TopOperation) == 0 || summary.TopOperation[0].Key != "normalize" {
		t.Fatalf("TopOperation = %+v, want normalize first", summary.TopOperation)
	}
	if len(summary.TopDialect) == 0 || summary.TopDialect[0].Key != "posix" {
		t.Fatalf("TopDialect = %+v, want posix first", summary.TopDialect)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Total != 0 {
		t.Fatalf("Total = %d, want 0", summary.Total)
	}
	if summary.TopOperation != nil {
		t.Fatalf("TopOperation = %+v, want nil", summary.TopOperation)
	}
}

func TestTopCountsOrdersByCountThenKey(t *testing.T) {
	counts := map[string]int{"b": 2, "a": 2, "c": 1}
	items := topCounts(counts, 5)
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if items[0].Key != "a" || items[1].Key != "b" || items[2].Key != "c" {
		t.Fatalf("order = %+v, want a,b,c", items)
	}
}

func TestTopCountsTruncatesToN(t *testing.T) {
	counts := map[string]int{"a": 1, "b": 2, "c": 3}
	items := topCounts(counts, 2)
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Key != "c" || items[1].Key != "b" {
		t.Fatalf("order = %+v, want c,b", items)
	}
}

func TestLatencySummaryPercentiles(t *testing.T) {
	values := []int64{10, 20, 30, 40, 50}
	ls := latencySummary(values)
	if ls.P50 != 30 {
		t.Fatalf("P50 = %v, want 30", ls.P50)
	}
	if ls.P99 != 50 {
		t.Fatalf("P99 = %v, want 50", ls.P99)
	}
}

func TestLatencySummaryEmpty(t *testing.T) {
	ls := latencySummary(nil)
	if ls != (LatencySummary{}) {
		t.Fatalf("latencySummary(nil) = %+v, want zero value", ls)
	}
}

func TestRenderText(t *testing.T) {
	summary := Summarize([]logging.Event{{Operation: "normalize", ResultName: "Success"}})
	text := RenderText(summary)
	if text == "" {
		t.Fatalf("expected non-empty text")
	}
}

func TestRenderMarkdown(t *testing.T) {
	summary := Summarize([]logging.Event{{Operation: "normalize", ResultName: "Success"}})
	md := RenderMarkdown(summary)
	if md == "" {
		t.Fatalf("expected non-empty markdown")
	}
}

func TestRenderJSON(t *testing.T) {
	summary := Summarize([]logging.Event{{Operation: "normalize", ResultName: "Success"}})
	data, err := RenderJSON(summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty JSON")
	}
}

func TestWriteOutputToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := WriteOutput(path, []byte("hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("content = %q, want hello", data)
	}
}
