// Package report reads the JSONL event log written by internal/logging and
// aggregates it into a summary, rendered as text, Markdown, or JSON.
//
// Grounded on internal/report/report.go (teacher): kept the
// Reader.Read/Summarize/topCounts/percentile/RenderText/RenderMarkdown/
// RenderJSON/WriteOutput shape verbatim in structure, relabeled from WAF
// decisions to normalization call events.
package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/klyr/pathnorm/internal/logging"
)

type Summary struct {
	Total        int            `json:"total"`
	Succeeded    int            `json:"succeeded"`
	Failed       int            `json:"failed"`
	RateLimited  int            `json:"rate_limited"`
	Start        time.Time      `json:"start"`
	End          time.Time      `json:"end"`
	TopOperation []CountItem    `json:"top_operations"`
	TopDialect   []CountItem    `json:"top_dialects"`
	TopResult    []CountItem    `json:"top_results"`
	Latency      LatencySummary `json:"latency"`
}

type CountItem struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type LatencySummary struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type Reader struct {
	Since time.Time
}

func (r *Reader) Read(path string) ([]logging.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var events []logging.Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e logging.Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, err
		}
		if !r.Since.IsZero() && e.Timestamp.Before(r.Since) {
			continue
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func Summarize(events []logging.Event) Summary {
	var summary Summary
	if len(events) == 0 {
		return summary
	}

	summary.Start = events[0].Timestamp
	summary.End = events[0].Timestamp

	operationCounts := map[string]int{}
	dialectCounts := map[string]int{}
	resultCounts := map[string]int{}
	durationsUS := make([]int64, 0, len(events))

	for _, e := range events {
		summary.Total++
		if e.Timestamp.Before(summary.Start) {
			summary.Start = e.Timestamp
		}
		if e.Timestamp.After(summary.End) {
			summary.End = e.Timestamp
		}

		if e.ResultName == "Success" || e.ResultName == "" {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		if e.ResultName == "RateLimited" {
			summary.RateLimited++
		}

		operationCounts[e.Operation]++
		if e.Dialect != "" {
			dialectCounts[e.Dialect]++
		}
		resultCounts[e.ResultName]++

		durationsUS = append(durationsUS, e.DurationUS)
	}

	summary.TopOperation = topCounts(operationCounts, 5)
	summary.TopDialect = topCounts(dialectCounts, 5)
	summary.TopResult = topCounts(resultCounts, 5)
	summary.Latency = latencySummary(durationsUS)

	return summary
}

func topCounts(counts map[string]int, n int) []CountItem {
	items := make([]CountItem, 0, len(counts))
	for key, count := range counts {
		items = append(items, CountItem{Key: key, Count: count})
	}
	if len(items) == 0 {
		return nil
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Key < items[j].Key
		}
		return items[i].Count > items[j].Count
	})

	if len(items) > n {
		items = items[:n]
	}
	return items
}

func latencySummary(values []int64) LatencySummary {
	if len(values) == 0 {
		return LatencySummary{}
	}
	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return LatencySummary{
		P50: percentile(sorted, 0.50),
		P95: percentile(sorted, 0.95),
		P99: percentile(sorted, 0.99),
	}
}

func percentile(values []int64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	idx := int(math.Ceil(float64(len(values))*p)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return float64(values[idx])
}

func RenderText(summary Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %d\n", summary.Total)
	fmt.Fprintf(&b, "Succeeded: %d\n", summary.Succeeded)
	fmt.Fprintf(&b, "Failed: %d\n", summary.Failed)
	fmt.Fprintf(&b, "Rate limited: %d\n", summary.RateLimited)
	fmt.Fprintf(&b, "Latency p50/p95/p99 (us): %.0f/%.0f/%.0f\n", summary.Latency.P50, summary.Latency.P95, summary.Latency.P99)

	writeCounts(&b, "Top operations", summary.TopOperation)
	writeCounts(&b, "Top dialects", summary.TopDialect)
	writeCounts(&b, "Top results", summary.TopResult)

	return b.String()
}

func RenderMarkdown(summary Summary) string {
	var b strings.Builder
	b.WriteString("# pathnorm Report\n\n")
	b.WriteString("## Totals\n\n")
	fmt.Fprintf(&b, "- Total: %d\n", summary.Total)
	fmt.Fprintf(&b, "- Succeeded: %d\n", summary.Succeeded)
	fmt.Fprintf(&b, "- Failed: %d\n", summary.Failed)
	fmt.Fprintf(&b, "- Rate limited: %d\n", summary.RateLimited)
	fmt.Fprintf(&b, "- Latency p50/p95/p99 (us): %.0f/%.0f/%.0f\n\n", summary.Latency.P50, summary.Latency.P95, summary.Latency.P99)

	writeCountsMarkdown(&b, "Top operations", summary.TopOperation)
	writeCountsMarkdown(&b, "Top dialects", summary.TopDialect)
	writeCountsMarkdown(&b, "Top results", summary.TopResult)

	return b.String()
}

func RenderJSON(summary Summary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}

func writeCounts(b *strings.Builder, title string, items []CountItem) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: none\n", title)
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
}

func writeCountsMarkdown(b *strings.Builder, title string, items []CountItem) {
	b.WriteString("## ")
	b.WriteString(title)
	b.WriteString("\n\n")
	if len(items) == 0 {
		b.WriteString("- none\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
	b.WriteString("\n")
}

func WriteOutput(path string, content []byte) error {
	if path == "" {
		_, err := io.Copy(os.Stdout, bytes.NewReader(content))
		return err
	}
	return os.WriteFile(path, content, 0o600)
}
