package logging

import (
	"strings"
	"testing"

	"github.com/quietfile/deadair/internal/processor"
)

func testConfig() processor.ScanConfig {
	cfg := processor.DefaultScanConfig()
	cfg.MidFlagThreshold = 1.0
	cfg.EndFlagThreshold = 10.0
	return cfg
}

func mark(raw string, secs float64) *processor.Mark {
	return &processor.Mark{Seconds: secs, Raw: raw}
}

func boundedRecord(start, end, dur string, startS, endS, durS float64, total float64) processor.SilenceRecord {
	return processor.SilenceRecord{
		SilenceEvent: processor.SilenceEvent{
			Start: mark(start, startS),
			End:   mark(end, endS),
			Dur:   mark(dur, durS),
		},
		Total: &total,
		Path:  "a.mp3",
	}
}

func trailingRecord(start string, startS float64, total *float64) processor.SilenceRecord {
	return processor.SilenceRecord{
		SilenceEvent: processor.SilenceEvent{Start: mark(start, startS)},
		Total:        total,
		Path:         "a.mp3",
	}
}

func TestFormatRecordBounded(t *testing.T) {
	rec := boundedRecord("10.0", "12.5", "2.5", 10.0, 12.5, 2.5, 300.0)

	lines := FormatRecord(rec, testConfig())
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	// 2.5 >= MidFlagThreshold 1.0, so the detail line carries the flag.
	if lines[0] != "🚩 start 10.0, end 12.5, duration 2.5" {
		t.Errorf("detail line = %q", lines[0])
	}
	if lines[1] != "total duration: 300.0" {
		t.Errorf("total line = %q", lines[1])
	}
}

func TestFormatRecordUnflaggedBelowThreshold(t *testing.T) {
	rec := boundedRecord("10.0", "10.5", "0.5", 10.0, 10.5, 0.5, 300.0)

	lines := FormatRecord(rec, testConfig())
	if strings.Contains(lines[0], "🚩") {
		t.Errorf("record below threshold was flagged: %q", lines[0])
	}
	if lines[0] != "start 10.0, end 10.5, duration 0.5" {
		t.Errorf("detail line = %q", lines[0])
	}
}

func TestFormatRecordPreservesSourcePrecision(t *testing.T) {
	// Field text must match the report exactly: no rounding, no
	// re-formatting, signs preserved.
	rec := boundedRecord("-0.04", "1.9600", "2", -0.04, 1.96, 2.0, 300.0)

	lines := FormatRecord(rec, testConfig())
	if lines[0] != "🚩 start -0.04, end 1.9600, duration 2" {
		t.Errorf("detail line = %q", lines[0])
	}
}

func TestFormatRecordPlaceholders(t *testing.T) {
	total := 100.0
	rec := trailingRecord("95.0", 95.0, &total)

	lines := FormatRecord(rec, testConfig())
	if !strings.HasPrefix(lines[0], "start 95.0, end none, duration none") {
		t.Errorf("detail line = %q, want none placeholders", lines[0])
	}
}

func TestFormatRecordAllAbsent(t *testing.T) {
	rec := processor.SilenceRecord{Path: "a.mp3"}

	if lines := FormatRecord(rec, testConfig()); lines != nil {
		t.Errorf("all-absent record rendered %q, want nothing", lines)
	}
}

func TestFlaggedTrailingSilence(t *testing.T) {
	total := 100.0

	tests := []struct {
		name  string
		start float64
		end   float64 // EndFlagThreshold
		want  bool
	}{
		{"well over threshold", 50.0, 10.0, true},   // 50s of trailing silence
		{"exactly at threshold", 90.0, 10.0, true},  // total-start == threshold
		{"under threshold", 95.0, 10.0, false},      // 5s < 10s
		{"zero threshold flags everything", 100.0, 0.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.EndFlagThreshold = tt.end
			rec := trailingRecord("s", tt.start, &total)
			if got := Flagged(rec, cfg); got != tt.want {
				t.Errorf("Flagged(start=%v, endThreshold=%v) = %v, want %v",
					tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestFlaggedTrailingWithoutTotal(t *testing.T) {
	rec := trailingRecord("5.0", 5.0, nil)
	if Flagged(rec, testConfig()) {
		t.Error("trailing record without a total must not be flagged")
	}
}

func TestBarLength(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		total float64
		want  int
	}{
		{"silent from the start", 0, 100, 80},
		{"ten percent silent", 90, 100, 8},
		{"start equals total", 480, 480, 0},
		{"zero total", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := tt.total
			rec := trailingRecord("s", tt.start, &total)
			if got := barLength(rec); got != tt.want {
				t.Errorf("barLength(start=%v, total=%v) = %d, want %d",
					tt.start, tt.total, got, tt.want)
			}
		})
	}
}

func TestBarOnlyForTrailingRecords(t *testing.T) {
	rec := boundedRecord("0", "50", "50", 0, 50, 50, 100.0)

	for _, line := range FormatRecord(rec, testConfig()) {
		if strings.Contains(line, barGlyph) {
			t.Errorf("bounded record rendered a bar: %q", line)
		}
	}
}

func TestFormatTotal(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{300, "300.0"},
		{323.456, "323.456"},
		{0, "0.0"},
	}

	for _, tt := range tests {
		if got := formatTotal(&tt.in); got != tt.want {
			t.Errorf("formatTotal(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := formatTotal(nil); got != "none" {
		t.Errorf("formatTotal(nil) = %q, want none", got)
	}
}

func TestRenderFileReportEndToEnd(t *testing.T) {
	report := "silence_start: 10.0\nsilence_end: 12.5\nsilence_duration: 2.5\nDuration: 00:05:00.00"

	rep, err := processor.AnalyzeReport("show/ep1.mp3", report)
	if err != nil {
		t.Fatalf("AnalyzeReport failed: %v", err)
	}

	out := RenderFileReport(rep, testConfig())
	want := "Silence found in show/ep1.mp3\n" +
		"  🚩 start 10.0, end 12.5, duration 2.5\n" +
		"  total duration: 300.0"
	if out != want {
		t.Errorf("report = %q, want %q", out, want)
	}
}

func TestRenderFileReportTrailingAtVeryEnd(t *testing.T) {
	// Silence starting exactly at the end of the file: flagged (inferred
	// duration 0 >= threshold 0) but with a zero-length bar.
	report := "silence_start: 480.0\nDuration: 00:08:00.00"

	rep, err := processor.AnalyzeReport("tail.mp3", report)
	if err != nil {
		t.Fatalf("AnalyzeReport failed: %v", err)
	}

	cfg := testConfig()
	cfg.EndFlagThreshold = 0

	out := RenderFileReport(rep, cfg)
	if !strings.Contains(out, "🚩 start 480.0, end none, duration none") {
		t.Errorf("report missing flagged trailing record: %q", out)
	}
	if strings.Contains(out, barGlyph) {
		t.Errorf("zero-length silence fraction must not draw a bar: %q", out)
	}
}

func TestRenderFileReportGroupsRecordsUnderOneHeader(t *testing.T) {
	report := `Duration: 00:01:40.00
silence_start: 3.5
silence_end: 8.25 | silence_duration: 4.75
silence_start: 95.0
`

	rep, err := processor.AnalyzeReport("two.mp3", report)
	if err != nil {
		t.Fatalf("AnalyzeReport failed: %v", err)
	}

	out := RenderFileReport(rep, testConfig())
	if got := strings.Count(out, "Silence found in"); got != 1 {
		t.Errorf("header printed %d times, want 1:\n%s", got, out)
	}
	if !strings.Contains(out, "start 3.5, end 8.25, duration 4.75") {
		t.Errorf("bounded record missing:\n%s", out)
	}
	if !strings.Contains(out, "start 95.0, end none, duration none") {
		t.Errorf("trailing record missing:\n%s", out)
	}
	// 5% of the file is trailing silence: floor(0.05 * 80) = 4 glyphs.
	if !strings.Contains(out, strings.Repeat(barGlyph, 4)) {
		t.Errorf("trailing bar missing:\n%s", out)
	}
	if strings.Contains(out, strings.Repeat(barGlyph, 5)) {
		t.Errorf("trailing bar too long:\n%s", out)
	}
}

func TestRenderFileReportEmpty(t *testing.T) {
	rep := processor.FileReport{Path: "quiet-free.mp3"}
	if out := RenderFileReport(rep, testConfig()); out != "" {
		t.Errorf("empty report rendered %q", out)
	}
}
