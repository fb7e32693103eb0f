// Package logging renders silence records into the console report and the
// optional on-disk scan log.
package logging

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/quietfile/deadair/internal/processor"
)

const (
	// placeholder stands in for any absent field.
	placeholder = "none"

	// flagMarker decorates silences that exceed a threshold.
	flagMarker = "🚩"

	// barGlyph draws the trailing-silence proportion bar.
	barGlyph = "█"

	// barWidth is the bar length for a file that is silent from the very
	// first sample.
	barWidth = 80
)

// FormatRecord renders the indented detail lines for one silence record:
// the start/end/duration line (flag-prefixed when a threshold is exceeded),
// the total duration line, and the proportion bar for silences that run to
// the end of the file. An all-absent record renders nothing; aggregation
// already suppresses those, this re-validates.
func FormatRecord(rec processor.SilenceRecord, cfg processor.ScanConfig) []string {
	if rec.Start == nil && rec.End == nil && rec.Dur == nil {
		return nil
	}

	detail := fmt.Sprintf("start %s, end %s, duration %s",
		formatMark(rec.Start), formatMark(rec.End), formatMark(rec.Dur))
	if Flagged(rec, cfg) {
		detail = flagMarker + " " + detail
	}

	lines := []string{detail, "total duration: " + formatTotal(rec.Total)}

	if n := barLength(rec); n >= 1 {
		lines = append(lines, strings.Repeat(barGlyph, n))
	}
	return lines
}

// Flagged reports whether the record exceeds a configured threshold: a
// bounded silence at least MidFlagThreshold long, or a trailing silence
// whose inferred span (total - start) is at least EndFlagThreshold.
func Flagged(rec processor.SilenceRecord, cfg processor.ScanConfig) bool {
	if rec.Dur != nil && rec.Dur.Seconds >= cfg.MidFlagThreshold {
		return true
	}
	if rec.Trailing() && rec.Total != nil {
		return *rec.Total-rec.Start.Seconds >= cfg.EndFlagThreshold
	}
	return false
}

// barLength computes the width of the trailing-silence bar: the silent share
// of the file scaled to barWidth and floored. Files without a usable total
// (absent or zero) get no bar.
func barLength(rec processor.SilenceRecord) int {
	if !rec.Trailing() || rec.Total == nil || *rec.Total == 0 {
		return 0
	}
	fraction := (*rec.Total - rec.Start.Seconds) / *rec.Total
	return int(math.Floor(fraction * barWidth))
}

// formatMark renders a captured timestamp with the exact precision ffmpeg
// printed it, or the placeholder when absent.
func formatMark(m *processor.Mark) string {
	if m == nil {
		return placeholder
	}
	return m.Raw
}

// formatTotal renders the computed total duration with at least one decimal
// digit so whole-second totals still read as seconds (300 -> "300.0").
func formatTotal(total *float64) string {
	if total == nil {
		return placeholder
	}
	s := strconv.FormatFloat(*total, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// RenderFileReport renders the full report block for one file: a single
// header line followed by the indented detail lines of every record. Files
// with no surviving records render nothing.
func RenderFileReport(rep processor.FileReport, cfg processor.ScanConfig) string {
	if !rep.Silent() {
		return ""
	}

	var b strings.Builder
	b.WriteString("Silence found in ")
	b.WriteString(rep.Path)
	for _, rec := range rep.Records {
		for _, line := range FormatRecord(rec, cfg) {
			b.WriteString("\n  ")
			b.WriteString(line)
		}
	}
	return b.String()
}
