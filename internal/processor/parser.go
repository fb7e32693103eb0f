// Package processor turns raw ffmpeg silencedetect diagnostics into
// structured silence records.
package processor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Marker patterns emitted by ffmpeg's silencedetect filter, e.g.
//
//	[silencedetect @ 0x...] silence_start: 42.123
//	[silencedetect @ 0x...] silence_end: 43.456 | silence_duration: 1.333
//
// and the container duration line:
//
//	Duration: 00:05:23.45, start: 0.000000, bitrate: 128 kb/s
//
// The patterns tolerate arbitrary surrounding text and negative timestamps
// (silencedetect reports slightly negative onsets near stream boundaries).
var (
	startRe = regexp.MustCompile(`silence_start:\s*(-?[\d.]+)`)
	endRe   = regexp.MustCompile(`silence_end:\s*(-?[\d.]+)`)
	durRe   = regexp.MustCompile(`silence_duration:\s*(-?[\d.]+)`)
	totalRe = regexp.MustCompile(`Duration:\s*(\d+):(\d+):(\d+(?:\.\d+)?)`)
)

// Mark is one timestamp captured from the report. Raw keeps the exact source
// text so output precision matches what ffmpeg printed; Seconds carries the
// parsed value for threshold comparisons. Sign is preserved, never clamped.
type Mark struct {
	Seconds float64
	Raw     string
}

// SilenceEvent is one silence region as discovered in the report text.
// Dur is only set once a matching silence_end was seen, so Dur != nil
// implies End != nil. A nil End means the silence runs to end of file.
type SilenceEvent struct {
	Start *Mark
	End   *Mark
	Dur   *Mark
}

// empty reports whether no field has been captured yet.
func (e SilenceEvent) empty() bool {
	return e.Start == nil && e.End == nil && e.Dur == nil
}

// ParseError describes a marker whose captured value is not a valid number.
// The report for that file is considered corrupt and is abandoned.
type ParseError struct {
	Marker   string
	Fragment string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad %s value %q: %v", e.Marker, e.Fragment, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseReport scans one subprocess report for silence markers and the total
// stream duration.
//
// A silence_start opens a pending event; if an unclosed pending event exists
// it is flushed as-is first. A silence_end fills in the pending event's end,
// and a silence_duration closes the event, emitting it. A report ending with
// an open event (silence to end of file) emits that partial event last.
//
// A report with no markers yields (nil, nil, nil); the caller prints nothing
// for that file.
func ParseReport(text string) ([]SilenceEvent, *float64, error) {
	var (
		events  []SilenceEvent
		pending SilenceEvent
		total   *float64
	)

	for line := range strings.Lines(text) {
		if m := startRe.FindStringSubmatch(line); m != nil {
			mark, err := parseMark("silence_start", m[1])
			if err != nil {
				return nil, nil, err
			}
			if !pending.empty() {
				events = append(events, pending)
			}
			pending = SilenceEvent{Start: mark}
		}

		if m := endRe.FindStringSubmatch(line); m != nil {
			mark, err := parseMark("silence_end", m[1])
			if err != nil {
				return nil, nil, err
			}
			pending.End = mark
		}

		if m := durRe.FindStringSubmatch(line); m != nil {
			mark, err := parseMark("silence_duration", m[1])
			if err != nil {
				return nil, nil, err
			}
			pending.Dur = mark
			events = append(events, pending)
			pending = SilenceEvent{}
		}

		if m := totalRe.FindStringSubmatch(line); m != nil && total == nil {
			secs, err := parseClockTime(m[1], m[2], m[3])
			if err != nil {
				return nil, nil, err
			}
			total = &secs
		}
	}

	// Trailing silence: an opened event that never saw silence_duration.
	if !pending.empty() {
		events = append(events, pending)
	}

	return events, total, nil
}

func parseMark(marker, raw string) (*Mark, error) {
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &ParseError{Marker: marker, Fragment: raw, Err: err}
	}
	return &Mark{Seconds: secs, Raw: raw}, nil
}

// parseClockTime converts the HH:MM:SS.ss components of a Duration line to
// seconds.
func parseClockTime(hours, minutes, seconds string) (float64, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, &ParseError{Marker: "Duration", Fragment: hours, Err: err}
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, &ParseError{Marker: "Duration", Fragment: minutes, Err: err}
	}
	s, err := strconv.ParseFloat(seconds, 64)
	if err != nil {
		return 0, &ParseError{Marker: "Duration", Fragment: seconds, Err: err}
	}
	return float64(h)*3600 + float64(m)*60 + s, nil
}
