package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/quietfile/deadair/internal/processor"
	"github.com/thlib/go-timezone-local/tzlocal"
)

// ScanLog writes a detailed per-file record of one scan: the raw ffmpeg
// diagnostics alongside the parsed result. Workers log concurrently, so all
// writes go through a mutex.
type ScanLog struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// LocalZone returns the runtime IANA timezone name, or "UTC" when detection
// fails.
func LocalZone() string {
	zone, err := tzlocal.RuntimeTZ()
	if err != nil || zone == "" {
		return "UTC"
	}
	return zone
}

// NewScanLog creates a timestamped log file in the working directory and
// writes the scan header.
func NewScanLog(root string, cfg processor.ScanConfig) (*ScanLog, error) {
	now := time.Now()
	path := fmt.Sprintf("deadair-%s.log", now.Format("20060102-150405"))

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create scan log: %w", err)
	}

	fmt.Fprintf(f, "deadair scan log\n")
	fmt.Fprintf(f, "root: %s\n", root)
	fmt.Fprintf(f, "started: %s (%s)\n", now.Format("2006-01-02 15:04:05"), LocalZone())
	fmt.Fprintf(f, "noise floor: %.1f dB, min silence: %.2fs, flag thresholds: %.2fs mid / %.2fs end\n\n",
		cfg.NoiseFloorDb, cfg.MinSilence, cfg.MidFlagThreshold, cfg.EndFlagThreshold)

	return &ScanLog{f: f, path: path}, nil
}

// Path returns the log file location.
func (l *ScanLog) Path() string { return l.path }

// File appends one file's outcome: the analysis error or the parsed records,
// followed by the raw subprocess diagnostics.
func (l *ScanLog) File(path, raw string, rep processor.FileReport, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.f, "== %s\n", path)
	switch {
	case err != nil:
		fmt.Fprintf(l.f, "failed: %v\n", err)
	case !rep.Silent():
		fmt.Fprintf(l.f, "no silence detected\n")
	default:
		for _, rec := range rep.Records {
			fmt.Fprintf(l.f, "silence start=%s end=%s duration=%s\n",
				formatMark(rec.Start), formatMark(rec.End), formatMark(rec.Dur))
		}
	}
	if raw != "" {
		fmt.Fprintf(l.f, "--- ffmpeg output ---\n%s\n", raw)
	}
	fmt.Fprintln(l.f)
}

// Close writes the closing summary and releases the file.
func (l *ScanLog) Close(scanned, silent, failed int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.f, "finished: %d scanned, %d with silence, %d failed\n", scanned, silent, failed)
	return l.f.Close()
}
