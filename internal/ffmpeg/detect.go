// Package ffmpeg invokes the external ffmpeg binary to run silence
// detection on a single audio file.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/quietfile/deadair/internal/processor"
)

// DefaultBinary is the analysis tool looked up on PATH.
const DefaultBinary = "ffmpeg"

// ErrTimeout marks an invocation killed by the per-file deadline.
var ErrTimeout = errors.New("ffmpeg timed out")

// Available resolves the ffmpeg binary on PATH. A missing binary is a
// startup failure, not a per-file one.
func Available() (string, error) {
	path, err := exec.LookPath(DefaultBinary)
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found on PATH: %w", err)
	}
	return path, nil
}

// DetectArgs builds the argument list for one silencedetect run: decode to
// a null sink with the silencedetect filter parameterized by the configured
// noise floor and minimum duration. Default (info) verbosity is kept on
// purpose: the silence markers and the Duration line both arrive on stderr.
func DetectArgs(path string, cfg processor.ScanConfig) []string {
	return []string{
		"-hide_banner",
		"-nostats",
		"-i", path,
		"-af", fmt.Sprintf("silencedetect=noise=%gdB:d=%g", cfg.NoiseFloorDb, cfg.MinSilence),
		"-f", "null",
		"-",
	}
}

// DetectSilence runs silence detection on one file and returns the captured
// stderr diagnostics. The invocation is bounded by cfg.FileTimeout; a hang
// is reported as ErrTimeout. ffmpeg exits non-zero for some otherwise
// readable inputs, so a failed run still succeeds here when diagnostics were
// produced.
func DetectSilence(ctx context.Context, bin, path string, cfg processor.ScanConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.FileTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, DetectArgs(path, cfg)...)

	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	err := cmd.Run()
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return "", fmt.Errorf("%w after %s", ErrTimeout, cfg.FileTimeout)
	case context.Canceled:
		// Scan aborted; the killed run is not a file failure worth reporting.
		return "", context.Canceled
	}
	if err != nil {
		if stderr.Len() == 0 {
			return "", fmt.Errorf("run ffmpeg: %w", err)
		}
		// Non-zero exit with diagnostics: let the parser decide.
	}

	return stderr.String(), nil
}
