package processor

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
)

// ScanConfig holds the thresholds and limits for one scan. It is built once
// at startup, validated, and read-only afterwards.
type ScanConfig struct {
	// NoiseFloorDb is the level below which audio counts as silent (dBFS).
	NoiseFloorDb float64 `validate:"gte=-120,lte=0"`

	// MinSilence is the shortest span silencedetect reports at all (seconds).
	MinSilence float64 `validate:"gt=0"`

	// MidFlagThreshold flags a bounded silence at or above this duration (seconds).
	MidFlagThreshold float64 `validate:"gt=0"`

	// EndFlagThreshold flags a trailing silence whose inferred duration
	// (total - start) is at or above this value (seconds).
	EndFlagThreshold float64 `validate:"gte=0"`

	// FileTimeout bounds one ffmpeg invocation; a hang becomes a per-file
	// failure instead of stalling the scan.
	FileTimeout time.Duration `validate:"gt=0"`

	// Workers is the number of files analysed concurrently.
	Workers int `validate:"gte=1"`
}

// DefaultScanConfig returns the compiled-in scan thresholds.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		NoiseFloorDb:     -50,
		MinSilence:       1.0,
		MidFlagThreshold: 2.0,
		EndFlagThreshold: 10.0,
		FileTimeout:      2 * time.Minute,
		Workers:          runtime.NumCPU(),
	}
}

// Validate checks the configuration against its struct tags.
func (c ScanConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid scan configuration: %w", err)
	}
	return nil
}
