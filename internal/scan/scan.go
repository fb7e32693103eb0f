// Package scan enumerates the audio files under a directory tree.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// audioExts are the file extensions handed to the analyser. Anything else
// in the tree is ignored.
var audioExts = map[string]bool{
	".aac":  true,
	".aiff": true,
	".flac": true,
	".m4a":  true,
	".mp3":  true,
	".ogg":  true,
	".opus": true,
	".wav":  true,
	".wma":  true,
}

// SkipNote records a subtree or entry the walk could not read. Skips are
// surfaced to the user after the scan; they never abort it.
type SkipNote struct {
	Path   string
	Reason string
}

// Walk returns the audio files under root in walk order, plus notes for any
// subtrees skipped due to traversal errors. Hidden entries (dot-prefixed
// names) are skipped silently, directories and hidden trees included.
func Walk(root string) ([]string, []SkipNote, error) {
	root = filepath.Clean(root)

	var (
		files []string
		skips []SkipNote
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			skips = append(skips, SkipNote{Path: path, Reason: walkErr.Error()})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if audioExts[strings.ToLower(filepath.Ext(d.Name()))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, skips, nil
}
