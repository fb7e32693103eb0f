// Package ui provides the Bubbletea terminal interface for a running scan.
//
// Workers feed the model through Program.Send; the single Update loop is
// what serializes output, printing each finished report block above the
// progress view with tea.Println so blocks from concurrent workers never
// interleave.
package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/quietfile/deadair/internal/cli"
)

// Model is the Bubbletea model for the scan progress view
type Model struct {
	Root       string
	TotalFiles int

	Completed int
	Silent    int // files with at least one silence record
	Flagged   int // files with a threshold-exceeding record
	Failed    int

	InFlight []string

	StartTime time.Time
	Done      bool
	Aborted   bool

	// cancel stops the scan: no new subprocesses start and in-flight ones
	// are killed through their context.
	cancel context.CancelFunc

	Width  int
	Height int
}

// NewModel creates a scan progress model for the given file count
func NewModel(root string, totalFiles int, cancel context.CancelFunc) Model {
	return Model{
		Root:       root,
		TotalFiles: totalFiles,
		StartTime:  time.Now(),
		cancel:     cancel,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Aborted = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case FileStartMsg:
		m.InFlight = append(m.InFlight, msg.Path)

	case FileResultMsg:
		m.InFlight = removePath(m.InFlight, msg.Path)
		m.Completed++

		switch {
		case errors.Is(msg.Err, context.Canceled):
			// Aborted mid-file: count it, print nothing partial.
		case msg.Err != nil:
			m.Failed++
			return m, tea.Println(cli.WarnStyle.Render(fmt.Sprintf("skipped %s: %v", msg.Path, msg.Err)))
		case msg.Block != "":
			m.Silent++
			if msg.Flagged {
				m.Flagged++
			}
			return m, tea.Println(msg.Block)
		}

	case AllCompleteMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Done || m.Aborted {
		return renderSummary(m)
	}
	return renderScanView(m)
}

func removePath(paths []string, path string) []string {
	for i, p := range paths {
		if p == path {
			return append(paths[:i], paths[i+1:]...)
		}
	}
	return paths
}
