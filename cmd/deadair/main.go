package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/quietfile/deadair/internal/cli"
	"github.com/quietfile/deadair/internal/ffmpeg"
	"github.com/quietfile/deadair/internal/logging"
	"github.com/quietfile/deadair/internal/processor"
	"github.com/quietfile/deadair/internal/scan"
	"github.com/quietfile/deadair/internal/ui"
)

var (
	version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Version bool   `short:"v" help:"Show version information"`
	Logs    bool   `help:"Save a detailed scan log"`
	Path    string `arg:"" name:"path" help:"Directory tree to scan for audio files" type:"existingdir" optional:""`
}

func main() {
	cliArgs := &CLI{}
	kctx := kong.Parse(cliArgs,
		kong.Name("deadair"),
		kong.Description("Dead-air scanner for audio archives"),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	// Handle version flag
	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	// Validate input
	if cliArgs.Path == "" {
		cli.PrintError("No scan path specified")
		kctx.PrintUsage(false)
		os.Exit(1)
	}

	// The analysis binary is a startup requirement, not a per-file one.
	bin, err := ffmpeg.Available()
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	cfg := processor.DefaultScanConfig()
	if err := cfg.Validate(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	files, skips, err := scan.Walk(cliArgs.Path)
	if err != nil {
		cli.PrintError(fmt.Sprintf("scan failed: %v", err))
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No audio files found under %s\n", cliArgs.Path)
		reportSkips(skips)
		os.Exit(0)
	}

	var scanLog *logging.ScanLog
	if cliArgs.Logs {
		scanLog, err = logging.NewScanLog(cliArgs.Path, cfg)
		if err != nil {
			cli.PrintWarning(fmt.Sprintf("continuing without scan log: %v", err))
		}
	}

	scanCtx, cancelScan := context.WithCancel(context.Background())
	defer cancelScan()

	model := ui.NewModel(cliArgs.Path, len(files), cancelScan)
	p := tea.NewProgram(model)

	// Fan the files out across the worker pool; the UI's Update loop is the
	// single consumer of results, so report blocks never interleave.
	go func() {
		jobs := make(chan string)
		var wg sync.WaitGroup

		for range cfg.Workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for path := range jobs {
					analyzeOne(scanCtx, p, bin, path, cfg, scanLog)
				}
			}()
		}

	feed:
		for _, path := range files {
			select {
			case <-scanCtx.Done():
				break feed
			case jobs <- path:
			}
		}
		close(jobs)
		wg.Wait()

		p.Send(ui.AllCompleteMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		os.Exit(1)
	}

	reportSkips(skips)

	if m, ok := finalModel.(ui.Model); ok && scanLog != nil {
		if err := scanLog.Close(m.Completed, m.Silent, m.Failed); err != nil {
			cli.PrintWarning(fmt.Sprintf("closing scan log: %v", err))
		} else {
			fmt.Printf("Detailed scan log: %s\n", scanLog.Path())
		}
	}
}

// analyzeOne runs the full per-file pipeline: subprocess, parse, aggregate,
// render. All outcomes flow back to the UI as a single result message.
func analyzeOne(ctx context.Context, p *tea.Program, bin, path string, cfg processor.ScanConfig, scanLog *logging.ScanLog) {
	p.Send(ui.FileStartMsg{Path: path})

	raw, err := ffmpeg.DetectSilence(ctx, bin, path, cfg)

	var rep processor.FileReport
	if err == nil {
		rep, err = processor.AnalyzeReport(path, raw)
	}

	var (
		block   string
		flagged bool
	)
	if err == nil {
		block = logging.RenderFileReport(rep, cfg)
		for _, rec := range rep.Records {
			if logging.Flagged(rec, cfg) {
				flagged = true
				break
			}
		}
	}

	if scanLog != nil {
		scanLog.File(path, raw, rep, err)
	}

	p.Send(ui.FileResultMsg{
		Path:    path,
		Block:   block,
		Err:     err,
		Flagged: flagged,
	})
}

// reportSkips surfaces subtrees the walk could not read. They are
// diagnostics, not failures: the scan already completed around them.
func reportSkips(skips []scan.SkipNote) {
	for _, s := range skips {
		cli.PrintWarning(fmt.Sprintf("skipped %s: %s", s.Path, s.Reason))
	}
}
