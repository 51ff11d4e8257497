// Command ppinet-tui is an interactive terminal front end: enter a protein
// ID, pick a database and browse the centrality table of its network.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/ppinet/pkg/config"
	"github.com/dd0wney/ppinet/pkg/interactions"
	"github.com/dd0wney/ppinet/pkg/logging"
	"github.com/dd0wney/ppinet/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	protein := flag.String("protein", "", "Protein ID to prefill")
	logFile := flag.String("log", "", "Write JSON logs to this file (logs are discarded otherwise)")
	flag.Parse()

	if err := run(*configPath, *protein, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "ppinet-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, protein, logFile string) error {
	cfg := config.Default()
	var err error
	if configPath != "" {
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	} else if err = cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}

	// The terminal belongs to the UI; logs go to a file or nowhere
	var sink io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		sink = f
	}
	logger := logging.NewJSONLogger(sink, cfg.LogLevel())

	fetcher, err := cfg.Fetcher()
	if err != nil {
		return err
	}
	layoutKind, layoutConfig := cfg.LayoutOptions()
	analyzer := pipeline.NewAnalyzer(fetcher,
		pipeline.WithLogger(logger),
		pipeline.WithOptions(cfg.AlgorithmOptions()),
		pipeline.WithLayout(layoutKind, layoutConfig))

	source, err := interactions.ParseSource(cfg.Data.DefaultSource)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(initialModel(ctx, analyzer, protein, source), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
