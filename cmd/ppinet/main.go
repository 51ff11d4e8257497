// Command ppinet analyzes the interaction network around one protein and
// prints its centrality table.
//
//	ppinet -protein BRCA1 -source BioGRID
//	ppinet -input edges.tsv -format json -svg network.svg
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dd0wney/ppinet/pkg/algorithms"
	"github.com/dd0wney/ppinet/pkg/config"
	"github.com/dd0wney/ppinet/pkg/interactions"
	"github.com/dd0wney/ppinet/pkg/logging"
	"github.com/dd0wney/ppinet/pkg/network"
	"github.com/dd0wney/ppinet/pkg/pipeline"
	"github.com/dd0wney/ppinet/pkg/report"
	"github.com/dd0wney/ppinet/pkg/visualization"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	protein    string
	source     string
	configPath string
	fixtures   string
	dataDir    string
	input      string
	format     string
	layout     string
	metric     string
	logLevel   string
	jsonPath   string
	xlsxPath   string
	svgPath    string
	dotPath    string
	pretty     bool
	compress   bool
	timeout    time.Duration
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("ppinet", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.protein, "protein", "", "Protein identifier to analyze (e.g. BRCA1)")
	fs.StringVar(&o.source, "source", "", "Interaction database: BioGRID or STRING (default from config)")
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.fixtures, "fixtures", "", "YAML fixture bundle")
	fs.StringVar(&o.dataDir, "data", "", "Directory of <source>/<protein>.tsv edge lists")
	fs.StringVar(&o.input, "input", "", "Analyze a local TSV/CSV edge list instead of fetching")
	fs.StringVar(&o.format, "format", "table", "Output format: table or json")
	fs.StringVar(&o.layout, "layout", "", "Layout: spring, circular or shell")
	fs.StringVar(&o.metric, "metric", "degree", "Metric the table is ranked by and printed under node labels in -svg/-dot output")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&o.jsonPath, "json", "", "Also write the report as JSON to this file")
	fs.StringVar(&o.xlsxPath, "xlsx", "", "Write the centrality table to this XLSX workbook")
	fs.StringVar(&o.svgPath, "svg", "", "Render the network to this SVG file")
	fs.StringVar(&o.dotPath, "dot", "", "Write the network as Graphviz DOT to this file")
	fs.BoolVar(&o.pretty, "pretty", true, "Indent JSON output")
	fs.BoolVar(&o.compress, "compress", false, "Snappy-compress the -json file")
	fs.DurationVar(&o.timeout, "timeout", 0, "Abort the analysis after this long (0 = no limit)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if o.protein == "" && o.input == "" {
		return nil, errors.New("one of -protein or -input is required")
	}
	if o.format != "table" && o.format != "json" {
		return nil, fmt.Errorf("invalid -format %q (table or json)", o.format)
	}
	if _, err := algorithms.ParseMetric(o.metric); err != nil {
		return nil, fmt.Errorf("invalid -metric: %w", err)
	}
	return o, nil
}

// loadConfig reads the config file and lets flags override it
func loadConfig(o *options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg = config.Default()
		if err = cfg.ApplyEnv(os.Getenv); err == nil {
			err = cfg.Validate()
		}
	}
	if err != nil {
		return nil, err
	}

	if o.fixtures != "" {
		cfg.Data.FixturesPath = o.fixtures
	}
	if o.dataDir != "" {
		cfg.Data.DataDir = o.dataDir
	}
	if o.layout != "" {
		cfg.Layout.Algorithm = o.layout
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.source == "" {
		o.source = cfg.Data.DefaultSource
	}
	return cfg, cfg.Validate()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "ppinet: %v\n", err)
		return exitUsage
	}

	cfg, err := loadConfig(o)
	if err != nil {
		fmt.Fprintf(stderr, "ppinet: invalid configuration: %v\n", err)
		return exitUsage
	}

	logger := logging.NewJSONLogger(stderr, cfg.LogLevel())

	fetcher, err := cfg.Fetcher()
	if err != nil {
		fmt.Fprintf(stderr, "ppinet: %v\n", err)
		return exitError
	}

	layoutKind, layoutConfig := cfg.LayoutOptions()
	analyzer := pipeline.NewAnalyzer(fetcher,
		pipeline.WithLogger(logger),
		pipeline.WithOptions(cfg.AlgorithmOptions()),
		pipeline.WithLayout(layoutKind, layoutConfig))

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	rep, err := analyze(ctx, analyzer, o)
	if err != nil {
		if errors.Is(err, network.ErrEmptyNetwork) {
			fmt.Fprintf(stderr, "No data found for %s in %s.\n", o.label(), o.source)
			return exitError
		}
		fmt.Fprintf(stderr, "ppinet: %v\n", err)
		return exitError
	}

	if err := writeOutputs(ctx, rep, o, stdout); err != nil {
		fmt.Fprintf(stderr, "ppinet: %v\n", err)
		return exitError
	}
	return exitOK
}

func analyze(ctx context.Context, analyzer *pipeline.Analyzer, o *options) (*pipeline.Report, error) {
	if o.input == "" {
		return analyzer.Analyze(ctx, pipeline.Request{
			ProteinID: o.protein,
			Source:    o.source,
			Metric:    o.metric,
		})
	}

	source, err := interactions.ParseSource(o.source)
	if err != nil {
		return nil, err
	}
	edges, err := interactions.ReadEdgeListFile(o.input)
	if err != nil {
		return nil, err
	}
	return analyzer.AnalyzeEdges(ctx, o.label(), source, o.metric, edges)
}

// label names the analyzed network: the protein, or the base name of the
// edge-list file when none was given.
func (o *options) label() string {
	if o.protein != "" || o.input == "" {
		return o.protein
	}
	return strings.TrimSuffix(filepath.Base(o.input), filepath.Ext(o.input))
}

func writeOutputs(ctx context.Context, rep *pipeline.Report, o *options, stdout io.Writer) error {
	switch o.format {
	case "json":
		if err := report.WriteJSON(stdout, rep, report.JSONOptions{Pretty: o.pretty}); err != nil {
			return err
		}
		fmt.Fprintln(stdout)
	default:
		if err := report.WriteTable(stdout, rep, report.TableOptions{}); err != nil {
			return err
		}
	}

	if o.jsonPath != "" {
		data, err := report.MarshalJSON(rep, report.JSONOptions{Pretty: o.pretty, Compress: o.compress})
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.jsonPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", o.jsonPath, err)
		}
	}

	if o.xlsxPath != "" {
		if err := report.SaveXLSX(o.xlsxPath, rep); err != nil {
			return err
		}
	}

	for path, format := range map[string]visualization.RenderFormat{
		o.svgPath: visualization.FormatSVG,
		o.dotPath: visualization.FormatDOT,
	} {
		if path == "" {
			continue
		}
		if err := renderTo(ctx, rep, path, format); err != nil {
			return err
		}
	}
	return nil
}

func renderTo(ctx context.Context, rep *pipeline.Report, path string, format visualization.RenderFormat) (err error) {
	if rep.Visualization == nil {
		return errors.New("no layout computed for this report")
	}

	label := ""
	if rep.Result != nil && rep.Result.Succeeded(rep.PrimaryMetric) {
		label = string(rep.PrimaryMetric)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return rep.Visualization.Render(ctx, f, visualization.RenderOptions{
		Format:      format,
		LabelMetric: label,
		Highlight:   []string{rep.ProteinID},
		Title:       fmt.Sprintf("%s (%s)", rep.ProteinID, rep.Source),
	})
}
