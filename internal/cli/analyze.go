package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/throwbench/internal/adapters/ingest"
	"github.com/okian/throwbench/internal/adapters/render"
	analyzer "github.com/okian/throwbench/internal/app"
	"github.com/okian/throwbench/internal/batch"
	"github.com/okian/throwbench/internal/config"
)

// analyzeOptions carries the analyze flags after merging with the loaded
// config.
type analyzeOptions struct {
	output  string
	format  string
	chart   string
	seed    uint32
	samples int
	bins    int
	workers int
}

func analyzeCmd(st *state) *cobra.Command {
	var opts analyzeOptions

	defaults := config.New()

	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Score recorded throw sessions against the reference population",
		Long: `Read one or more session files (CSV or JSON), aggregate the throws, and
report per-metric percentiles, skill bands, and diagnosed release problems.

Several files are analyzed concurrently and rendered in input order. A file
that fails to load or analyze is reported on stderr without aborting the rest.

Examples:
  throwbench analyze session.csv                 # Text report on stdout
  throwbench analyze -f json session.csv         # Machine-readable report
  throwbench analyze --chart report.html session.csv
  throwbench analyze -f html -o report.html *.csv
  throwbench analyze --seed 7 --samples 1200 session.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags were registered with compiled-in defaults; anything the
			// user did not set on the command line falls back to the loaded
			// config, which may differ from those defaults.
			if !cmd.Flags().Changed("format") {
				opts.format = st.cfg.Format
			}
			if !cmd.Flags().Changed("seed") {
				opts.seed = st.cfg.PopulationSeed
			}
			if !cmd.Flags().Changed("samples") {
				opts.samples = st.cfg.PopulationSamples
			}
			if !cmd.Flags().Changed("bins") {
				opts.bins = st.cfg.HistogramBins
			}
			if !cmd.Flags().Changed("workers") {
				opts.workers = st.cfg.Workers
			}

			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", defaults.Format, "output format: text, json, html")
	cmd.Flags().StringVar(&opts.chart, "chart", "", "also write an HTML chart page to this file")
	cmd.Flags().Uint32Var(&opts.seed, "seed", defaults.PopulationSeed, "reference population seed")
	cmd.Flags().IntVar(&opts.samples, "samples", defaults.PopulationSamples, "reference population size")
	cmd.Flags().IntVar(&opts.bins, "bins", defaults.HistogramBins, "histogram bucket count")
	cmd.Flags().IntVar(&opts.workers, "workers", defaults.Workers, "concurrent sessions in multi-file runs")

	return cmd
}

func runAnalyze(cmd *cobra.Command, paths []string, opts analyzeOptions) error {
	renderer, err := render.ByFormat(opts.format)
	if err != nil {
		return err
	}

	writer, closeOutput, err := openOutput(cmd, opts.output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOutput() }()

	reader := ingest.NewReader()
	engine := analyzer.New(
		analyzer.WithSeed(opts.seed),
		analyzer.WithSamples(opts.samples),
		analyzer.WithBins(opts.bins),
	)

	ctx := cmd.Context()

	// Single file: no fan-out, failures surface directly.
	if len(paths) == 1 {
		session, err := reader.ReadFile(ctx, paths[0])
		if err != nil {
			return err
		}

		report, err := engine.Analyze(ctx, session)
		if err != nil {
			return err
		}

		if err := renderer(writer, report); err != nil {
			return err
		}

		return writeChart(opts.chart, []*analyzer.Report{report})
	}

	runner := batch.NewRunner(reader, engine, batch.WithWorkers(opts.workers))
	results := runner.Run(ctx, paths)

	err = renderResults(cmd.ErrOrStderr(), writer, renderer, results)
	if err != nil && !errors.Is(err, ErrSessionsFailed) {
		return err
	}

	// Sessions that failed to load are already reported; the survivors
	// still get charted.
	healthy := make([]*analyzer.Report, 0, len(results))
	for _, res := range results {
		if res.Err == nil {
			healthy = append(healthy, res.Report)
		}
	}
	if cerr := writeChart(opts.chart, healthy); cerr != nil {
		return cerr
	}

	return err
}

// renderResults writes every healthy report in input order and reports
// failed sessions on errw. It returns ErrSessionsFailed when any failed.
func renderResults(errw, w io.Writer, renderer render.Renderer, results []batch.Result) error {
	var failed int

	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(errw, "Warning: skipping %s: %v\n", res.Path, res.Err)

			continue
		}

		if err := renderer(w, res.Report); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrSessionsFailed, failed, len(results))
	}

	return nil
}

// writeChart renders the reports' population charts into an HTML file.
// An empty path means the flag was not given.
func writeChart(path string, reports []*analyzer.Report) error {
	if path == "" || len(reports) == 0 {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutput, err)
	}
	defer func() { _ = f.Close() }()

	return render.HTMLAll(f, reports)
}
