package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/okian/throwbench/internal/adapters/render"
	"github.com/okian/throwbench/internal/config"
	"github.com/okian/throwbench/internal/domain/histogram"
	"github.com/okian/throwbench/internal/domain/model"
	"github.com/okian/throwbench/internal/domain/population"
)

// maxBarWidth caps the histogram bars so wide terminals stay readable.
const maxBarWidth = 40

func populationCmd(st *state) *cobra.Command {
	var (
		seed    uint32
		samples int
		bins    int
		metric  string
		format  string
		verify  bool
	)

	defaults := config.New()

	cmd := &cobra.Command{
		Use:   "population",
		Short: "Inspect the synthetic reference population",
		Long: `Build the reference population for a seed and show what sessions are ranked
against: per-metric spread in a summary table, or the full distribution of a
single metric as a histogram.

The population is deterministic, so two machines configured with the same
seed and size rank sessions identically. --verify proves that by generating
the population twice and comparing every value.

Examples:
  throwbench population                      # Summary of all metrics
  throwbench population -m power             # Arm power distribution
  throwbench population -f json              # Machine-readable stats
  throwbench population --verify             # Confirm deterministic generation
  throwbench population --seed 7 --samples 1200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = st.cfg.PopulationSeed
			}
			if !cmd.Flags().Changed("samples") {
				samples = st.cfg.PopulationSamples
			}
			if !cmd.Flags().Changed("bins") {
				bins = st.cfg.HistogramBins
			}

			// Non-positive knobs fall back to the compiled defaults, the
			// same way the analyzer's option guards treat them.
			if samples <= 0 {
				samples = defaults.PopulationSamples
			}
			if bins <= 0 {
				bins = defaults.HistogramBins
			}

			if verify {
				return runPopulationVerify(cmd, seed, samples)
			}

			return runPopulation(cmd, seed, samples, bins, metric, format)
		},
	}

	cmd.Flags().Uint32Var(&seed, "seed", defaults.PopulationSeed, "population seed")
	cmd.Flags().IntVar(&samples, "samples", defaults.PopulationSamples, "population size")
	cmd.Flags().IntVar(&bins, "bins", defaults.HistogramBins, "histogram bucket count")
	cmd.Flags().StringVarP(&metric, "metric", "m", "", "show one metric's distribution: power, spin, nose, wobble")
	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "output format: text, json")
	cmd.Flags().BoolVar(&verify, "verify", false, "generate the population twice and confirm the runs match")

	return cmd
}

func runPopulation(cmd *cobra.Command, seed uint32, samples, bins int, metric, format string) error {
	asJSON, err := jsonSelected(format)
	if err != nil {
		return err
	}

	pop := population.Generate(samples, seed)
	out := cmd.OutOrStdout()

	if metric == "" {
		if asJSON {
			return writeSummaryJSON(out, pop)
		}
		return writePopulationSummary(out, pop)
	}

	m, err := model.ParseMetric(metric)
	if err != nil {
		return err
	}

	if asJSON {
		return writeHistogramJSON(out, pop, m, bins)
	}
	return writePopulationHistogram(out, pop, m, bins)
}

// jsonSelected reports whether format asks for JSON. Population output is
// text or JSON only; the HTML charts belong to analyze.
func jsonSelected(format string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case render.FormatJSON:
		return true, nil
	case render.FormatText:
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", render.ErrUnknownFormat, format)
}

// runPopulationVerify generates the population twice with the same knobs
// and proves the runs identical, value for value. A mismatch means session
// ranking is no longer reproducible.
func runPopulationVerify(cmd *cobra.Command, seed uint32, samples int) error {
	first := population.Generate(samples, seed)
	second := population.Generate(samples, seed)

	for _, m := range model.AllMetrics() {
		a, b := first.Values(m), second.Values(m)
		for i := range a {
			if a[i] != b[i] {
				return fmt.Errorf("%w: %s diverges at sample %d (%v vs %v)",
					ErrVerifyFailed, m.Label(), i, a[i], b[i])
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"Population verified: %d samples with seed %d generate identically.\n",
		samples, seed)
	return nil
}

func writePopulationSummary(w io.Writer, pop *population.Population) error {
	var b strings.Builder

	title := color.New(color.Bold)
	b.WriteString(title.Sprintf("Reference population: %d synthetic throwers, seed %d", pop.Size(), pop.Seed()))
	b.WriteString("\n\n")

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.SeparateRows = false
	tw.AppendHeader(table.Row{"Metric", "Unit", "Mean", "SD", "Min", "Median", "Max"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	for _, m := range model.AllMetrics() {
		sorted := pop.Sorted(m)
		mean, sd := meanAndSD(pop.Values(m))
		tw.AppendRow(table.Row{
			m.Label(),
			m.Unit(),
			fmt.Sprintf("%.1f", mean),
			fmt.Sprintf("%.1f", sd),
			fmt.Sprintf("%.1f", sorted[0]),
			fmt.Sprintf("%.1f", median(sorted)),
			fmt.Sprintf("%.1f", sorted[len(sorted)-1]),
		})
	}

	b.WriteString(tw.Render())
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

func writePopulationHistogram(w io.Writer, pop *population.Population, m model.Metric, bins int) error {
	values := pop.Values(m)
	bounds := histogram.DisplayRange(m, values)
	counts := histogram.Counts(values, bins, bounds.Min, bounds.Max)

	var b strings.Builder

	title := color.New(color.Bold)
	b.WriteString(title.Sprintf("%s distribution (%s): %d synthetic throwers, seed %d",
		m.Label(), m.Unit(), pop.Size(), pop.Seed()))
	b.WriteString("\n\n")

	top := 0
	for _, c := range counts {
		if c > top {
			top = c
		}
	}

	width := (bounds.Max - bounds.Min) / float64(len(counts))
	for i, c := range counts {
		lo := bounds.Min + float64(i)*width
		bar := strings.Repeat("█", barWidth(c, top))
		fmt.Fprintf(&b, "  %8.1f – %8.1f  %5d  %s\n", lo, lo+width, c, bar)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// populationStats is the JSON shape of the summary table.
type populationStats struct {
	Seed    uint32        `json:"seed"`
	Samples int           `json:"samples"`
	Metrics []metricStats `json:"metrics"`
}

type metricStats struct {
	Metric string  `json:"metric"`
	Label  string  `json:"label"`
	Unit   string  `json:"unit"`
	Mean   float64 `json:"mean"`
	SD     float64 `json:"sd"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// metricDistribution is the JSON shape of one metric's histogram.
type metricDistribution struct {
	Seed    uint32  `json:"seed"`
	Samples int     `json:"samples"`
	Metric  string  `json:"metric"`
	Label   string  `json:"label"`
	Unit    string  `json:"unit"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Counts  []int   `json:"counts"`
}

func writeSummaryJSON(w io.Writer, pop *population.Population) error {
	all := model.AllMetrics()
	doc := populationStats{
		Seed:    pop.Seed(),
		Samples: pop.Size(),
		Metrics: make([]metricStats, 0, len(all)),
	}

	for _, m := range all {
		sorted := pop.Sorted(m)
		mean, sd := meanAndSD(pop.Values(m))
		doc.Metrics = append(doc.Metrics, metricStats{
			Metric: string(m),
			Label:  m.Label(),
			Unit:   m.Unit(),
			Mean:   mean,
			SD:     sd,
			Min:    sorted[0],
			Median: median(sorted),
			Max:    sorted[len(sorted)-1],
		})
	}

	return encodeJSON(w, doc)
}

func writeHistogramJSON(w io.Writer, pop *population.Population, m model.Metric, bins int) error {
	values := pop.Values(m)
	bounds := histogram.DisplayRange(m, values)

	doc := metricDistribution{
		Seed:    pop.Seed(),
		Samples: pop.Size(),
		Metric:  string(m),
		Label:   m.Label(),
		Unit:    m.Unit(),
		Min:     bounds.Min,
		Max:     bounds.Max,
		Counts:  histogram.Counts(values, bins, bounds.Min, bounds.Max),
	}

	return encodeJSON(w, doc)
}

func encodeJSON(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// barWidth scales a bucket count to a bar length, keeping non-empty
// buckets visible with at least one cell.
func barWidth(count, top int) int {
	if count <= 0 || top <= 0 {
		return 0
	}

	w := count * maxBarWidth / top
	if w == 0 {
		w = 1
	}
	return w
}

func meanAndSD(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	return mean, math.Sqrt(sq / float64(len(values)))
}

// median of an ascending-sorted slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
