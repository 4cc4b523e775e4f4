package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/throwbench/internal/simulate"
	"github.com/okian/throwbench/pkg/logger"
)

// Generation defaults, mirrored from the simulator's own.
const (
	defaultSampleCount   = 20
	defaultSampleSeed    = 7
	defaultSampleDropout = 0.05
)

func sampleCmd() *cobra.Command {
	var (
		profile string
		throws  int
		seed    uint32
		dropout float64
		output  string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a synthetic practice session as CSV",
		Long: `Generate a deterministic synthetic session shaped like a real sensor export,
useful for demos and for exercising the analyze pipeline end to end.

The same profile and seed always produce the same session. A small dropout
rate leaves realistic holes in the sensor columns.

Examples:
  throwbench sample                              # Intermediate session on stdout
  throwbench sample -p advanced -n 50 -o good.csv
  throwbench sample -p beginner --seed 99 | throwbench analyze /dev/stdin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSample(cmd, profile, output, throws, seed, dropout)
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", string(simulate.ProfileIntermediate),
		"skill profile: "+strings.Join(simulate.Profiles(), ", "))
	cmd.Flags().IntVarP(&throws, "throws", "n", defaultSampleCount, "number of throws to generate")
	cmd.Flags().Uint32Var(&seed, "seed", defaultSampleSeed, "generator seed")
	cmd.Flags().Float64Var(&dropout, "dropout", defaultSampleDropout, "fraction of sensor readings to drop")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default: stdout)")

	return cmd
}

func runSample(cmd *cobra.Command, profile, output string, throws int, seed uint32, dropout float64) error {
	parsed, err := simulate.ParseProfile(profile)
	if err != nil {
		return err
	}

	gen, err := simulate.New(parsed,
		simulate.WithCount(throws),
		simulate.WithSeed(seed),
		simulate.WithDropout(dropout),
	)
	if err != nil {
		return err
	}

	writer, closeOutput, err := openOutput(cmd, output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOutput() }()

	if err := gen.WriteCSV(writer); err != nil {
		return err
	}

	logger.Get().Info(cmd.Context(), "simulated session written",
		logger.String("profile", string(parsed)),
		logger.Int("throws", throws),
		logger.Uint32("seed", seed))

	return nil
}
