//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	flagCfg    = DefaultConfig()

	cfg    = DefaultConfig()
	logger = zap.NewNop()

	benchJSON    bool
	benchWorkers int
	benchOut     string

	genTargets int
	genMax     int64
	genSeed    uint64
	genCount   int
	genDir     string

	rootCmd = &cobra.Command{
		Use:   "soda-blender < input.txt > output.txt",
		Short: "Blend every target drink from (0,0) at low total cost",
		Long: `soda-blender reads N target drinks from stdin and writes the blend
operations that produce all of them to stdout. A bounded lookahead search runs
until the time limit, then a greedy fallback finishes the remaining targets.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.Context(), os.Stdin, os.Stdout)
		},
	}

	judgeCmd = &cobra.Command{
		Use:   "judge <input> <output>",
		Short: "Validate an operation log against its instance and print the score",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runJudge(args[0], args[1], os.Stderr)
		},
	}

	genCmd = &cobra.Command{
		Use:   "gen",
		Short: "Generate random instances",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runGen(os.Stdout)
		},
	}

	benchCmd = &cobra.Command{
		Use:   "bench <input>...",
		Short: "Solve and judge many instances and aggregate their scores",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := runBench(cmd.Context(), args, cfg, benchWorkers, benchOut, logger)
			if err != nil {
				return err
			}
			if benchJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printTable(os.Stdout, out)
			return nil
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML file with search parameters")
	pf.IntVar(&flagCfg.BeamWidth, "beam-width", flagCfg.BeamWidth, "states expanded per depth per round")
	pf.IntVar(&flagCfg.BeamDepth, "beam-depth", flagCfg.BeamDepth, "plies explored per lookahead step")
	pf.IntVar(&flagCfg.BeamRounds, "beam-rounds", flagCfg.BeamRounds, "passes over all depths per lookahead step")
	pf.DurationVar(&flagCfg.TimeLimit, "time-limit", flagCfg.TimeLimit, "lookahead time budget (0 = unlimited)")
	pf.StringVar(&flagCfg.Logging.Level, "log-level", flagCfg.Logging.Level, "debug, info, warn or error")
	pf.BoolVar(&flagCfg.Logging.Development, "log-dev", flagCfg.Logging.Development, "human readable console logs")

	benchCmd.Flags().BoolVar(&benchJSON, "json", false, "output results as JSON")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", runtime.NumCPU(), "instances solved in parallel")
	benchCmd.Flags().StringVar(&benchOut, "out", "", "directory to write solutions to")

	genCmd.Flags().IntVar(&genTargets, "n", DefaultTargets, "targets per instance")
	genCmd.Flags().Int64Var(&genMax, "max", DefaultMaxCoord, "largest coordinate")
	genCmd.Flags().Uint64Var(&genSeed, "seed", 0, "seed of the first instance")
	genCmd.Flags().IntVar(&genCount, "count", 1, "instances to generate (with --dir)")
	genCmd.Flags().StringVar(&genDir, "dir", "", "write NNNN.txt files here instead of stdout")

	rootCmd.AddCommand(judgeCmd, genCmd, benchCmd)
}

// setup resolves the configuration (defaults < file < env < flags) and builds
// the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	cfg = overlayFlags(cmd, loaded)
	if err := cfg.Validate(); err != nil {
		return err
	}
	l, err := NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger = l
	return nil
}

// overlayFlags copies the flags the user set explicitly onto c.
func overlayFlags(cmd *cobra.Command, c Config) Config {
	f := cmd.Flags()
	if f.Changed("beam-width") {
		c.BeamWidth = flagCfg.BeamWidth
	}
	if f.Changed("beam-depth") {
		c.BeamDepth = flagCfg.BeamDepth
	}
	if f.Changed("beam-rounds") {
		c.BeamRounds = flagCfg.BeamRounds
	}
	if f.Changed("time-limit") {
		c.TimeLimit = flagCfg.TimeLimit
	}
	if f.Changed("log-level") {
		c.Logging.Level = flagCfg.Logging.Level
	}
	if f.Changed("log-dev") {
		c.Logging.Development = flagCfg.Logging.Development
	}
	return c
}

func runSolve(ctx context.Context, in io.Reader, out io.Writer) error {
	inst, err := ParseInstance(in)
	if err != nil {
		return err
	}
	res := NewSolver(inst.Targets, cfg, logger).Solve(ctx)
	return WriteOperations(out, res.Operations)
}

func runJudge(inputPath, outputPath string, w io.Writer) error {
	inst, err := readInstance(inputPath)
	if err != nil {
		return err
	}
	f, err := os.Open(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()
	ops, err := ParseOperations(f)
	if err != nil {
		return err
	}

	v, err := Judge(inst, ops)
	if err != nil {
		fmt.Fprintf(w, "%v\nScore = 0\n", err)
		return err
	}
	fmt.Fprintf(w, "Operations = %d\nCost = %d\nScore = %d\n", v.Operations, v.Cost, v.Score)
	return nil
}

func runGen(stdout io.Writer) error {
	if genTargets < 0 || genTargets > MaxTargets {
		return fmt.Errorf("--n must be in [0, %d]", MaxTargets)
	}
	if genMax < 0 || genMax > MaxCoordinate {
		return fmt.Errorf("--max must be in [0, %d]", MaxCoordinate)
	}
	if genDir == "" {
		return WriteInstance(stdout, GenerateInstance(genSeed, genTargets, genMax))
	}
	if err := os.MkdirAll(genDir, 0o755); err != nil {
		return err
	}
	for i := 0; i < genCount; i++ {
		path := filepath.Join(genDir, fmt.Sprintf("%04d.txt", i))
		if err := writeInstanceFile(path, GenerateInstance(genSeed+uint64(i), genTargets, genMax)); err != nil {
			return err
		}
		logger.Debug("instance written", zap.String("path", path))
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
