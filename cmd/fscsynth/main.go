// Command fscsynth builds, restricts, splits, enumerates and renders
// finite-state controller design spaces described by sketch files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rfielding/fsc-synth/config"
	"github.com/rfielding/fsc-synth/family"
	"github.com/rfielding/fsc-synth/memory"
	"github.com/rfielding/fsc-synth/metrics"
	"github.com/rfielding/fsc-synth/sketch"
)

// app carries what every command needs once flags and config are resolved.
type app struct {
	configPath string
	policy     string
	maxMemory  int
	verbose    bool
	stats      bool

	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Collector
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "fscsynth",
		Short: "Explore finite-state controller design spaces",
		Long: `fscsynth works on families of candidate controllers. A sketch file
declares holes, each with a finite list of labelled options; a family assumes
a subset of options per hole and every choice of one option per hole is a
candidate controller.

Controller holes are named A([obs],m) for the action played on observation obs
in memory m, and M([obs],m) for the memory value taken next.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = a.logger.Sync() }()
			if !a.stats && !a.cfg.Metrics.Enabled {
				return nil
			}
			table, err := a.metrics.GenerateMetricsTable()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), table)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "fscsynth.yaml", "configuration file (missing file means defaults)")
	flags.StringVar(&a.policy, "policy", "", "memory policy, overrides the configuration")
	flags.IntVar(&a.maxMemory, "max-memory", memory.InferMaxMemory, "largest memory value, -1 to infer from the sketch")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&a.stats, "stats", false, "print the metrics table when done")

	root.AddCommand(
		newGenCmd(a),
		newInspectCmd(a),
		newRestrictCmd(a),
		newSplitCmd(a),
		newEnumerateCmd(a),
		newRenderCmd(a),
		newPoliciesCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("policy") {
		cfg.Memory.Policy = a.policy
	}
	if cmd.Flags().Changed("max-memory") {
		cfg.Memory.MaxMemory = a.maxMemory
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := buildLogger(cfg.Logging, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger.With(zap.String("run_id", uuid.NewString()), zap.String("command", cmd.Name()))
	a.metrics = metrics.NewCollector()
	family.Seed(cfg.Random.Seed)

	a.logger.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.String("policy", cfg.Memory.Policy),
		zap.Int("max_memory", cfg.Memory.MaxMemory),
		zap.Uint64("seed", cfg.Random.Seed))
	return nil
}

func buildLogger(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// loadFamily reads a sketch and builds its root family.
func (a *app) loadFamily(path string) (*sketch.Sketch, *family.Family, error) {
	s, err := sketch.Load(path, sketch.WithLogger(a.logger))
	if err != nil {
		return nil, nil, err
	}
	f, err := s.Build(sketch.WithLogger(a.logger))
	if err != nil {
		return nil, nil, err
	}
	a.metrics.FamiliesCreated("root", 1)
	return s, f, nil
}

// restrict applies the configured memory policy to f.
func (a *app) restrict(f *family.Family) (*family.Family, error) {
	e, err := memory.NewEngine(a.cfg.MemoryPolicy(), a.cfg.Memory.MaxMemory,
		memory.WithLogger(a.logger), memory.WithMetrics(a.metrics))
	if err != nil {
		return nil, err
	}
	r, err := e.Restrict(f)
	if err != nil {
		return nil, err
	}
	a.metrics.FamiliesCreated("restrict", 1)
	return r, nil
}

// loadRestricted is loadFamily followed by restrict.
func (a *app) loadRestricted(path string) (*sketch.Sketch, *family.Family, error) {
	s, f, err := a.loadFamily(path)
	if err != nil {
		return nil, nil, err
	}
	r, err := a.restrict(f)
	if err != nil {
		return nil, nil, err
	}
	return s, r, nil
}
