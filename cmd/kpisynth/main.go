package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dshills/kpisynth/internal/compare"
	"github.com/dshills/kpisynth/internal/config"
	"github.com/dshills/kpisynth/internal/logging"
	"github.com/dshills/kpisynth/internal/render"
	"github.com/dshills/kpisynth/internal/schema/validate"
	"github.com/dshills/kpisynth/internal/synth"
	"github.com/dshills/kpisynth/internal/tables"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// generateFlags holds the parsed flags for the generate command.
// Empty strings mean "not given" so the config file and environment apply.
type generateFlags struct {
	seed       int64
	seedSet    bool
	format     string
	out        string
	tablesDir  string
	configPath string
	logLevel   string
	verbose    bool
}

// validateFlags holds the parsed flags for the validate command.
type validateFlags struct {
	tablesDir string
	noTables  bool
}

// diffFlags holds the parsed flags for the diff command.
type diffFlags struct {
	seed         int64
	against      int64
	format       string
	out          string
	tablesDir    string
	patchOut     string
	failOnChange bool
}

func main() {
	root := &cobra.Command{
		Use:     "kpisynth",
		Short:   "Generate synthetic regulatory KPI datasets",
		Long:    "kpisynth produces seed-reproducible KPI, step-duration, volume, bottleneck and flow series for the MA, CT and GMP regulatory processes.",
		Version: version,
	}
	root.AddCommand(generateCmd(), validateCmd(), diffCmd())

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.seedSet = cmd.Flags().Changed("seed")
			return runGenerate(flags)
		},
	}
	f := cmd.Flags()
	f.Int64Var(&flags.seed, "seed", 0, "Seed for reproducible output (random when unset)")
	f.StringVar(&flags.format, "format", "", "Output format: json or md (default json)")
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	f.StringVar(&flags.tablesDir, "tables", "", "Directory with ma.yaml, ct.yaml and gmp.yaml parameter tables (default: built-in)")
	f.StringVar(&flags.configPath, "config", "", "Config file (default: ./kpisynth.yaml when present)")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error (default warn)")
	f.BoolVar(&flags.verbose, "verbose", false, "Log processing steps to stderr (same as --log-level info)")
	return cmd
}

func validateCmd() *cobra.Command {
	var flags validateFlags
	cmd := &cobra.Command{
		Use:   "validate <dataset.json>",
		Short: "Check a serialized dataset for required keys and invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.tablesDir, "tables", "", "Parameter tables the dataset was generated from (default: built-in)")
	f.BoolVar(&flags.noTables, "no-tables", false, "Skip checks that need the parameter tables (bottleneck clamps, flattening coverage)")
	return cmd
}

func diffCmd() *cobra.Command {
	var flags diffFlags
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show the line diff between the datasets of two seeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(flags)
		},
	}
	f := cmd.Flags()
	f.Int64Var(&flags.seed, "seed", 0, "Seed of the first dataset")
	f.Int64Var(&flags.against, "against", 0, "Seed of the second dataset")
	f.StringVar(&flags.format, "format", "json", "Rendering to compare: json or md")
	f.StringVar(&flags.out, "out", "", "Write the diff to file instead of stdout")
	f.StringVar(&flags.tablesDir, "tables", "", "Directory with parameter tables (default: built-in)")
	f.StringVar(&flags.patchOut, "patch-out", "", "Write the diff in diff-match-patch format to this file")
	f.BoolVar(&flags.failOnChange, "fail-on-change", false, "Exit 2 when the datasets differ")
	_ = cmd.MarkFlagRequired("seed")
	_ = cmd.MarkFlagRequired("against")
	return cmd
}

func runGenerate(flags generateFlags) error {
	// --- Step 1: Resolve configuration (flags > env > file > defaults) ---
	cfg, err := resolveConfig(flags)
	if err != nil {
		return codeError(3, "invalid configuration: %s", err)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return codeError(3, "creating logger: %s", err)
	}
	defer log.Sync() //nolint:errcheck

	// --- Step 2: Load parameter tables ---
	set, err := loadTables(cfg.Tables)
	if err != nil {
		return codeError(3, "loading tables: %s", err)
	}
	log.Info("tables loaded", zap.String("fingerprint", set.Fingerprint), zap.String("dir", cfg.Tables))

	// --- Step 3: Generate ---
	opts := synth.Options{}
	if cfg.HasSeed {
		opts.Seed = synth.Seed(cfg.Seed)
	} else {
		log.Warn("no seed given; output is not reproducible")
	}
	ds, err := synth.New(set, log).Generate(opts)
	if err != nil {
		return codeError(4, "generating dataset: %s", err)
	}

	// --- Step 4: Render fully in memory, then write ---
	renderer, err := render.NewRenderer(cfg.Format)
	if err != nil {
		return codeError(3, "invalid format: %s", err)
	}
	outputBytes, err := renderer.Render(ds)
	if err != nil {
		return codeError(3, "rendering output: %s", err)
	}
	if err := writeOutput(cfg.Out, outputBytes); err != nil {
		return codeError(3, "%s", err)
	}
	log.Info("dataset written", zap.String("format", cfg.Format), zap.Int("bytes", len(outputBytes)))
	return nil
}

func runValidate(path string, flags validateFlags) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return codeError(3, "reading dataset: %s", err)
	}
	ds, err := validate.Parse(raw)
	if err != nil {
		return codeError(3, "invalid dataset: %s", err)
	}

	var set *tables.Set
	if !flags.noTables {
		set, err = loadTables(flags.tablesDir)
		if err != nil {
			return codeError(3, "loading tables: %s", err)
		}
	}

	violations := validate.Check(ds, set)
	for _, v := range violations {
		fmt.Fprintln(os.Stderr, "VIOLATION:", v)
	}
	if len(violations) > 0 {
		return codeError(2, "%d invariant violation(s) in %s", len(violations), path)
	}
	fmt.Fprintf(os.Stdout, "OK: %s satisfies all dataset invariants\n", path)
	return nil
}

func runDiff(flags diffFlags) error {
	set, err := loadTables(flags.tablesDir)
	if err != nil {
		return codeError(3, "loading tables: %s", err)
	}
	renderer, err := render.NewRenderer(flags.format)
	if err != nil {
		return codeError(3, "invalid format: %s", err)
	}

	gen := synth.New(set, nil)
	rendered := make([]string, 2)
	for i, seed := range []int64{flags.seed, flags.against} {
		ds, err := gen.Generate(synth.Options{Seed: synth.Seed(seed)})
		if err != nil {
			return codeError(4, "generating dataset for seed %d: %s", seed, err)
		}
		out, err := renderer.Render(ds)
		if err != nil {
			return codeError(3, "rendering seed %d: %s", seed, err)
		}
		rendered[i] = string(out)
	}

	res := compare.Lines(rendered[0], rendered[1])

	if flags.patchOut != "" {
		if err := os.WriteFile(flags.patchOut, []byte(res.Patch()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "WARN: patch write failed: %s\n", err)
		}
	}

	var buf bytes.Buffer
	if err := res.Write(&buf); err != nil {
		return codeError(3, "rendering diff: %s", err)
	}
	if err := writeOutput(flags.out, buf.Bytes()); err != nil {
		return codeError(3, "%s", err)
	}
	fmt.Fprintf(os.Stderr, "seed %d vs %d: +%d -%d lines (%d unchanged)\n",
		flags.seed, flags.against, res.Added, res.Removed, res.Unchanged)

	if flags.failOnChange && !res.Identical() {
		return codeError(2, "datasets for seeds %d and %d differ", flags.seed, flags.against)
	}
	return nil
}

// resolveConfig layers explicitly given flags over env, file and defaults.
func resolveConfig(flags generateFlags) (*config.Config, error) {
	v := viper.New()
	if flags.seedSet {
		v.Set("seed", flags.seed)
	}
	if flags.format != "" {
		v.Set("format", flags.format)
	}
	if flags.out != "" {
		v.Set("out", flags.out)
	}
	if flags.tablesDir != "" {
		v.Set("tables", flags.tablesDir)
	}
	switch {
	case flags.logLevel != "":
		v.Set("log_level", flags.logLevel)
	case flags.verbose:
		v.Set("log_level", "info")
	}
	return config.Load(v, flags.configPath)
}

func loadTables(dir string) (*tables.Set, error) {
	if dir == "" {
		return tables.Default()
	}
	return tables.LoadDir(dir)
}

// writeOutput writes data to path via a temporary file in the same directory,
// so a failed write never leaves a partial dataset behind. An empty path
// writes to stdout.
func writeOutput(path string, data []byte) error {
	if path == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		// Ensure output ends with a newline for terminal friendliness.
		if len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Fprintln(os.Stdout)
		}
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".kpisynth-*")
	if err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
