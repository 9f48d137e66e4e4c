// Command jsonkit is the CLI front end for the jsonkit transformation
// engine: flatten, schema, prune, and rewrite operations over JSON
// documents and batches, per spec.md §6.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"go.jsonkit.dev/jsonkit"
	"go.jsonkit.dev/jsonkit/internal/profile"
	"go.jsonkit.dev/jsonkit/internal/version"
	"go.jsonkit.dev/jsonkit/internal/xlog"
	"go.jsonkit.dev/jsonkit/pipeline"
)

// mode enumerates the mutually-exclusive operation modes of spec.md §6's
// flag table. Each mode flag's Set method records it here, so "Modes are
// mutually exclusive; the last one wins" falls out of pflag's natural
// left-to-right parsing order rather than a hand-rolled argv scan.
type mode int

const (
	modeFlatten mode = iota
	modeSchema
	modeRemoveEmpty
	modeRemoveNulls
	modeReplaceKeys
	modeReplaceValues
)

var errUsage = errors.New("usage error")

// rewriteFlag is a custom pflag.Value for -r/--replace-keys and
// -v/--replace-values. Both take a pattern and a replacement; pflag has
// no native two-argument flag, so each occurrence is given as
// "pattern=replacement" (the same key=value convention as
// `go build -ldflags X=Y`), split on the first '='. onSet fires on every
// successful Set, so this flag's occurrence sequences with the bare
// mode flags (-f/-s/-e/-n) in command-line order.
type rewriteFlag struct {
	set         bool
	pattern     string
	replacement string
	onSet       func()
}

func (r *rewriteFlag) String() string {
	if !r.set {
		return ""
	}

	return r.pattern + "=" + r.replacement
}

func (r *rewriteFlag) Set(s string) error {
	pattern, replacement, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("%w: expected pattern=replacement, got %q", errUsage, s)
	}

	r.set = true
	r.pattern = pattern
	r.replacement = replacement
	r.onSet()

	return nil
}

func (r *rewriteFlag) Type() string { return "pattern=replacement" }

// boolModeFlag adapts a mode-selecting callback into a pflag.Value, so a
// bare boolean flag (-f, -s, -e, -n) sequences with the pattern-carrying
// mode flags (-r, -v) in command-line order.
type boolModeFlag struct{ set func() }

func (b boolModeFlag) String() string   { return "false" }
func (b boolModeFlag) Set(string) error { b.set(); return nil }
func (b boolModeFlag) Type() string     { return "bool" }
func (b boolModeFlag) IsBoolFlag() bool { return true }

// cliConfig holds every flag value from spec.md §6's table plus the
// SPEC_FULL.md ambient-stack additions (pipeline config, profiling,
// logging).
type cliConfig struct {
	mode        mode
	modeSet     bool
	replaceKeys rewriteFlag
	replaceVals rewriteFlag
	threads     int
	pretty      bool
	output      string
	configPath  string
	logCfg      *xlog.Config
	profileCfg  *profile.Config
}

func newCLIConfig() *cliConfig {
	return &cliConfig{
		threads:    -1,
		logCfg:     xlog.NewConfig(),
		profileCfg: profile.NewConfig(),
	}
}

func (c *cliConfig) setMode(m mode) func() {
	return func() {
		c.mode = m
		c.modeSet = true
	}
}

func (c *cliConfig) registerFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	c.replaceKeys.onSet = c.setMode(modeReplaceKeys)
	c.replaceVals.onSet = c.setMode(modeReplaceValues)

	flags.VarP(boolModeFlag{c.setMode(modeFlatten)}, "flatten", "f", "select flatten mode (default)")
	flags.VarP(boolModeFlag{c.setMode(modeSchema)}, "schema", "s", "select Draft-07 schema inference")
	flags.VarP(boolModeFlag{c.setMode(modeRemoveEmpty)}, "remove-empty", "e", "select remove-empty-strings")
	flags.VarP(boolModeFlag{c.setMode(modeRemoveNulls)}, "remove-nulls", "n", "select remove-nulls")
	flags.VarP(&c.replaceKeys, "replace-keys", "r", "select key rewrite, pattern=replacement")
	flags.VarP(&c.replaceVals, "replace-values", "v", "select value rewrite, pattern=replacement")

	flags.IntVarP(&c.threads, "threads", "t", -1, "enable parallel processing; 0 = auto, unset = disabled")
	flags.Lookup("threads").NoOptDefVal = "0"
	flags.BoolVarP(&c.pretty, "pretty", "p", false, "pretty-print output")
	flags.StringVarP(&c.output, "output", "o", "", "write to file (else stdout)")
	flags.StringVar(&c.configPath, "config", "", "load an operation pipeline from a YAML file")

	c.logCfg.RegisterFlags(flags)
	c.profileCfg.RegisterFlags(flags)
}

func main() {
	cfg := newCLIConfig()
	rootCmd := newRootCommand(cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

// newRootCommand builds the root cobra.Command wired to cfg's flags.
// Split out of main so flag-parsing tests exercise the real registration
// path instead of a parallel hand-rolled one.
func newRootCommand(cfg *cliConfig) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jsonkit [flags] [file]",
		Short: "High-throughput JSON transformation engine",
		Long: `jsonkit transforms JSON documents via a fixed set of operations:
path flattening, Draft-07 schema inference, empty-string pruning, null
pruning, and regex-based key/value rewriting.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", errUsage, err)
			}

			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, args)
		},
	}

	// A malformed flag (e.g. --threads=abc) fails inside cobra's own flag
	// parsing, before RunE ever runs, and pflag's bare error would
	// otherwise fall through exitCodeFor to the generic I/O exit code.
	// Tag it as a usage error so spec.md §6's exit-code table holds for
	// flag-parse failures too, not just failures detected inside run.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	cfg.registerFlags(rootCmd)
	rootCmd.AddCommand(versionCmd())

	if err := cfg.logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register log completions: %v\n", err)
	}

	if err := cfg.profileCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register profile completions: %v\n", err)
	}

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())

			return nil
		},
	}
}

// exitCodeFor maps a returned error to spec.md §6's exit codes: 0
// success (handled by the caller never reaching here), 1 I/O or parse
// error, 2 usage error.
func exitCodeFor(err error) int {
	var kerr *jsonkit.Error
	if errors.As(err, &kerr) && kerr.Kind == jsonkit.KindUsageError {
		return 2
	}

	if errors.Is(err, errUsage) {
		return 2
	}

	return 1
}

func run(cfg *cliConfig, args []string) error {
	handler, err := cfg.logCfg.NewHandler(os.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	logger := slog.New(handler)

	profiler := cfg.profileCfg.NewProfiler()
	if err := profiler.Start(); err != nil {
		return err
	}

	defer func() {
		if err := profiler.Stop(); err != nil {
			logger.Error("stop profiler", "error", err)
		}
	}()

	text, err := readInput(args)
	if err != nil {
		return err
	}

	// A single subscriber drains diagnostics as they arrive (below), so a
	// small buffer is enough to absorb bursts of RegexError/
	// TruncationWarning entries without leaning on the generic
	// multi-subscriber default.
	pub := xlog.NewPublisher(xlog.WithBufferSize(8))
	sub := pub.Subscribe()
	done := make(chan struct{})

	go func() {
		defer close(done)

		for entry := range sub.C() {
			logger.Warn(string(entry))
		}
	}()

	out, buildErr := buildOutput(cfg, text, pub)

	pub.Close()
	<-done

	if buildErr != nil {
		return buildErr
	}

	return writeOutput(cfg.output, out)
}

func buildOutput(cfg *cliConfig, text string, pub *xlog.Publisher) (string, error) {
	if cfg.configPath != "" {
		pcfg, err := pipeline.Load(cfg.configPath)
		if err != nil {
			return "", fmt.Errorf("%w: %w", errUsage, err)
		}

		return pipeline.Build(jsonkit.New().WithDiagnostics(pub).AddJSON(text), pcfg).Build()
	}

	useWorkers := cfg.threads >= 0

	workers := cfg.threads
	if workers < 0 {
		workers = 0
	}

	switch selectedMode(cfg) {
	case modeSchema:
		return jsonkit.Schema(text, useWorkers, workers)
	case modeRemoveEmpty:
		return jsonkit.RemoveEmpty(text)
	case modeRemoveNulls:
		return jsonkit.RemoveNulls(text)
	case modeReplaceKeys:
		return jsonkit.ReplaceKeys(text, cfg.replaceKeys.pattern, cfg.replaceKeys.replacement)
	case modeReplaceValues:
		return jsonkit.ReplaceValues(text, cfg.replaceVals.pattern, cfg.replaceVals.replacement)
	default:
		return jsonkit.Flatten(text, useWorkers, workers)
	}
}

// selectedMode returns the mode set by the last mode-selecting flag seen
// on the command line (spec.md §6: "Modes are mutually exclusive; the
// last one wins"), defaulting to flatten when none was given.
func selectedMode(cfg *cliConfig) mode {
	if !cfg.modeSet {
		return modeFlatten
	}

	return cfg.mode
}

var errIO = errors.New("I/O error")

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("%w: reading stdin: %w", errIO, err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("%w: %w", errIO, err)
	}

	return string(data), nil
}

func writeOutput(path, text string) error {
	if path == "" {
		if _, err := fmt.Fprintln(os.Stdout, text); err != nil {
			return fmt.Errorf("%w: %w", errIO, err)
		}

		return nil
	}

	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("%w: %w", errIO, err)
	}

	return nil
}
