// Package xlog provides structured logging handler construction for use
// with [log/slog], and the diagnostics fan-out jsonkit uses to surface
// non-fatal RegexError/TruncationWarning conditions out of the transform
// engine without the engine itself depending on a logger.
//
// It supports multiple output formats ([FormatJSON], [FormatLogfmt]) and
// the usual slog severity levels. Use [CreateHandler] or
// [CreateHandlerWithStrings] to build a handler directly, or use [Config]
// with CLI flag integration via [github.com/spf13/pflag] and shell
// completion support via [github.com/spf13/cobra].
//
// Typical usage creates a [Config], registers flags, then builds a handler
// at startup:
//
//	cfg := xlog.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// A [Publisher] fans out diagnostics to multiple subscribers. jsonkit's
// Builder publishes one entry per RegexError or TruncationWarning so a
// CLI or embedding application can observe them without the engine
// blocking on a slow subscriber:
//
//	pub := xlog.NewPublisher()
//	sub := pub.Subscribe()
//	go func() {
//	    for entry := range sub.C() {
//	        fmt.Fprintln(os.Stderr, string(entry))
//	    }
//	}()
package xlog
