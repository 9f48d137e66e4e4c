// Package profile wires Go's runtime profiler into jsonkit's CLI so a
// slow batch run can be captured and inspected after the fact, instead
// of guessing at where the worker pool or the GC spent its time.
//
// It supports CPU, heap, allocs, goroutine, threadcreate, block, and
// mutex profiles through command-line flags. Use [Config.RegisterFlags]
// to add CLI flags and [Config.RegisterCompletions] to wire up shell
// completions. The block profile is the one worth reaching for first
// when a `-t`/`--threads` run looks contended: goroutines waiting on the
// worker pool's task channel or on the schema batch's concurrency limit
// show up there.
//
// Typical usage creates a [Config], registers its flags, then wraps the
// command's work in a [Profiler]:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	profiler := cfg.NewProfiler()
//	if err := profiler.Start(); err != nil {
//	    return err
//	}
//	defer func() {
//	    if stopErr := profiler.Stop(); stopErr != nil {
//	        logger.Error("stop profiler", "error", stopErr)
//	    }
//	}()
//
// Users can then enable profiling via flags like --cpu-profile=cpu.prof.
package profile
