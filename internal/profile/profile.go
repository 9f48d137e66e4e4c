package profile

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profiler brackets a jsonkit run with pprof capture. Call
// [Profiler.Start] before the run begins and [Profiler.Stop] once it
// finishes (success or error) to write every enabled profile.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile *os.File
	Config
}

// Start applies the configured sampling rates and starts CPU profiling
// if a CPU profile path was given. Call [Profiler.Stop] when the run is
// complete to flush the snapshot profiles.
func (c *Profiler) Start() error {
	runtime.MemProfileRate = c.MemProfileRate
	runtime.SetBlockProfileRate(c.BlockProfileRate)
	runtime.SetMutexProfileFraction(c.MutexProfileFraction)

	if c.CPUProfile != "" {
		f, err := os.Create(c.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("creating CPU profile: %w", err)
		}

		c.cpuFile = f

		if err := pprof.StartCPUProfile(f); err != nil {
			must(c.cpuFile.Close())

			c.cpuFile = nil

			return fmt.Errorf("starting CPU profile: %w", err)
		}
	}

	return nil
}

// Stop ends CPU profiling, if running, and writes every enabled
// snapshot profile (heap, allocs, goroutine, threadcreate, block,
// mutex).
func (c *Profiler) Stop() error {
	if c.cpuFile != nil {
		pprof.StopCPUProfile()

		if err := c.cpuFile.Close(); err != nil {
			return fmt.Errorf("closing CPU profile: %w", err)
		}
	}

	return c.writeSnapshots()
}

// writeSnapshots writes every enabled snapshot profile to its
// configured path.
func (c *Profiler) writeSnapshots() error {
	profiles := []struct {
		name string
		path string
	}{
		{"heap", c.HeapProfile},
		{"allocs", c.AllocsProfile},
		{"goroutine", c.GoroutineProfile},
		{"threadcreate", c.ThreadcreateProfile},
		{"block", c.BlockProfile},
		{"mutex", c.MutexProfile},
	}

	for _, p := range profiles {
		if p.path == "" {
			continue
		}

		if err := c.writeProfile(p.name, p.path); err != nil {
			return fmt.Errorf("write %s profile: %w", p.name, err)
		}
	}

	return nil
}

// writeProfile writes the named pprof profile to path.
func (c *Profiler) writeProfile(name, path string) error {
	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	prof := pprof.Lookup(name)
	if prof == nil {
		must(f.Close())

		return fmt.Errorf("unknown profile: %s", name)
	}

	if err := prof.WriteTo(f, 0); err != nil {
		must(f.Close())

		return fmt.Errorf("write %s profile: %w", name, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s profile: %w", name, err)
	}

	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
