package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profiler controls the lifecycle of runtime profiling sessions.
//
// Call [Profiler.Start] to begin profiling and [Profiler.Stop] to write all
// enabled profiles, or wrap a unit of work with [Profiler.Run].
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile *os.File
	Config
}

// Run starts profiling, calls fn, and stops profiling. Errors from fn and
// from writing profiles are joined.
func (c *Profiler) Run(fn func() error) error {
	err := c.Start()
	if err != nil {
		return err
	}

	return errors.Join(fn(), c.Stop())
}

// Start configures runtime profiling rates and starts CPU profiling if
// enabled. Rates left at zero keep the runtime defaults.
// Call [Profiler.Stop] when profiling is complete to write snapshot profiles.
func (c *Profiler) Start() error {
	if c.MemProfileRate > 0 {
		runtime.MemProfileRate = c.MemProfileRate
	}

	if c.BlockProfileRate > 0 {
		runtime.SetBlockProfileRate(c.BlockProfileRate)
	}

	if c.MutexProfileFraction > 0 {
		runtime.SetMutexProfileFraction(c.MutexProfileFraction)
	}

	if c.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(c.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("creating CPU profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("starting CPU profile: %w", err), f.Close())
	}

	c.cpuFile = f

	slog.Debug("cpu profiling started", slog.String("path", c.CPUProfile))

	return nil
}

// Stop stops CPU profiling and writes all enabled snapshot profiles. Every
// profile is attempted; failures are joined.
func (c *Profiler) Stop() error {
	var errs []error

	if c.cpuFile != nil {
		pprof.StopCPUProfile()

		err := c.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("closing CPU profile: %w", err))
		}

		c.cpuFile = nil
	}

	errs = append(errs, c.writeSnapshots()...)

	return errors.Join(errs...)
}

// writeSnapshots writes all enabled snapshot profiles (heap, allocs,
// goroutine, etc.).
func (c *Profiler) writeSnapshots() []error {
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

	var errs []error

	for _, p := range profiles {
		if p.path == "" {
			continue
		}

		err := writeProfile(p.name, p.path)
		if err != nil {
			errs = append(errs, fmt.Errorf("write %s profile: %w", p.name, err))

			continue
		}

		slog.Debug("profile written",
			slog.String("profile", p.name),
			slog.String("path", p.path),
		)
	}

	return errs
}

// writeProfile writes a named pprof profile to the given file path.
func writeProfile(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile: %s", name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	err = prof.WriteTo(f, 0)

	return errors.Join(err, f.Close())
}
