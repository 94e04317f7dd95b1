// Package profile adds runtime profiling capabilities to CLI applications.
//
// It supports CPU, heap, allocs, goroutine, threadcreate, block, and mutex
// profiles through command-line flags. Use [Config.RegisterFlags] to add CLI
// flags and [Config.RegisterCompletions] to wire up shell completions.
//
// Typical usage creates a [Config], registers flags, then wraps command
// execution with a [Profiler]:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	err := cfg.NewProfiler().Run(rootCmd.Execute)
//
// Users can then enable profiling via flags like --cpu-profile=cpu.prof,
// which is mostly useful when parsing large batches of files. Rates left
// at zero keep the runtime defaults.
package profile
