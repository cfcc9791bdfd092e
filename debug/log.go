// Package debug is a file-backed diagnostic log. The control loop
// shares the terminal with the TUI, so nothing may print to stdout;
// set LPARP_DEBUG=1 to get a trace in ~/.config/lparp/debug.log.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu       sync.Mutex
	file     *os.File
	counters map[string]int
)

// EnableFromEnv turns logging on when LPARP_DEBUG is set
func EnableFromEnv() error {
	if os.Getenv("LPARP_DEBUG") == "" {
		return nil
	}
	return Enable()
}

// Enable starts logging to ~/.config/lparp/debug.log
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".config", "lparp")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	file = f
	counters = make(map[string]int)

	write("debug", "=== lparp log started ===")
	return nil
}

// Disable closes the log file
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
		file = nil
	}
}

// Log writes one tagged line
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return
	}
	write(category, format, args...)
}

// Every logs only every nth call per category, for per-tick noise
func Every(n int, category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return
	}
	counters[category]++
	if c := counters[category]; c%n == 0 {
		write(category, format+" (count=%d)", append(args, c)...)
	}
}

// write appends a line; callers hold mu
func write(category, format string, args ...any) {
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(file, "[%s] %-8s %s\n", ts, category, fmt.Sprintf(format, args...))
	file.Sync() // flush immediately so the tail survives a crash
}
