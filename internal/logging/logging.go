package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the name of the rotating log file inside the log directory.
const FileName = "prelev-mcp.log"

// Options controls the sinks built by Setup.
type Options struct {
	Verbose bool
	// Dir holds the rotating log file. Empty means LOGS_FOLDER, then <binary dir>/logs.
	Dir     string
	Console io.Writer
	NoColor bool
}

// Init initializes the global logger with dual sinks: os.Stderr and a rotating file.
// The process exits when the log directory cannot be used.
func Init(verbose bool) {
	// 0. Load .env from binary directory so LOGS_FOLDER is available before config.Load
	if exePath, err := os.Executable(); err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	logger, err := Setup(Options{
		Verbose: verbose,
		Console: os.Stderr,
		NoColor: !isTerminal,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Logger = logger
}

// Setup builds a logger writing to opts.Console and to a rotating file in the
// resolved log directory. It also sets the global level.
func Setup(opts Options) (zerolog.Logger, error) {
	// 1. Determine log level
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	// 2. Console sink
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
		NoColor:    opts.NoColor,
	}

	// 3. Rotating file sink
	logDir := ResolveDir(opts.Dir)
	if err := ensureWritable(logDir); err != nil {
		return zerolog.Nop(), err
	}
	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, FileName),
		MaxSize:    16, // megabytes
		MaxBackups: 32,
		MaxAge:     365, // days
		Compress:   true,
	}

	// 4. Combine
	multi := zerolog.MultiLevelWriter(io.Writer(consoleWriter), fileWriter)
	return zerolog.New(multi).
		With().
		Timestamp().
		Str("service", "prelev-mcp").
		Logger(), nil
}

// ResolveDir picks the log directory: dir, then LOGS_FOLDER, then <binary dir>/logs.
func ResolveDir(dir string) string {
	if dir != "" {
		return dir
	}
	if env := os.Getenv("LOGS_FOLDER"); env != "" {
		return env
	}
	if exePath, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exePath), "logs")
	}
	return "logs"
}

func ensureWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", dir, err)
	}
	probe := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(probe, []byte("test"), 0644); err != nil {
		return fmt.Errorf("log directory %q is not writable: %w", dir, err)
	}
	_ = os.Remove(probe)
	return nil
}
