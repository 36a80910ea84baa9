package monitoring

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ConsoleObserver logs cycle events as structured log lines.
type ConsoleObserver struct {
	logger zerolog.Logger
}

// ConsoleObserverConfig configures the console observer.
type ConsoleObserverConfig struct {
	// Writer is the log destination (defaults to os.Stdout).
	Writer io.Writer
	// Level is the minimum level to emit; the zero value emits debug
	// lines and up.
	Level zerolog.Level
}

// NewConsoleObserver creates a console observer from config.
func NewConsoleObserver(cfg ConsoleObserverConfig) *ConsoleObserver {
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}
	return &ConsoleObserver{
		logger: zerolog.New(writer).Level(cfg.Level).With().
			Timestamp().
			Str("component", "convergence").
			Logger(),
	}
}

// NewDefaultConsoleObserver creates a console observer on stdout.
func NewDefaultConsoleObserver() *ConsoleObserver {
	return NewConsoleObserver(ConsoleObserverConfig{})
}

// OnCycleStarted implements CycleObserver.
func (c *ConsoleObserver) OnCycleStarted(traceID, input string) {
	c.logger.Info().
		Str("trace_id", traceID).
		Int("input_len", len(input)).
		Msg("cycle started")
}

// OnAspectCompleted implements CycleObserver.
func (c *ConsoleObserver) OnAspectCompleted(traceID, aspectID string, outputs int, duration time.Duration) {
	c.logger.Debug().
		Str("trace_id", traceID).
		Str("aspect_id", aspectID).
		Int("outputs", outputs).
		Dur("duration", duration).
		Msg("aspect completed")
}

// OnPropagationCompleted implements CycleObserver.
func (c *ConsoleObserver) OnPropagationCompleted(traceID, backend string, steps int) {
	c.logger.Debug().
		Str("trace_id", traceID).
		Str("backend", backend).
		Int("steps", steps).
		Msg("propagation completed")
}

// OnCycleCompleted implements CycleObserver.
func (c *ConsoleObserver) OnCycleCompleted(traceID string, duration time.Duration) {
	c.logger.Info().
		Str("trace_id", traceID).
		Dur("duration", duration).
		Msg("cycle completed")
}

// OnCycleFailed implements CycleObserver.
func (c *ConsoleObserver) OnCycleFailed(traceID string, err error, duration time.Duration) {
	c.logger.Error().
		Str("trace_id", traceID).
		Err(err).
		Dur("duration", duration).
		Msg("cycle failed")
}
