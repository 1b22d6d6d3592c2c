package anneal

import (
	"fmt"

	"github.com/google/uuid"
)

// Level is a logging verbosity level for the Logging port.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelNone:
		return "none"
	default:
		return "unknown"
	}
}

// Output selects where progress lines are written.
type Output int

const (
	OutputConsole Output = iota
	OutputFile
	OutputBoth
)

func (o Output) String() string {
	switch o {
	case OutputConsole:
		return "console"
	case OutputFile:
		return "file"
	case OutputBoth:
		return "both"
	default:
		return "unknown"
	}
}

// LoggingConfig configures the engine's logging port.
type LoggingConfig struct {
	Enabled bool
	Level   Level
	// LogInterval is the iteration cadence at which a progress line is
	// emitted at Info level. Ignored (no periodic line) when <= 0.
	LogInterval int
	Output      Output
	FilePath    string
}

// Progress is a read-only snapshot handed to an optional progress hook
// at the same cadence as the periodic log line. It exists so external
// collaborators (a metrics exporter, a websocket broadcaster) can
// observe a run without the engine knowing anything about them.
type Progress struct {
	RunID            string
	Iteration        int
	Temperature       float64
	CurrentFitness   float64
	BestFitness      float64
	SinceImprovement int
	Reheats          int
}

// Config holds the tunables for a single Annealer run. Configuration and
// the constraint/generator sets passed to Run are frozen for the
// duration of that run; nothing here is mutated by the engine.
type Config struct {
	InitialTemperature float64
	MinTemperature     float64
	CoolingRate        float64
	MaxIterations      int

	// HardConstraintWeight multiplies the count of hard-constraint
	// violations to form the fitness penalty for infeasibility.
	HardConstraintWeight float64

	// CloneState must produce a deep, independent copy of s. Required.
	CloneState func(s State) State

	// ReheatingThreshold is the number of iterations without a strict
	// best-fitness improvement before the engine reheats. Zero disables
	// reheating.
	ReheatingThreshold int
	// ReheatingFactor multiplies the current temperature on reheat.
	ReheatingFactor float64
	// MaxReheats bounds how many times a single run may reheat.
	MaxReheats int

	// Seed seeds the engine's random source for reproducibility. Nil
	// means "use system entropy"; the seed actually used (supplied or
	// derived) is recorded on the returned Solution.
	Seed *int64

	// RunID tags this run for correlation across logs, metrics and the
	// returned Solution. If empty, a fresh one is generated.
	RunID string

	Logging LoggingConfig

	// Cancel, if non-nil, is polled once per iteration (a closed channel
	// signals cancellation). The loop then terminates as if
	// MaxIterations had been reached, with Solution.Status = StatusCancelled.
	Cancel <-chan struct{}

	// ProgressHook, if non-nil, is invoked at the same cadence as the
	// periodic log line (Logging.LogInterval), independent of whether
	// logging is enabled. It must not block for long; the engine makes
	// no concurrency guarantees beyond "called from the loop goroutine".
	ProgressHook func(Progress)

	// Logger overrides the engine's logging port entirely. If nil, a
	// Logger is built from Logging.
	Logger Logger
}

// DefaultConfig returns a reasonable starting point for most problems:
// InitialTemperature=1000, MinTemperature=0.01, CoolingRate=0.995,
// MaxIterations=50000, HardConstraintWeight=10000, ReheatingFactor=2.0,
// MaxReheats=3, reheating disabled (ReheatingThreshold=0), logging
// disabled. CloneState is left nil; callers must supply it.
func DefaultConfig() Config {
	return Config{
		InitialTemperature:   1000,
		MinTemperature:       0.01,
		CoolingRate:          0.995,
		MaxIterations:        50000,
		HardConstraintWeight: 10000,
		ReheatingThreshold:   0,
		ReheatingFactor:      2.0,
		MaxReheats:           3,
		Logging: LoggingConfig{
			Enabled:     false,
			Level:       LevelInfo,
			LogInterval: 100,
			Output:      OutputConsole,
		},
	}
}

// validate checks Config bounds and fills in a RunID if one was not
// supplied. It never mutates the caller's Config; it returns a
// validated copy.
func (c Config) validate() (Config, error) {
	if c.InitialTemperature <= 0 {
		return c, fmt.Errorf("%w: initialTemperature must be > 0, got %v", ErrInvalidConfig, c.InitialTemperature)
	}
	if c.MinTemperature <= 0 {
		return c, fmt.Errorf("%w: minTemperature must be > 0, got %v", ErrInvalidConfig, c.MinTemperature)
	}
	if c.MinTemperature >= c.InitialTemperature {
		return c, fmt.Errorf("%w: minTemperature (%v) must be < initialTemperature (%v)", ErrInvalidConfig, c.MinTemperature, c.InitialTemperature)
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		return c, fmt.Errorf("%w: coolingRate must be in (0,1), got %v", ErrInvalidConfig, c.CoolingRate)
	}
	if c.MaxIterations < 1 {
		return c, fmt.Errorf("%w: maxIterations must be >= 1, got %v", ErrInvalidConfig, c.MaxIterations)
	}
	if c.HardConstraintWeight < 0 {
		return c, fmt.Errorf("%w: hardConstraintWeight must be >= 0, got %v", ErrInvalidConfig, c.HardConstraintWeight)
	}
	if c.CloneState == nil {
		return c, fmt.Errorf("%w: cloneState is required", ErrInvalidConfig)
	}
	if c.ReheatingThreshold < 0 {
		return c, fmt.Errorf("%w: reheatingThreshold must be >= 0, got %v", ErrInvalidConfig, c.ReheatingThreshold)
	}
	if c.ReheatingThreshold > 0 {
		if c.ReheatingFactor < 1 {
			return c, fmt.Errorf("%w: reheatingFactor must be >= 1, got %v", ErrInvalidConfig, c.ReheatingFactor)
		}
		if c.MaxReheats < 0 {
			return c, fmt.Errorf("%w: maxReheats must be >= 0, got %v", ErrInvalidConfig, c.MaxReheats)
		}
	}
	if c.Logging.Enabled {
		switch c.Logging.Output {
		case OutputConsole, OutputFile, OutputBoth:
		default:
			return c, fmt.Errorf("%w: unrecognized logging output %v", ErrInvalidConfig, c.Logging.Output)
		}
		if (c.Logging.Output == OutputFile || c.Logging.Output == OutputBoth) && c.Logging.FilePath == "" {
			return c, fmt.Errorf("%w: logging.filePath is required for file/both output", ErrInvalidConfig)
		}
	}

	if c.RunID == "" {
		c.RunID = uuid.NewString()
	}
	return c, nil
}
