// Package runconfig loads CLI-facing run configuration from a YAML file
// plus ANNEAL_-prefixed environment overrides, and translates it into
// an anneal.Config and the parameters needed to build a demo problem.
// It never reaches into anneal's internals beyond the exported Config
// type: validation of the translated anneal.Config happens inside
// anneal.Run itself.
package runconfig

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/coolforge/anneal"
)

// Demo selects which bundled problem the CLI builds.
type Demo string

const (
	DemoTimetable Demo = "timetable"
	DemoOneBit    Demo = "one-bit"
	DemoFlat      Demo = "flat"
	DemoReheat    Demo = "reheat"
)

// File is the on-disk shape of a run configuration file.
type File struct {
	Demo    string `mapstructure:"demo"`
	Seed    *int64 `mapstructure:"seed"`
	RunID   string `mapstructure:"runID"`
	Logging struct {
		Enabled     bool   `mapstructure:"enabled"`
		Level       string `mapstructure:"level"`
		LogInterval int    `mapstructure:"logInterval"`
		Output      string `mapstructure:"output"`
		FilePath    string `mapstructure:"filePath"`
	} `mapstructure:"logging"`
	Annealing struct {
		InitialTemperature   float64 `mapstructure:"initialTemperature"`
		MinTemperature       float64 `mapstructure:"minTemperature"`
		CoolingRate          float64 `mapstructure:"coolingRate"`
		MaxIterations        int     `mapstructure:"maxIterations"`
		HardConstraintWeight float64 `mapstructure:"hardConstraintWeight"`
		ReheatingThreshold   int     `mapstructure:"reheatingThreshold"`
		ReheatingFactor      float64 `mapstructure:"reheatingFactor"`
		MaxReheats           int     `mapstructure:"maxReheats"`
	} `mapstructure:"annealing"`
	Timetable struct {
		Rooms   int `mapstructure:"rooms"`
		Lessons int `mapstructure:"lessons"`
		Periods int `mapstructure:"periods"`
	} `mapstructure:"timetable"`
}

// Runtime is the fully validated, translated configuration the CLI acts
// on: an anneal.Config ready for Run, plus which demo to build.
type Runtime struct {
	Demo   Demo
	Engine anneal.Config
}

// Load reads path (YAML) with ANNEAL_-prefixed environment overrides
// (e.g. ANNEAL_ANNEALING_MAXITERATIONS=5000), checks the demo name, and
// returns the translated Runtime. Read, decode and unknown-demo errors
// surface before any problem is built; the bounds of the translated
// anneal.Config are checked by anneal.Run before its loop starts.
func Load(path string) (Runtime, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	vp.SetEnvPrefix("ANNEAL")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	setDefaults(vp)

	if err := vp.ReadInConfig(); err != nil {
		return Runtime{}, fmt.Errorf("runconfig: reading %q: %w", path, err)
	}

	var f File
	if err := vp.Unmarshal(&f); err != nil {
		return Runtime{}, fmt.Errorf("runconfig: decoding %q: %w", path, err)
	}

	return translate(f)
}

func setDefaults(vp *viper.Viper) {
	def := anneal.DefaultConfig()
	vp.SetDefault("demo", string(DemoOneBit))
	vp.SetDefault("logging.enabled", def.Logging.Enabled)
	vp.SetDefault("logging.level", "info")
	vp.SetDefault("logging.logInterval", def.Logging.LogInterval)
	vp.SetDefault("logging.output", "console")
	vp.SetDefault("annealing.initialTemperature", def.InitialTemperature)
	vp.SetDefault("annealing.minTemperature", def.MinTemperature)
	vp.SetDefault("annealing.coolingRate", def.CoolingRate)
	vp.SetDefault("annealing.maxIterations", def.MaxIterations)
	vp.SetDefault("annealing.hardConstraintWeight", def.HardConstraintWeight)
	vp.SetDefault("annealing.reheatingThreshold", def.ReheatingThreshold)
	vp.SetDefault("annealing.reheatingFactor", def.ReheatingFactor)
	vp.SetDefault("annealing.maxReheats", def.MaxReheats)
	vp.SetDefault("timetable.rooms", 2)
	vp.SetDefault("timetable.lessons", 5)
	vp.SetDefault("timetable.periods", 3)
}

func translate(f File) (Runtime, error) {
	demo := Demo(f.Demo)
	switch demo {
	case DemoTimetable, DemoOneBit, DemoFlat, DemoReheat:
	default:
		return Runtime{}, fmt.Errorf("runconfig: unrecognized demo %q", f.Demo)
	}

	cfg := anneal.DefaultConfig()
	cfg.InitialTemperature = f.Annealing.InitialTemperature
	cfg.MinTemperature = f.Annealing.MinTemperature
	cfg.CoolingRate = f.Annealing.CoolingRate
	cfg.MaxIterations = f.Annealing.MaxIterations
	cfg.HardConstraintWeight = f.Annealing.HardConstraintWeight
	cfg.ReheatingThreshold = f.Annealing.ReheatingThreshold
	cfg.ReheatingFactor = f.Annealing.ReheatingFactor
	cfg.MaxReheats = f.Annealing.MaxReheats
	cfg.Seed = f.Seed
	cfg.RunID = f.RunID

	cfg.Logging.Enabled = f.Logging.Enabled
	cfg.Logging.LogInterval = f.Logging.LogInterval
	cfg.Logging.FilePath = f.Logging.FilePath
	cfg.Logging.Level = parseLevel(f.Logging.Level)
	cfg.Logging.Output = parseOutput(f.Logging.Output)

	return Runtime{Demo: demo, Engine: cfg}, nil
}

func parseLevel(s string) anneal.Level {
	switch strings.ToLower(s) {
	case "debug":
		return anneal.LevelDebug
	case "warn":
		return anneal.LevelWarn
	case "error":
		return anneal.LevelError
	case "none":
		return anneal.LevelNone
	default:
		return anneal.LevelInfo
	}
}

func parseOutput(s string) anneal.Output {
	switch strings.ToLower(s) {
	case "file":
		return anneal.OutputFile
	case "both":
		return anneal.OutputBoth
	default:
		return anneal.OutputConsole
	}
}
