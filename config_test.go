package anneal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func validBaseConfig() Config {
	cfg := DefaultConfig()
	cfg.CloneState = func(s State) State { return s }
	return cfg
}

func TestConfigValidateRejectsMissingClone(t *testing.T) {
	cfg := validBaseConfig()
	cfg.CloneState = nil
	_, err := cfg.validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidateRejectsBadCoolingRate(t *testing.T) {
	for _, rate := range []float64{0, 1, -0.1, 1.5} {
		cfg := validBaseConfig()
		cfg.CoolingRate = rate
		_, err := cfg.validate()
		require.ErrorIs(t, err, ErrInvalidConfig, "coolingRate=%v should be rejected", rate)
	}
}

func TestConfigValidateRejectsMinAboveInitialTemperature(t *testing.T) {
	cfg := validBaseConfig()
	cfg.MinTemperature = cfg.InitialTemperature
	_, err := cfg.validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidateAssignsRunID(t *testing.T) {
	cfg := validBaseConfig()
	cfg.RunID = ""
	out, err := cfg.validate()
	require.NoError(t, err)
	require.NotEmpty(t, out.RunID)
}

func TestConfigValidatePreservesSuppliedRunID(t *testing.T) {
	cfg := validBaseConfig()
	cfg.RunID = "fixed-id"
	out, err := cfg.validate()
	require.NoError(t, err)
	require.Equal(t, "fixed-id", out.RunID)
}

func TestConfigValidateReheatingBounds(t *testing.T) {
	cfg := validBaseConfig()
	cfg.ReheatingThreshold = 10
	cfg.ReheatingFactor = 0.5
	_, err := cfg.validate()
	require.ErrorIs(t, err, ErrInvalidConfig)

	cfg.ReheatingFactor = 2
	cfg.MaxReheats = -1
	_, err = cfg.validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidateFileLoggingRequiresPath(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Logging.Enabled = true
	cfg.Logging.Output = OutputFile
	_, err := cfg.validate()
	require.True(t, errors.Is(err, ErrInvalidConfig))
}
