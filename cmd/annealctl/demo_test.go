package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coolforge/anneal"
	"github.com/coolforge/anneal/internal/runconfig"
)

func TestBuildDemoKnownNames(t *testing.T) {
	for _, demo := range []runconfig.Demo{runconfig.DemoOneBit, runconfig.DemoFlat, runconfig.DemoReheat, runconfig.DemoTimetable} {
		initial, constraints, generators, clone, err := buildDemo(demo, 1)
		require.NoError(t, err, "demo=%s", demo)
		require.NotNil(t, initial)
		require.NotEmpty(t, constraints)
		require.NotEmpty(t, generators)
		require.NotNil(t, clone)
	}
}

func TestBuildDemoUnknownNameErrors(t *testing.T) {
	_, _, _, _, err := buildDemo(runconfig.Demo("bogus"), 1)
	require.Error(t, err)
}

func TestOneBitDemoSolvesUnderRun(t *testing.T) {
	initial, constraints, generators, clone, err := buildDemo(runconfig.DemoOneBit, 1)
	require.NoError(t, err)

	cfg := anneal.DefaultConfig()
	cfg.CloneState = clone
	cfg.MaxIterations = 500
	seed := int64(1)
	cfg.Seed = &seed

	sol, err := anneal.Run(initial, constraints, generators, cfg)
	require.NoError(t, err)
	require.Equal(t, 0, sol.HardViolations)
}
