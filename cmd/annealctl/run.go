package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coolforge/anneal"
	"github.com/coolforge/anneal/internal/runconfig"
)

func newRunCmd() *cobra.Command {
	var configPath string
	var demoOverride string
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single search to completion and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runconfig.Load(configPath)
			if err != nil {
				return err
			}
			if demoOverride != "" {
				rt.Demo = runconfig.Demo(demoOverride)
			}

			seed := int64(1)
			if rt.Engine.Seed != nil {
				seed = *rt.Engine.Seed
			}
			initial, constraints, generators, clone, err := buildDemo(rt.Demo, seed)
			if err != nil {
				return err
			}
			rt.Engine.CloneState = clone

			sol, err := anneal.Run(initial, constraints, generators, rt.Engine)
			if err != nil {
				return err
			}

			if asYAML {
				out, err := yaml.Marshal(sol)
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(out))
				return nil
			}

			printSummary(sol)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "annealctl.yaml", "path to a YAML run configuration file")
	cmd.Flags().StringVar(&demoOverride, "demo", "", "override the configured demo: one-bit, flat, reheat, timetable")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the full Solution as YAML instead of a one-line summary")
	return cmd
}

func printSummary(sol anneal.Solution) {
	statusColor := color.New(color.FgGreen)
	if sol.Status != anneal.StatusCompleted {
		statusColor = color.New(color.FgYellow)
	}
	if sol.HardViolations > 0 {
		statusColor = color.New(color.FgRed)
	}

	statusColor.Printf("[%s] ", sol.Status)
	fmt.Printf("run=%s iterations=%d reheats=%d fitness=%.4f hard=%d soft=%d\n",
		sol.RunID, sol.Iterations, sol.Reheats, sol.Fitness, sol.HardViolations, sol.SoftViolations)
}
