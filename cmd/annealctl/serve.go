package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/coolforge/anneal"
	"github.com/coolforge/anneal/internal/broadcast"
	"github.com/coolforge/anneal/internal/metrics"
	"github.com/coolforge/anneal/internal/runconfig"
)

func newServeCmd() *cobra.Command {
	var configPath, addr, demoOverride string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a search on a background goroutine while serving progress over HTTP",
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

			reg := prometheus.NewRegistry()
			met := metrics.NewRegistry(reg)
			hub := broadcast.NewHub()

			rt.Engine.ProgressHook = func(p anneal.Progress) {
				met.Observe(p)
				hub.Broadcast(p)
			}

			result := make(chan anneal.Solution, 1)
			go func() {
				met.RunsInProgress.Inc()
				sol, runErr := anneal.Run(initial, constraints, generators, rt.Engine)
				met.RunsInProgress.Dec()
				if runErr == nil {
					met.RecordResult(sol)
				}
				result <- sol
			}()

			router := mux.NewRouter()
			router.Handle("/progress", hub)
			router.Handle("/metrics", metrics.Handler(reg))
			router.HandleFunc("/result", func(w http.ResponseWriter, r *http.Request) {
				select {
				case sol := <-result:
					result <- sol
					w.Header().Set("Content-Type", "application/json")
					json.NewEncoder(w).Encode(sol)
				default:
					w.WriteHeader(http.StatusAccepted)
					fmt.Fprintln(w, "run in progress")
				}
			})

			fmt.Printf("annealctl serve listening on %s (demo=%s)\n", addr, rt.Demo)
			return http.ListenAndServe(addr, router)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "annealctl.yaml", "path to a YAML run configuration file")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	cmd.Flags().StringVar(&demoOverride, "demo", "", "override the configured demo")
	return cmd
}
