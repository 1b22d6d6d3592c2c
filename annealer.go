package anneal

import "math"

// Run executes a single simulated-annealing search to termination or
// cancellation. It is synchronous: Run returns only once the loop has
// stopped.
//
// Run drives the temperature schedule: clone-and-perturb via a chosen
// MoveGenerator, Metropolis accept/reject, best-state tracking, and
// optional reheating on stagnation, cancellation, and per-generator
// operator statistics.
func Run(initial State, constraints []Constraint, generators []MoveGenerator, cfg Config) (Solution, error) {
	cfg, err := cfg.validate()
	if err != nil {
		return Solution{}, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger, err = newLogger(cfg.Logging)
		if err != nil {
			return Solution{}, err
		}
	}
	defer logger.Close()

	rng, seedUsed := newRNG(cfg.Seed)
	sel := newSelector(generators, rng)

	current := initial
	best, err := safeClone(cfg.CloneState, current)
	if err != nil {
		return errorSolution(cfg, seedUsed, best, err), err
	}

	currentFitness := Evaluate(current, constraints, cfg.HardConstraintWeight)
	bestFitness := currentFitness

	temperature := cfg.InitialTemperature
	iterations := 0
	reheats := 0
	sinceImprovement := 0
	status := StatusCompleted

	for {
		if temperature < cfg.MinTemperature || iterations >= cfg.MaxIterations {
			break
		}
		if cfg.Cancel != nil {
			select {
			case <-cfg.Cancel:
				status = StatusCancelled
			default:
			}
		}
		if status == StatusCancelled {
			break
		}

		idx := sel.choose(current)
		if idx < 0 {
			logger.Warn("no applicable move generator, terminating early", "iter", iterations)
			break
		}
		g := generators[idx]

		candidate, genErr := safeGenerate(g, current, temperature)
		if genErr != nil {
			logger.Error("move generator error, skipping iteration", "generator", g.Name(), "error", genErr.Error())
			iterations++
			sinceImprovement++
			temperature = cool(cfg, temperature, &sinceImprovement, &reheats)
			continue
		}

		candFitness := evaluateWithLog(candidate, constraints, cfg.HardConstraintWeight, func(name string, raw float64, issue evalIssue) {
			switch issue {
			case issuePanicked:
				logger.Error("constraint evaluation panicked, treated as score 0", "constraint", name)
			case issueNonFinite:
				logger.Error("constraint score was NaN or infinite, treated as score 0", "constraint", name, "raw", raw)
			default:
				logger.Warn("constraint score out of range, clamped", "constraint", name, "raw", raw)
			}
		})

		delta := candFitness.Score - currentFitness.Score
		accepted := delta <= 0
		if !accepted {
			accepted = rng.Float64() < math.Exp(-delta/temperature)
		}

		improved := false
		if accepted {
			current = candidate
			currentFitness = candFitness
			sel.recordAccepted(idx)

			if candFitness.Score < bestFitness.Score {
				cloned, cloneErr := safeClone(cfg.CloneState, current)
				if cloneErr != nil {
					return errorSolution(cfg, seedUsed, best, cloneErr), cloneErr
				}
				best = cloned
				bestFitness = candFitness
				sinceImprovement = 0
				sel.recordImprovement(idx)
				improved = true
			}
		}
		if !improved {
			sinceImprovement++
		}

		iterations++

		logger.Debug("iteration decision",
			"iter", iterations, "generator", g.Name(), "accepted", accepted,
			"delta", delta, "T", temperature)

		if cfg.Logging.LogInterval > 0 && iterations%cfg.Logging.LogInterval == 0 {
			logger.Progress(cfg.RunID, iterations, temperature, currentFitness.Score, bestFitness.Score, sinceImprovement, reheats)
			if cfg.ProgressHook != nil {
				cfg.ProgressHook(Progress{
					RunID:            cfg.RunID,
					Iteration:        iterations,
					Temperature:      temperature,
					CurrentFitness:   currentFitness.Score,
					BestFitness:      bestFitness.Score,
					SinceImprovement: sinceImprovement,
					Reheats:          reheats,
				})
			}
		}

		temperature = cool(cfg, temperature, &sinceImprovement, &reheats)
	}

	finalFitness, violations := assembleResult(best, constraints, cfg.HardConstraintWeight)

	return Solution{
		RunID:             cfg.RunID,
		Status:            status,
		BestState:         best,
		Fitness:           finalFitness.Score,
		HardViolations:    finalFitness.HardViolationCount,
		SoftViolations:    finalFitness.SoftViolationCount,
		Iterations:        iterations,
		Reheats:           reheats,
		FinalTemperature:  temperature,
		SeedUsed:          seedUsed,
		Violations:        violations,
		OperatorStats:     sel.stats,
	}, nil
}

// cool applies reheating-or-cooling: when reheating is configured,
// sinceImprovement has reached the threshold, and the run hasn't
// exhausted its reheat budget, the temperature is boosted instead of
// cooled and the stagnation counter resets.
func cool(cfg Config, temperature float64, sinceImprovement *int, reheats *int) float64 {
	if cfg.ReheatingThreshold > 0 && *sinceImprovement >= cfg.ReheatingThreshold && *reheats < cfg.MaxReheats {
		*reheats++
		*sinceImprovement = 0
		return temperature * cfg.ReheatingFactor
	}
	return temperature * cfg.CoolingRate
}

func safeClone(clone func(State) State, s State) (out State, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errCloneRecovered(r)
		}
	}()
	return clone(s), nil
}

func safeGenerate(g MoveGenerator, s State, t float64) (out State, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errGenerateRecovered(r)
		}
	}()
	return g.Generate(s, t), nil
}

func errorSolution(cfg Config, seedUsed int64, best State, err error) Solution {
	return Solution{
		RunID:      cfg.RunID,
		Status:     StatusError,
		Diagnostic: err.Error(),
		BestState:  best,
		SeedUsed:   seedUsed,
	}
}
