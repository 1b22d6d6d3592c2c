package anneal

// Status reports how a run terminated.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusError     Status = "error"
)

// Violation is a single constraint's final report against the best
// state found.
type Violation struct {
	ConstraintName string
	Class          Class
	Score          float64
	Messages       []string
}

// Solution is the immutable record Run returns: the best state observed
// together with diagnostics.
type Solution struct {
	RunID  string
	Status Status
	// Diagnostic is a short human-readable message, populated when
	// Status == StatusError.
	Diagnostic string

	BestState      State
	Fitness        float64
	HardViolations int
	SoftViolations int

	Iterations        int
	Reheats           int
	FinalTemperature  float64
	SeedUsed          int64

	Violations    []Violation
	OperatorStats []OperatorStats
}

// assembleResult runs the final pass over best: it recomputes hard/soft
// violation counts from best directly (rather than trusting the
// last-seen currentFitness, since best may have been set several
// iterations ago under a different accepted/rejected path) and collects
// each constraint's full violation list.
func assembleResult(best State, constraints []Constraint, hardWeight float64) (Fitness, []Violation) {
	fit := Evaluate(best, constraints, hardWeight)

	violations := make([]Violation, 0, len(constraints))
	for _, c := range constraints {
		raw, _ := safeEvaluate(c, best)
		score, _, _ := clampScore(raw)
		violations = append(violations, Violation{
			ConstraintName: c.Name(),
			Class:          c.Class(),
			Score:          score,
			Messages:       c.Violations(best),
		})
	}
	return fit, violations
}
