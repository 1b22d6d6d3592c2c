// Package anneal implements a generic, domain-agnostic simulated
// annealing engine for constraint-satisfaction and optimization
// problems.
//
// A caller supplies a problem-specific State (opaque to the engine), a
// set of Constraint values (each Hard or Soft), a set of MoveGenerator
// values, and a Config; Run drives the temperature schedule, neighbor
// generation, Metropolis acceptance, and reheating, and returns the best
// State observed together with diagnostics in a Solution.
//
// The engine is single-threaded and synchronous: Run blocks until the
// search terminates or is cancelled. Problem-specific state schemas,
// concrete constraints and move generators, input parsing, persistence
// and CLI wiring are all external collaborators — see internal/timetable
// and cmd/annealctl for a worked example and a command-line harness
// built on top of this package.
package anneal
