package analyser

import (
	"context"
	"fmt"

	"ariadne/enclosure"
	"ariadne/evolver"
	"ariadne/function"
	"ariadne/grid"
	"ariadne/numeric"
)

// Safety is the three-valued result of spec.md 4.10's verify_safety:
// never an exception, always a verdict plus evidence.
type Safety int

const (
	Safe Safety = iota
	Unsafe
	Indeterminate
)

func (s Safety) String() string {
	switch s {
	case Safe:
		return "safe"
	case Unsafe:
		return "unsafe"
	default:
		return "indeterminate"
	}
}

// Analyser wraps an Evolver with the lock-to-grid chain-reach
// procedure of spec.md 4.10.
type Analyser struct {
	Evolver *evolver.VectorFieldEvolver
	Config  Config
}

// New returns an analyser driving ev with the given configuration.
func New(ev *evolver.VectorFieldEvolver, cfg Config) *Analyser {
	cfg.ApplyDefaults()
	return &Analyser{Evolver: ev, Config: cfg}
}

// ChainReach computes the chain-reach fixed point starting from the
// cells enabled in initial, following spec.md 4.10's pseudocode
// exactly: repeatedly orbit every frontier cell for lock_to_grid_time,
// outer-approximate the final sets back onto the grid, and continue
// until no new cells are discovered.
func (a *Analyser) ChainReach(ctx context.Context, f *function.Function, initial *grid.Paving) (*grid.Paving, error) {
	cfg := a.Config
	reached := initial
	frontier := initial
	eps := numeric.FromFloat64(1e-9, cfg.Prec)

	for {
		next := grid.NewPaving(initial.Dim, initial.PrimaryHeight, initial.Prec)
		for _, cell := range frontier.EnabledCells() {
			select {
			case <-ctx.Done():
				return reached, nil
			default:
			}

			box := frontier.CellBox(cell.Path)
			seed := enclosure.FromBox(box, nil, cfg.Prec)

			orbit, err := a.Evolver.Orbit(ctx, f, seed, cfg.lockToGridTimeFloat())
			if err != nil {
				return reached, fmt.Errorf("analyser: chain reach: orbit from cell %v: %w", cell.Path, err)
			}
			for _, fin := range orbit.Final {
				next.AdjoinOuterApproximation(fin.BoundingBox(), cfg.MaximumGridDepth, eps)
			}
		}

		fresh := grid.Difference(next, reached)
		if fresh.IsEmpty() {
			return reached, nil
		}
		reached = grid.Union(reached, fresh)
		frontier = fresh
	}
}

// VerifySafety returns safe iff the chain reach starting from initial
// stays entirely within safeSet, unsafe if no reached cell meets
// safeSet at all, and indeterminate otherwise
// — alongside the chain-reach set itself as evidence (spec.md 4.10,
// never an exception for this outcome per spec.md 7).
func (a *Analyser) VerifySafety(ctx context.Context, f *function.Function, initial, safeSet *grid.Paving) (Safety, *grid.Paving, error) {
	reached, err := a.ChainReach(ctx, f, initial)
	if err != nil {
		return Indeterminate, reached, err
	}
	outside := grid.Difference(reached, safeSet)
	if outside.IsEmpty() {
		return Safe, reached, nil
	}
	insideSafe := grid.Intersection(reached, safeSet)
	if insideSafe.IsEmpty() {
		return Unsafe, reached, nil
	}
	return Indeterminate, reached, nil
}

// BlockingWitness is the counterexample evidence VerifyAgainstBlocking
// returns when the chain reach meets the blocking set: the cell at
// which the intersection was first observed.
type BlockingWitness struct {
	Cell  grid.Cell
	Depth int
}

// VerifyAgainstBlocking performs a bounded chain-reach search,
// returning the first reached cell intersecting blocking as a
// counterexample witness the moment it appears, rather than waiting
// for the full fixed point — the bounded model-checking style of
// original_source's model_checker.code.h, which explores
// orbit-by-orbit and stops at the first violation instead of always
// computing the complete reachable set.
func (a *Analyser) VerifyAgainstBlocking(ctx context.Context, f *function.Function, initial, blocking *grid.Paving) (*BlockingWitness, *grid.Paving, error) {
	cfg := a.Config
	reached := initial
	frontier := initial
	eps := numeric.FromFloat64(1e-9, cfg.Prec)
	depth := 0

	for {
		hit := grid.Intersection(reached, blocking)
		if !hit.IsEmpty() {
			cells := hit.EnabledCells()
			return &BlockingWitness{Cell: cells[0], Depth: depth}, reached, nil
		}

		next := grid.NewPaving(initial.Dim, initial.PrimaryHeight, initial.Prec)
		for _, cell := range frontier.EnabledCells() {
			select {
			case <-ctx.Done():
				return nil, reached, nil
			default:
			}

			box := frontier.CellBox(cell.Path)
			seed := enclosure.FromBox(box, nil, cfg.Prec)
			orbit, err := a.Evolver.Orbit(ctx, f, seed, cfg.lockToGridTimeFloat())
			if err != nil {
				return nil, reached, fmt.Errorf("analyser: verify against blocking: orbit from cell %v: %w", cell.Path, err)
			}
			for _, fin := range orbit.Final {
				next.AdjoinOuterApproximation(fin.BoundingBox(), cfg.MaximumGridDepth, eps)
			}
		}

		fresh := grid.Difference(next, reached)
		if fresh.IsEmpty() {
			return nil, reached, nil
		}
		reached = grid.Union(reached, fresh)
		frontier = fresh
		depth++
	}
}
