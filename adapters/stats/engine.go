package stats

import (
	"log"

	"statease/domain/analysis"
	"statease/domain/dataset"
	"statease/internal/errors"
)

type computeFunc func(*analysis.ResolvedSelection) (analysis.TestResult, error)

// Engine is the request pipeline: validate, dispatch to the computation
// routine, interpret, serialize. It holds no mutable state beyond the
// read-only registry, so concurrent calls need no locking.
type Engine struct {
	registry *Registry
	checker  *Checker
	compute  map[analysis.TestID]computeFunc
}

func NewEngine() *Engine {
	registry := NewRegistry()
	return &Engine{
		registry: registry,
		checker:  NewChecker(registry),
		compute: map[analysis.TestID]computeFunc{
			analysis.TestIndependentT:     IndependentTTest,
			analysis.TestPairedT:          PairedTTest,
			analysis.TestANOVA:            OneWayANOVA,
			analysis.TestPearson:          PearsonCorrelation,
			analysis.TestSpearman:         SpearmanCorrelation,
			analysis.TestChiSquare:        ChiSquareTest,
			analysis.TestLinearRegression: LinearRegression,
			analysis.TestMannWhitney:      MannWhitneyU,
			analysis.TestShapiroWilk:      ShapiroWilk,
			analysis.TestLevene:           LeveneTest,
		},
	}
}

// Registry exposes the test catalog for listing endpoints.
func (e *Engine) Registry() *Registry { return e.registry }

func (e *Engine) dispatch(ds *dataset.Dataset, sel analysis.Selection) (*analysis.ResolvedSelection, analysis.TestResult, error) {
	resolved, err := e.checker.Validate(ds, sel)
	if err != nil {
		return nil, nil, err
	}

	fn, ok := e.compute[sel.TestID]
	if !ok {
		// Registry and dispatch table are built together; a miss here is a
		// programming error, not caller input.
		return nil, nil, errors.InternalError("no computation routine for test " + string(sel.TestID))
	}

	result, err := fn(resolved)
	if err != nil {
		log.Printf("[Engine] %s failed: %v", sel.TestID, err)
		return nil, nil, err
	}
	return resolved, result, nil
}

// Compute validates and dispatches one analysis request, returning the
// typed result. Failures carry one of the four analysis error codes.
func (e *Engine) Compute(ds *dataset.Dataset, sel analysis.Selection) (analysis.TestResult, error) {
	_, result, err := e.dispatch(ds, sel)
	return result, err
}

// Run executes one analysis request end to end and returns the serialized
// result envelope with the interpretation attached.
func (e *Engine) Run(ds *dataset.Dataset, sel analysis.Selection) ([]byte, error) {
	resolved, result, err := e.dispatch(ds, sel)
	if err != nil {
		return nil, err
	}
	return Serialize(result, Interpret(resolved, result))
}
