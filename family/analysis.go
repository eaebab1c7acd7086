package family

import "reflect"

// ConstraintsResult is the part of an analysis result that reports which
// constraints could not be decided for a whole family.
type ConstraintsResult struct {
	UndecidedConstraints []int
}

// AnalysisResult is what a model-checking oracle returns for a family.
// ConstraintsResult may be nil when the problem has no constraints.
type AnalysisResult interface {
	ConstraintsResult() *ConstraintsResult
}

// SetAnalysisResult caches the oracle's result on f. Copies of f start
// without a result. A nil pointer wrapped in the interface clears the cache
// like a plain nil.
func (f *Family) SetAnalysisResult(r AnalysisResult) {
	if v := reflect.ValueOf(r); v.Kind() == reflect.Pointer && v.IsNil() {
		r = nil
	}
	f.analysis = r
}

func (f *Family) AnalysisResult() AnalysisResult { return f.analysis }

// Encoding is the solver-side representation of a family, e.g. the SMT terms
// for its hole options. Its contents are owned by the solver.
type Encoding interface{}

// Solver builds encodings of families.
type Solver interface {
	EncodeFamily(f *Family) (Encoding, error)
}

// Encode builds the encoding of f with s on first use and returns the cached
// encoding afterwards. Copies of f start without an encoding.
func (f *Family) Encode(s Solver) (Encoding, error) {
	if f.encoding != nil {
		return f.encoding, nil
	}
	enc, err := s.EncodeFamily(f)
	if err != nil {
		return nil, err
	}
	f.encoding = enc
	return enc, nil
}
