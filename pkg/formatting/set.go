package formatting

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
)

// ErrorFormatter transforms a node-reported error payload. It may return a
// different payload or a Go error, but never turn the error into a result.
type ErrorFormatter func(payload *eth.JSONRPCError) (*eth.JSONRPCError, error)

// NullFormatter runs instead of the result formatter when the node returns
// no result. It receives the request params of the call.
type NullFormatter func(params Params) (interface{}, error)

// FormatterSet maps method names to formatters for each leg of a call. A
// method missing from a map is left untouched on that leg. Sets are not
// modified after construction; Merge builds a new one.
type FormatterSet struct {
	Request map[string]ParamsFormatter
	Result  map[string]Formatter
	Error   map[string]ErrorFormatter
	Null    map[string]NullFormatter
}

func NewFormatterSet() *FormatterSet {
	return &FormatterSet{
		Request: make(map[string]ParamsFormatter),
		Result:  make(map[string]Formatter),
		Error:   make(map[string]ErrorFormatter),
		Null:    make(map[string]NullFormatter),
	}
}

func (s *FormatterSet) IsEmpty() bool {
	return s == nil || len(s.Request)+len(s.Result)+len(s.Error)+len(s.Null) == 0
}

// Has reports whether any leg of the set formats method.
func (s *FormatterSet) Has(method string) bool {
	if s == nil {
		return false
	}
	_, req := s.Request[method]
	_, res := s.Result[method]
	_, e := s.Error[method]
	_, n := s.Null[method]
	return req || res || e || n
}

// Methods returns the sorted names of all methods the set formats.
func (s *FormatterSet) Methods() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for m := range s.Request {
		seen[m] = struct{}{}
	}
	for m := range s.Result {
		seen[m] = struct{}{}
	}
	for m := range s.Error {
		seen[m] = struct{}{}
	}
	for m := range s.Null {
		seen[m] = struct{}{}
	}
	methods := make([]string, 0, len(seen))
	for m := range seen {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

// Merge returns a new set holding the formatters of s and other. Where both
// format the same method on the same leg, other wins.
func (s *FormatterSet) Merge(other *FormatterSet) *FormatterSet {
	merged := NewFormatterSet()
	for _, set := range []*FormatterSet{s, other} {
		if set == nil {
			continue
		}
		for m, f := range set.Request {
			merged.Request[m] = f
		}
		for m, f := range set.Result {
			merged.Result[m] = f
		}
		for m, f := range set.Error {
			merged.Error[m] = f
		}
		for m, f := range set.Null {
			merged.Null[m] = f
		}
	}
	return merged
}

// Overlap returns the sorted methods both sets format on the same leg.
func (s *FormatterSet) Overlap(other *FormatterSet) []string {
	if s == nil || other == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for m := range s.Request {
		if _, ok := other.Request[m]; ok {
			seen[m] = struct{}{}
		}
	}
	for m := range s.Result {
		if _, ok := other.Result[m]; ok {
			seen[m] = struct{}{}
		}
	}
	for m := range s.Error {
		if _, ok := other.Error[m]; ok {
			seen[m] = struct{}{}
		}
	}
	for m := range s.Null {
		if _, ok := other.Null[m]; ok {
			seen[m] = struct{}{}
		}
	}
	methods := make([]string, 0, len(seen))
	for m := range seen {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

// ProcessRequest applies the request formatter of method to params.
func (s *FormatterSet) ProcessRequest(method string, params Params) (Params, error) {
	if s == nil {
		return params, nil
	}
	f, ok := s.Request[method]
	if !ok || f == nil {
		return params, nil
	}
	out, err := guard(method, DirectionRequest, params, func() (interface{}, error) {
		return f(params)
	})
	if err != nil {
		return nil, err
	}
	formatted, _ := out.(Params)
	return formatted, nil
}

// ProcessResponse routes outcome to the result, null or error formatter of
// method depending on its state. params are the request params of the call.
func (s *FormatterSet) ProcessResponse(method string, params Params, outcome *eth.Outcome) (*eth.Outcome, error) {
	if outcome == nil {
		return nil, errors.Errorf("%s: no outcome to format", method)
	}
	if s == nil {
		return outcome, nil
	}

	switch outcome.State() {
	case eth.StateSuccess:
		f, ok := s.Result[method]
		if !ok || f == nil {
			return outcome, nil
		}
		result, err := guard(method, DirectionResult, outcome.Result, func() (interface{}, error) {
			return f(outcome.Result)
		})
		if err != nil {
			return nil, err
		}
		return eth.NewResultOutcome(result), nil

	case eth.StateNull:
		f, ok := s.Null[method]
		if !ok || f == nil {
			return outcome, nil
		}
		result, err := guard(method, DirectionNull, params, func() (interface{}, error) {
			return f(params)
		})
		if err != nil {
			return nil, err
		}
		return eth.NewResultOutcome(result), nil

	default:
		f, ok := s.Error[method]
		if !ok || f == nil {
			return outcome, nil
		}
		payload, err := guard(method, DirectionError, outcome.Error, func() (interface{}, error) {
			formatted, err := f(outcome.Error.Copy())
			if err != nil {
				return nil, err
			}
			if formatted == nil {
				return nil, ErrErrorSuppressed
			}
			return formatted, nil
		})
		if err != nil {
			return nil, err
		}
		return eth.NewErrorOutcome(payload.(*eth.JSONRPCError)), nil
	}
}

// guard runs fn and turns its failure, including a panic, into a
// *FormatterError describing where it happened.
func guard(method string, direction Direction, value interface{}, fn func() (interface{}, error)) (out interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &FormatterError{Method: method, Direction: direction, Value: value, Err: errors.Errorf("panic: %v", r)}
		}
	}()
	out, err = fn()
	if err != nil {
		return nil, &FormatterError{Method: method, Direction: direction, Value: value, Err: err}
	}
	return out, nil
}
