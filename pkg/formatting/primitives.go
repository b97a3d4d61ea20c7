package formatting

import (
	"reflect"

	"github.com/pkg/errors"
)

// Params is the positional parameter list of one call.
type Params = []interface{}

// Formatter transforms a single value.
type Formatter func(value interface{}) (interface{}, error)

// ParamsFormatter transforms a whole parameter list.
type ParamsFormatter func(params Params) (Params, error)

// Predicate selects the values a conditional formatter applies to. A
// predicate that panics is treated as false.
type Predicate func(value interface{}) bool

func Identity(value interface{}) (interface{}, error) {
	return value, nil
}

func holds(pred Predicate, value interface{}) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return pred(value)
}

// ApplyIf applies f when pred holds on the value, otherwise the value is
// returned unchanged.
func ApplyIf(pred Predicate, f Formatter) Formatter {
	return func(value interface{}) (interface{}, error) {
		if !holds(pred, value) {
			return value, nil
		}
		return f(value)
	}
}

// NotNull applies f to every value except nil.
func NotNull(f Formatter) Formatter {
	return ApplyIf(IsNotNull, f)
}

// Case pairs a predicate with the formatter used when it matches.
type Case struct {
	When  Predicate
	Apply Formatter
}

// ApplyOneOf applies the formatter of the first matching case. A value no
// case matches is an error.
func ApplyOneOf(cases ...Case) Formatter {
	return func(value interface{}) (interface{}, error) {
		for _, c := range cases {
			if holds(c.When, value) {
				return c.Apply(value)
			}
		}
		return nil, errors.Wrapf(ErrNoMatchingFormatter, "%T", value)
	}
}

// Chain applies formatters left to right. Nil entries are skipped.
func Chain(formatters ...Formatter) Formatter {
	return func(value interface{}) (interface{}, error) {
		var err error
		for _, f := range formatters {
			if f == nil {
				continue
			}
			if value, err = f(value); err != nil {
				return nil, err
			}
		}
		return value, nil
	}
}

// ChainParams applies params formatters left to right. Nil entries are skipped.
func ChainParams(formatters ...ParamsFormatter) ParamsFormatter {
	return func(params Params) (Params, error) {
		var err error
		for _, f := range formatters {
			if f == nil {
				continue
			}
			if params, err = f(params); err != nil {
				return nil, err
			}
		}
		return params, nil
	}
}

// ApplyAtIndex applies f to params[index]. A list shorter than index+1 fails
// with ErrIndexOutOfRange.
func ApplyAtIndex(f Formatter, index int) ParamsFormatter {
	return func(params Params) (Params, error) {
		if index < 0 || index >= len(params) {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d of %d params", index, len(params))
		}
		return applyAt(params, f, index)
	}
}

// ApplyAtOptionalIndex is ApplyAtIndex for an optional trailing parameter: a
// list too short to hold it is returned unchanged.
func ApplyAtOptionalIndex(f Formatter, index int) ParamsFormatter {
	return func(params Params) (Params, error) {
		if index < 0 {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d", index)
		}
		if index >= len(params) {
			return params, nil
		}
		return applyAt(params, f, index)
	}
}

func applyAt(params Params, f Formatter, index int) (Params, error) {
	v, err := f(params[index])
	if err != nil {
		return nil, errors.Wrapf(err, "param %d", index)
	}
	out := make(Params, len(params))
	copy(out, params)
	out[index] = v
	return out, nil
}

// ApplyPositional applies formatters[i] to params[i]. Nil formatters leave
// their position untouched, params past the formatter list pass through and
// formatters past the end of a shorter list are skipped.
func ApplyPositional(formatters ...Formatter) ParamsFormatter {
	return func(params Params) (Params, error) {
		out := make(Params, len(params))
		copy(out, params)
		for i, f := range formatters {
			if i >= len(out) {
				break
			}
			if f == nil {
				continue
			}
			v, err := f(out[i])
			if err != nil {
				return nil, errors.Wrapf(err, "param %d", i)
			}
			out[i] = v
		}
		return out, nil
	}
}

// ApplyToArray applies f to every element of an array value.
func ApplyToArray(f Formatter) Formatter {
	return func(value interface{}) (interface{}, error) {
		items, ok := toSlice(value)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedType, "expected array, got %T", value)
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			v, err := f(item)
			if err != nil {
				return nil, errors.Wrapf(err, "item %d", i)
			}
			out[i] = v
		}
		return out, nil
	}
}

// ApplyKeyMap applies formatters to the matching keys of a record. Keys
// without a formatter are copied as is, formatters for absent keys are
// skipped and null fields stay null without reaching their formatter. Use
// ApplyKeyMapNullable for fields whose formatter handles null itself.
func ApplyKeyMap(formatters map[string]Formatter) Formatter {
	return applyKeyMap(formatters, false)
}

// ApplyKeyMapNullable is ApplyKeyMap except that fields present with a null
// value are passed to their formatter.
func ApplyKeyMapNullable(formatters map[string]Formatter) Formatter {
	return applyKeyMap(formatters, true)
}

func applyKeyMap(formatters map[string]Formatter, passNull bool) Formatter {
	return func(value interface{}) (interface{}, error) {
		record, ok := value.(map[string]interface{})
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedType, "expected record, got %T", value)
		}
		out := make(map[string]interface{}, len(record))
		for k, v := range record {
			out[k] = v
		}
		for key, f := range formatters {
			v, present := record[key]
			if !present || (v == nil && !passNull) {
				continue
			}
			formatted, err := f(v)
			if err != nil {
				return nil, errors.Wrapf(err, "field %q", key)
			}
			out[key] = formatted
		}
		return out, nil
	}
}

func toSlice(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []byte, nil:
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
