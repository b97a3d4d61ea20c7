package formatting

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownMethodIsIdentity(t *testing.T) {
	set := NewFormatterSet()
	set.Result["eth_known"] = failing

	params := Params{"a", 1}
	got, err := set.ProcessRequest("eth_unknown", params)
	require.NoError(t, err)
	assert.Equal(t, params, got)

	outcome := eth.NewResultOutcome("0x1")
	formatted, err := set.ProcessResponse("eth_unknown", params, outcome)
	require.NoError(t, err)
	assert.Equal(t, outcome, formatted)

	var nilSet *FormatterSet
	formatted, err = nilSet.ProcessResponse("eth_known", params, outcome)
	require.NoError(t, err)
	assert.Equal(t, outcome, formatted)
}

func TestNullNeverReachesResultFormatter(t *testing.T) {
	set := NewFormatterSet()
	set.Result["m"] = func(value interface{}) (interface{}, error) {
		t.Fatal("result formatter called with a null result")
		return nil, nil
	}

	formatted, err := set.ProcessResponse("m", nil, eth.NewResultOutcome(nil))
	require.NoError(t, err)
	assert.Nil(t, formatted.Result)
	assert.Equal(t, eth.StateNull, formatted.State())

	set.Null["m"] = func(params Params) (interface{}, error) {
		return nil, errors.Wrapf(ErrBlockNotFound, "block %v", params[0])
	}
	_, err = set.ProcessResponse("m", Params{"0x1"}, eth.NewResultOutcome(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBlockNotFound))

	var fe *FormatterError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, DirectionNull, fe.Direction)
}

func TestErrorFormatter(t *testing.T) {
	set := NewFormatterSet()
	set.Error["m"] = func(payload *eth.JSONRPCError) (*eth.JSONRPCError, error) {
		payload.Message = "augmented: " + payload.Message
		return payload, nil
	}

	original := eth.NewJSONRPCError(-32000, "execution reverted", nil)
	formatted, err := set.ProcessResponse("m", nil, eth.NewErrorOutcome(original))
	require.NoError(t, err)
	assert.Equal(t, eth.StateError, formatted.State())
	assert.Equal(t, "augmented: execution reverted", formatted.Error.Message)
	assert.Equal(t, "execution reverted", original.Message, "payload must be copied")
}

func TestErrorFormatterCannotSuppressError(t *testing.T) {
	set := NewFormatterSet()
	set.Error["m"] = func(payload *eth.JSONRPCError) (*eth.JSONRPCError, error) {
		return nil, nil
	}

	_, err := set.ProcessResponse("m", nil, eth.NewErrorOutcome(eth.NewCallbackError("nope")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrErrorSuppressed))
}

func TestFormatterErrorCarriesContext(t *testing.T) {
	set := NewFormatterSet()
	set.Request["m"] = ApplyAtIndex(HexToInteger, 0)
	set.Result["m"] = func(value interface{}) (interface{}, error) {
		panic("unexpected shape")
	}

	_, err := set.ProcessRequest("m", Params{"zz"})
	var fe *FormatterError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "m", fe.Method)
	assert.Equal(t, DirectionRequest, fe.Direction)
	assert.Equal(t, Params{"zz"}, fe.Value)
	assert.True(t, errors.Is(err, ErrInvalidHex))

	_, err = set.ProcessResponse("m", nil, eth.NewResultOutcome("0x1"))
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, DirectionResult, fe.Direction)
	assert.Contains(t, err.Error(), "unexpected shape")
}

func TestMergeAndOverlap(t *testing.T) {
	a := NewFormatterSet()
	a.Result["x"] = upper
	a.Result["y"] = upper

	b := NewFormatterSet()
	b.Result["y"] = failing
	b.Request["z"] = ApplyAtIndex(upper, 0)

	merged := a.Merge(b)
	assert.Equal(t, []string{"x", "y", "z"}, merged.Methods())
	assert.Equal(t, []string{"y"}, a.Overlap(b))

	_, err := merged.ProcessResponse("y", nil, eth.NewResultOutcome("v"))
	assert.Error(t, err, "the second set wins on overlap")
	assert.Len(t, a.Result, 2, "merge must not modify its inputs")
}
