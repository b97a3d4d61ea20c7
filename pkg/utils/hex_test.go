package utils

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDecodeBig(t *testing.T) {
	var tests = []struct {
		in   string
		want string
		err  bool
	}{
		{"0x0", "0", false},
		{"0x00", "0", false},
		{"0x3039", "12345", false},
		{"0X3039", "12345", false},
		{"0xABCDEF", "11259375", false},
		{"0x000001", "1", false},
		{"0x83a3c396d1a7b40", "592852518293896000", false},
		{"3039", "", true},
		{"0x", "", true},
		{"0xzz", "", true},
		{"0x1_0", "", true},
		{"0x10000000000000000000000000000000000000000000000000000000000000000", "115792089237316195423570985008687907853269984665640564039457584007913129639936", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DecodeBig(tt.in)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}

func TestDecodeBigLooseAcceptsBareHex(t *testing.T) {
	got, err := DecodeBigLoose("1b")
	require.NoError(t, err)
	require.Equal(t, int64(27), got.Int64())

	got, err = DecodeBigLoose("0x1b")
	require.NoError(t, err)
	require.Equal(t, int64(27), got.Int64())
}

func TestDecodeBigMissingPrefix(t *testing.T) {
	_, err := DecodeBig("ff")
	require.True(t, errors.Is(err, hexutil.ErrMissingPrefix))
}

func TestEncodeBigRoundTrip(t *testing.T) {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(15),
		big.NewInt(16),
		big.NewInt(12345),
		new(big.Int).Lsh(big.NewInt(1), 200),
		new(big.Int).Lsh(big.NewInt(1), 256),
		new(big.Int).Lsh(big.NewInt(1), 1024),
	}
	for _, n := range values {
		encoded, err := EncodeBig(n)
		require.NoError(t, err)
		require.Regexp(t, `^0x(0|[1-9a-f][0-9a-f]*)$`, encoded)

		decoded, err := DecodeBig(encoded)
		require.NoError(t, err)
		require.Equal(t, 0, n.Cmp(decoded), "round trip of %s", n)
	}
}

func TestEncodeBigRejectsNegative(t *testing.T) {
	_, err := EncodeBig(big.NewInt(-1))
	require.Error(t, err)
}
