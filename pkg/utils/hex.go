package utils

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// Has0xPrefix reports whether hex starts with 0x or 0X.
func Has0xPrefix(hex string) bool {
	return len(hex) >= 2 && hex[0] == '0' && (hex[1] == 'x' || hex[1] == 'X')
}

func RemoveHexPrefix(hex string) string {
	if Has0xPrefix(hex) {
		return hex[2:]
	}
	return hex
}

func AddHexPrefix(hex string) string {
	if Has0xPrefix(hex) {
		return hex
	}
	return "0x" + hex
}

func AddHexPrefixIfNotEmpty(hex string) string {
	if hex == "" {
		return hex
	}
	return AddHexPrefix(hex)
}

// IsHexDigits reports whether s is a non-empty run of hex digits, any case.
func IsHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !isHexChar(c) {
			return false
		}
	}
	return true
}

// IsHex reports whether s is a 0x prefixed hex string.
func IsHex(s string) bool {
	return Has0xPrefix(s) && IsHexDigits(s[2:])
}

func isHexChar(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// DecodeBig decodes a 0x prefixed hex quantity. Digits are case-insensitive
// and leading zeros, which some nodes emit, are tolerated.
func DecodeBig(input string) (*big.Int, error) {
	if !Has0xPrefix(input) {
		return nil, errors.Wrapf(hexutil.ErrMissingPrefix, "decode %q", input)
	}
	return decodeBigDigits(input[2:])
}

// DecodeBigLoose decodes a hex quantity whether input is with 0x prefix or not.
func DecodeBigLoose(input string) (*big.Int, error) {
	return decodeBigDigits(RemoveHexPrefix(input))
}

func decodeBigDigits(digits string) (*big.Int, error) {
	if digits == "" {
		return nil, hexutil.ErrEmptyNumber
	}
	if !IsHexDigits(digits) {
		return nil, errors.Wrapf(hexutil.ErrSyntax, "decode %q", "0x"+digits)
	}
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return big.NewInt(0), nil
	}
	// no 256 bit cap, EncodeBig has none either
	n, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return nil, errors.Wrapf(hexutil.ErrSyntax, "decode %q", "0x"+digits)
	}
	return n, nil
}

// EncodeBig encodes a non-negative integer as a minimal lowercase 0x quantity.
func EncodeBig(n *big.Int) (string, error) {
	if n == nil {
		return "", errors.New("cannot encode nil integer")
	}
	if n.Sign() < 0 {
		return "", errors.Errorf("cannot encode negative integer %s", n.String())
	}
	return hexutil.EncodeBig(n), nil
}

func InStrSlice(slice []string, s string) bool {
	for _, item := range slice {
		if item == s {
			return true
		}
	}
	return false
}
