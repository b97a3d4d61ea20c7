package formatting

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/utils"
)

const (
	hashHexLength    = 2 * common.HashLength
	addressHexLength = 2 * common.AddressLength
)

func IsNotNull(value interface{}) bool {
	return value != nil
}

func IsString(value interface{}) bool {
	_, ok := value.(string)
	return ok
}

func IsBool(value interface{}) bool {
	_, ok := value.(bool)
	return ok
}

func IsMap(value interface{}) bool {
	_, ok := value.(map[string]interface{})
	return ok
}

func IsArray(value interface{}) bool {
	_, ok := toSlice(value)
	return ok
}

// IsHexString reports whether value is a 0x prefixed hex string.
func IsHexString(value interface{}) bool {
	s, ok := value.(string)
	return ok && utils.IsHex(s)
}

// IsInteger reports whether value is a Go integer, a big integer or an
// integral json.Number.
func IsInteger(value interface{}) bool {
	_, ok := toBig(value)
	return ok
}

func IsBlockTag(value interface{}) bool {
	s, ok := value.(string)
	return ok && eth.IsBlockTag(s)
}

func toBig(value interface{}) (*big.Int, bool) {
	switch v := value.(type) {
	case int:
		return big.NewInt(int64(v)), true
	case int8:
		return big.NewInt(int64(v)), true
	case int16:
		return big.NewInt(int64(v)), true
	case int32:
		return big.NewInt(int64(v)), true
	case int64:
		return big.NewInt(v), true
	case uint:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint64:
		return new(big.Int).SetUint64(v), true
	case *big.Int:
		if v == nil {
			return nil, false
		}
		return v, true
	case *hexutil.Big:
		if v == nil {
			return nil, false
		}
		return v.ToInt(), true
	case hexutil.Big:
		return v.ToInt(), true
	case hexutil.Uint64:
		return new(big.Int).SetUint64(uint64(v)), true
	case json.Number:
		// integral JSON numbers only
		n, ok := new(big.Int).SetString(v.String(), 10)
		if !ok {
			return nil, false
		}
		return n, true
	}
	return nil, false
}

// IntegerToHex encodes integers as minimal 0x quantities. Hex strings are
// normalized; decimal strings and negative numbers are rejected.
func IntegerToHex(value interface{}) (interface{}, error) {
	if n, ok := toBig(value); ok {
		return utils.EncodeBig(n)
	}
	switch v := value.(type) {
	case string:
		if !utils.IsHex(v) {
			return nil, errors.Wrapf(ErrInvalidHex, "%q is not a hex quantity", v)
		}
		n, err := utils.DecodeBig(v)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidHex, err.Error())
		}
		return utils.EncodeBig(n)
	case json.Number:
		return nil, errors.Wrapf(ErrUnsupportedType, "number %s is not an integer", v)
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "cannot encode %T as a quantity", value)
}

// HexToInteger decodes a 0x quantity into a *big.Int.
func HexToInteger(value interface{}) (interface{}, error) {
	return hexToInteger(value, utils.DecodeBig)
}

// LooseHexToInteger is HexToInteger for the fields some nodes send without
// the 0x prefix.
func LooseHexToInteger(value interface{}) (interface{}, error) {
	return hexToInteger(value, utils.DecodeBigLoose)
}

func hexToInteger(value interface{}, decode func(string) (*big.Int, error)) (interface{}, error) {
	switch v := value.(type) {
	case string:
		n, err := decode(v)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidHex, err.Error())
		}
		return n, nil
	case json.Number:
		n, ok := new(big.Int).SetString(v.String(), 10)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedType, "number %s is not an integer", v)
		}
		return n, nil
	case *big.Int:
		if v != nil {
			return v, nil
		}
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "cannot decode %T as a quantity", value)
}

// ToHash32 decodes a 0x prefixed 32 byte hex string into a common.Hash.
func ToHash32(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case common.Hash:
		return v, nil
	case string:
		if !utils.IsHex(v) || len(v)-2 != hashHexLength {
			return nil, errors.Wrapf(ErrInvalidHex, "%q is not a 32 byte hash", v)
		}
		return common.HexToHash(v), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "cannot decode %T as a hash", value)
}

// ToChecksumAddress returns the mixed-case checksummed form of a 20 byte
// address. Mixed-case input must already carry a valid checksum.
func ToChecksumAddress(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case common.Address:
		return v.Hex(), nil
	case *common.Address:
		if v != nil {
			return v.Hex(), nil
		}
	case string:
		if !utils.Has0xPrefix(v) || len(v)-2 != addressHexLength || !utils.IsHexDigits(v[2:]) {
			return nil, errors.Wrapf(ErrInvalidAddress, "%q", v)
		}
		checksummed := common.HexToAddress(v).Hex()
		digits := v[2:]
		if isMixedCase(digits) && digits != checksummed[2:] {
			return nil, errors.Wrapf(ErrInvalidAddress, "%q has an invalid checksum", v)
		}
		return checksummed, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "cannot format %T as an address", value)
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}

// HexToBytes decodes 0x prefixed even-length hex data.
func HexToBytes(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case hexutil.Bytes:
		return v, nil
	case []byte:
		return hexutil.Bytes(v), nil
	case string:
		b, err := hexutil.Decode(v)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidHex, "%q: %v", v, err)
		}
		return hexutil.Bytes(b), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "cannot decode %T as bytes", value)
}

// BytesToHex encodes byte data as 0x hex. Hex strings pass through.
func BytesToHex(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case hexutil.Bytes:
		return v.String(), nil
	case []byte:
		return hexutil.Encode(v), nil
	case string:
		if v == "0x" || utils.IsHex(v) {
			return v, nil
		}
		return nil, errors.Wrapf(ErrInvalidHex, "%q", v)
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "cannot encode %T as bytes", value)
}

// BlockIdentifier formats a block number argument: integers become hex,
// 0x hex strings and block tags pass through unchanged.
var BlockIdentifier = ApplyOneOf(
	Case{When: IsBlockTag, Apply: Identity},
	Case{When: IsHexString, Apply: Identity},
	Case{When: IsInteger, Apply: IntegerToHex},
)
