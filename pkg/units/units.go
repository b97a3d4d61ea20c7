package units

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/formatting"
	"github.com/revolutionchain/ethfmt/pkg/middleware"
	"github.com/revolutionchain/ethfmt/pkg/utils"
	"github.com/shopspring/decimal"
)

type Unit string

const (
	Wei   Unit = "wei"
	Gwei  Unit = "gwei"
	Ether Unit = "ether"
)

var ErrUnknownUnit = errors.New("unknown unit")

var exponents = map[Unit]int32{
	Wei:   0,
	Gwei:  9,
	Ether: 18,
}

// WeiMethods are the methods whose result is an amount of wei.
var WeiMethods = []string{
	eth.MethodGetBalance,
	eth.MethodGasPrice,
	eth.MethodMaxPriorityFeePerGas,
	eth.MethodBlobBaseFee,
}

func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := exponents[u]; !ok {
		return "", errors.Wrap(ErrUnknownUnit, s)
	}
	return u, nil
}

// FromWei converts an amount of wei to unit.
func FromWei(wei *big.Int, unit Unit) (decimal.Decimal, error) {
	exp, ok := exponents[unit]
	if !ok {
		return decimal.Decimal{}, errors.Wrap(ErrUnknownUnit, string(unit))
	}
	return decimal.NewFromBigInt(wei, -exp), nil
}

// ToWei converts an amount in unit to wei. Fractions of a wei are an error.
func ToWei(amount decimal.Decimal, unit Unit) (*big.Int, error) {
	exp, ok := exponents[unit]
	if !ok {
		return nil, errors.Wrap(ErrUnknownUnit, string(unit))
	}
	wei := amount.Shift(exp)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, errors.Errorf("%s %s is not a whole number of wei", amount, unit)
	}
	return wei.BigInt(), nil
}

// Formatter converts wei results to unit. It takes decoded integers as well
// as hex quantities, so the stage works on either side of the defaults.
func Formatter(unit Unit) formatting.Formatter {
	return func(value interface{}) (interface{}, error) {
		var wei *big.Int
		switch v := value.(type) {
		case *big.Int:
			wei = v
		case string:
			n, err := utils.DecodeBig(v)
			if err != nil {
				return nil, errors.Wrap(formatting.ErrInvalidHex, err.Error())
			}
			wei = n
		default:
			return nil, errors.Wrapf(formatting.ErrUnsupportedType, "cannot convert %T from wei", value)
		}
		return FromWei(wei, unit)
	}
}

// NewStage returns a middleware converting the results of WeiMethods to unit.
func NewStage(unit Unit, opts ...middleware.Option) (*middleware.FormattingMiddleware, error) {
	if _, ok := exponents[unit]; !ok {
		return nil, errors.Wrap(ErrUnknownUnit, string(unit))
	}
	results := make(map[string]formatting.Formatter, len(WeiMethods))
	for _, m := range WeiMethods {
		results[m] = Formatter(unit)
	}
	return middleware.New(middleware.Config{ResultFormatters: results}, opts...)
}
