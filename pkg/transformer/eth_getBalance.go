package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHGetBalance implements MethodFormatter
type ETHGetBalance struct{}

func (e *ETHGetBalance) Method() string {
	return eth.MethodGetBalance
}

// RequestFormatter checksums the address and encodes the block identifier
func (e *ETHGetBalance) RequestFormatter() f.ParamsFormatter {
	return accountAtBlock
}

func (e *ETHGetBalance) ResultFormatter() f.Formatter {
	return integer
}

// [address, block?] as taken by the account state methods
var accountAtBlock = f.ChainParams(
	f.ApplyAtIndex(address, 0),
	f.ApplyAtOptionalIndex(block, 1),
)
