package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHGetTransactionCount implements MethodFormatter
type ETHGetTransactionCount struct{}

func (e *ETHGetTransactionCount) Method() string {
	return eth.MethodGetTransactionCount
}

func (e *ETHGetTransactionCount) RequestFormatter() f.ParamsFormatter {
	return accountAtBlock
}

func (e *ETHGetTransactionCount) ResultFormatter() f.Formatter {
	return integer
}
