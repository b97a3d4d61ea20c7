package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// [transaction, block?]
var transactionAtBlock = f.ChainParams(
	f.ApplyAtIndex(transactionParams, 0),
	f.ApplyAtOptionalIndex(block, 1),
)

// ETHCall implements MethodFormatter
type ETHCall struct{}

func (e *ETHCall) Method() string {
	return eth.MethodCall
}

func (e *ETHCall) RequestFormatter() f.ParamsFormatter {
	return transactionAtBlock
}

func (e *ETHCall) ResultFormatter() f.Formatter {
	return data
}

// ETHEstimateGas implements MethodFormatter
type ETHEstimateGas struct{}

func (e *ETHEstimateGas) Method() string {
	return eth.MethodEstimateGas
}

func (e *ETHEstimateGas) RequestFormatter() f.ParamsFormatter {
	return transactionAtBlock
}

func (e *ETHEstimateGas) ResultFormatter() f.Formatter {
	return integer
}
