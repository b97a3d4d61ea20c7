package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHGetTransactionReceipt implements MethodFormatter
type ETHGetTransactionReceipt struct{}

func (e *ETHGetTransactionReceipt) Method() string {
	return eth.MethodGetTransactionReceipt
}

func (e *ETHGetTransactionReceipt) RequestFormatter() f.ParamsFormatter {
	return nil
}

func (e *ETHGetTransactionReceipt) ResultFormatter() f.Formatter {
	return receiptResult
}

// NullFormatter reports pending and unknown transactions alike
func (e *ETHGetTransactionReceipt) NullFormatter() f.NullFormatter {
	return transactionNotFound
}
