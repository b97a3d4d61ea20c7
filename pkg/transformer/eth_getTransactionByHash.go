package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHGetTransactionByHash implements MethodFormatter
type ETHGetTransactionByHash struct{}

func (e *ETHGetTransactionByHash) Method() string {
	return eth.MethodGetTransactionByHash
}

func (e *ETHGetTransactionByHash) RequestFormatter() f.ParamsFormatter {
	return nil
}

func (e *ETHGetTransactionByHash) ResultFormatter() f.Formatter {
	return transactionResult
}

func (e *ETHGetTransactionByHash) NullFormatter() f.NullFormatter {
	return transactionNotFound
}

// ETHGetTransactionByBlockNumberAndIndex implements MethodFormatter
type ETHGetTransactionByBlockNumberAndIndex struct{}

func (e *ETHGetTransactionByBlockNumberAndIndex) Method() string {
	return eth.MethodGetTransactionByBlockNumberAndIndex
}

func (e *ETHGetTransactionByBlockNumberAndIndex) RequestFormatter() f.ParamsFormatter {
	return f.ApplyPositional(block, quantity)
}

func (e *ETHGetTransactionByBlockNumberAndIndex) ResultFormatter() f.Formatter {
	return transactionResult
}

func (e *ETHGetTransactionByBlockNumberAndIndex) NullFormatter() f.NullFormatter {
	return transactionNotFound
}

// ETHGetTransactionByBlockHashAndIndex implements MethodFormatter
type ETHGetTransactionByBlockHashAndIndex struct{}

func (e *ETHGetTransactionByBlockHashAndIndex) Method() string {
	return eth.MethodGetTransactionByBlockHashAndIndex
}

func (e *ETHGetTransactionByBlockHashAndIndex) RequestFormatter() f.ParamsFormatter {
	return f.ApplyPositional(nil, quantity)
}

func (e *ETHGetTransactionByBlockHashAndIndex) ResultFormatter() f.Formatter {
	return transactionResult
}

func (e *ETHGetTransactionByBlockHashAndIndex) NullFormatter() f.NullFormatter {
	return transactionNotFound
}

// ETHGetRawTransactionByHash implements MethodFormatter
type ETHGetRawTransactionByHash struct{}

func (e *ETHGetRawTransactionByHash) Method() string {
	return eth.MethodGetRawTransactionByHash
}

func (e *ETHGetRawTransactionByHash) RequestFormatter() f.ParamsFormatter {
	return nil
}

func (e *ETHGetRawTransactionByHash) ResultFormatter() f.Formatter {
	return data
}

func (e *ETHGetRawTransactionByHash) NullFormatter() f.NullFormatter {
	return transactionNotFound
}
