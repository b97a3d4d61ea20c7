package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHGetBlockByNumber implements MethodFormatter
type ETHGetBlockByNumber struct{}

func (e *ETHGetBlockByNumber) Method() string {
	return eth.MethodGetBlockByNumber
}

// RequestFormatter takes [block, fullTransactions]
func (e *ETHGetBlockByNumber) RequestFormatter() f.ParamsFormatter {
	return f.ApplyAtIndex(block, 0)
}

func (e *ETHGetBlockByNumber) ResultFormatter() f.Formatter {
	return blockResult
}

func (e *ETHGetBlockByNumber) NullFormatter() f.NullFormatter {
	return blockNotFound
}

// ETHGetBlockByHash implements MethodFormatter
type ETHGetBlockByHash struct{}

func (e *ETHGetBlockByHash) Method() string {
	return eth.MethodGetBlockByHash
}

func (e *ETHGetBlockByHash) RequestFormatter() f.ParamsFormatter {
	return nil
}

func (e *ETHGetBlockByHash) ResultFormatter() f.Formatter {
	return blockResult
}

func (e *ETHGetBlockByHash) NullFormatter() f.NullFormatter {
	return blockNotFound
}

// ETHGetUncleByBlockNumberAndIndex implements MethodFormatter
type ETHGetUncleByBlockNumberAndIndex struct{}

func (e *ETHGetUncleByBlockNumberAndIndex) Method() string {
	return eth.MethodGetUncleByBlockNumberAndIndex
}

func (e *ETHGetUncleByBlockNumberAndIndex) RequestFormatter() f.ParamsFormatter {
	return f.ApplyPositional(block, quantity)
}

func (e *ETHGetUncleByBlockNumberAndIndex) ResultFormatter() f.Formatter {
	return blockResult
}

func (e *ETHGetUncleByBlockNumberAndIndex) NullFormatter() f.NullFormatter {
	return blockNotFound
}

// ETHGetUncleByBlockHashAndIndex implements MethodFormatter
type ETHGetUncleByBlockHashAndIndex struct{}

func (e *ETHGetUncleByBlockHashAndIndex) Method() string {
	return eth.MethodGetUncleByBlockHashAndIndex
}

func (e *ETHGetUncleByBlockHashAndIndex) RequestFormatter() f.ParamsFormatter {
	return f.ApplyPositional(nil, quantity)
}

func (e *ETHGetUncleByBlockHashAndIndex) ResultFormatter() f.Formatter {
	return blockResult
}

func (e *ETHGetUncleByBlockHashAndIndex) NullFormatter() f.NullFormatter {
	return blockNotFound
}

// BlockCountByNumber formats the count queries addressed by block number.
type BlockCountByNumber struct {
	method string
}

func (e *BlockCountByNumber) Method() string {
	return e.method
}

func (e *BlockCountByNumber) RequestFormatter() f.ParamsFormatter {
	return f.ApplyAtIndex(block, 0)
}

func (e *BlockCountByNumber) ResultFormatter() f.Formatter {
	return integer
}
