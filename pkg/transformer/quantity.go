package transformer

import (
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// QuantityResult formats methods without params whose result is a single
// quantity, like eth_blockNumber or eth_gasPrice.
type QuantityResult struct {
	method string
}

func NewQuantityResult(method string) *QuantityResult {
	return &QuantityResult{method: method}
}

func (q *QuantityResult) Method() string {
	return q.method
}

func (q *QuantityResult) RequestFormatter() f.ParamsFormatter {
	return nil
}

func (q *QuantityResult) ResultFormatter() f.Formatter {
	return integer
}
