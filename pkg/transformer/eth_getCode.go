package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHGetCode implements MethodFormatter
type ETHGetCode struct{}

func (e *ETHGetCode) Method() string {
	return eth.MethodGetCode
}

func (e *ETHGetCode) RequestFormatter() f.ParamsFormatter {
	return accountAtBlock
}

func (e *ETHGetCode) ResultFormatter() f.Formatter {
	return data
}
