package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHAccounts implements MethodFormatter
type ETHAccounts struct{}

func (e *ETHAccounts) Method() string {
	return eth.MethodAccounts
}

func (e *ETHAccounts) RequestFormatter() f.ParamsFormatter {
	return nil
}

func (e *ETHAccounts) ResultFormatter() f.Formatter {
	return addresses
}

// ETHCoinbase implements MethodFormatter
type ETHCoinbase struct{}

func (e *ETHCoinbase) Method() string {
	return eth.MethodCoinbase
}

func (e *ETHCoinbase) RequestFormatter() f.ParamsFormatter {
	return nil
}

func (e *ETHCoinbase) ResultFormatter() f.Formatter {
	return address
}
