package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHSendTransaction implements MethodFormatter
type ETHSendTransaction struct{}

func (e *ETHSendTransaction) Method() string {
	return eth.MethodSendTransaction
}

func (e *ETHSendTransaction) RequestFormatter() f.ParamsFormatter {
	return f.ApplyAtIndex(transactionParams, 0)
}

func (e *ETHSendTransaction) ResultFormatter() f.Formatter {
	return hash32
}

// ETHSendRawTransaction implements MethodFormatter
type ETHSendRawTransaction struct{}

func (e *ETHSendRawTransaction) Method() string {
	return eth.MethodSendRawTransaction
}

func (e *ETHSendRawTransaction) RequestFormatter() f.ParamsFormatter {
	return f.ApplyAtIndex(hexData, 0)
}

func (e *ETHSendRawTransaction) ResultFormatter() f.Formatter {
	return hash32
}

// ETHSign implements MethodFormatter
type ETHSign struct{}

func (e *ETHSign) Method() string {
	return eth.MethodSign
}

// RequestFormatter takes [address, message]
func (e *ETHSign) RequestFormatter() f.ParamsFormatter {
	return f.ApplyPositional(address, hexData)
}

func (e *ETHSign) ResultFormatter() f.Formatter {
	return data
}

// ETHSignTransaction implements MethodFormatter
type ETHSignTransaction struct{}

func (e *ETHSignTransaction) Method() string {
	return eth.MethodSignTransaction
}

func (e *ETHSignTransaction) RequestFormatter() f.ParamsFormatter {
	return f.ApplyAtIndex(transactionParams, 0)
}

// ResultFormatter decodes the {raw, tx} record returned by the signer
func (e *ETHSignTransaction) ResultFormatter() f.Formatter {
	return signedTransactionResult
}
