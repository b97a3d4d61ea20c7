package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHGetProof implements MethodFormatter
type ETHGetProof struct{}

func (e *ETHGetProof) Method() string {
	return eth.MethodGetProof
}

// RequestFormatter takes [address, storageKeys, block]
func (e *ETHGetProof) RequestFormatter() f.ParamsFormatter {
	return f.ChainParams(
		f.ApplyAtIndex(address, 0),
		f.ApplyAtOptionalIndex(block, 2),
	)
}

func (e *ETHGetProof) ResultFormatter() f.Formatter {
	return proofResult
}
