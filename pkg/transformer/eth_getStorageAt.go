package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHGetStorageAt implements MethodFormatter
type ETHGetStorageAt struct{}

func (e *ETHGetStorageAt) Method() string {
	return eth.MethodGetStorageAt
}

// RequestFormatter takes [address, slot, block?]. The slot is a quantity.
func (e *ETHGetStorageAt) RequestFormatter() f.ParamsFormatter {
	return f.ChainParams(
		f.ApplyAtIndex(address, 0),
		f.ApplyAtIndex(quantity, 1),
		f.ApplyAtOptionalIndex(block, 2),
	)
}

// ResultFormatter returns the 32 byte word stored in the slot
func (e *ETHGetStorageAt) ResultFormatter() f.Formatter {
	return data
}
