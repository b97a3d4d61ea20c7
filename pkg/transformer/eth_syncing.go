package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHSyncing implements MethodFormatter
type ETHSyncing struct{}

func (e *ETHSyncing) Method() string {
	return eth.MethodSyncing
}

func (e *ETHSyncing) RequestFormatter() f.ParamsFormatter {
	return nil
}

// ResultFormatter decodes the progress record; false passes through
func (e *ETHSyncing) ResultFormatter() f.Formatter {
	return syncingResult
}
