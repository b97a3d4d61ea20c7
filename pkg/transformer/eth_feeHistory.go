package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHFeeHistory implements MethodFormatter
type ETHFeeHistory struct{}

func (e *ETHFeeHistory) Method() string {
	return eth.MethodFeeHistory
}

// RequestFormatter takes [blockCount, newestBlock, rewardPercentiles?]. The
// percentiles are floats and pass through.
func (e *ETHFeeHistory) RequestFormatter() f.ParamsFormatter {
	return f.ApplyPositional(quantity, block)
}

func (e *ETHFeeHistory) ResultFormatter() f.Formatter {
	return feeHistoryResult
}
