package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// ETHGetLogs implements MethodFormatter
type ETHGetLogs struct{}

func (e *ETHGetLogs) Method() string {
	return eth.MethodGetLogs
}

func (e *ETHGetLogs) RequestFormatter() f.ParamsFormatter {
	return f.ApplyAtIndex(filterParams, 0)
}

func (e *ETHGetLogs) ResultFormatter() f.Formatter {
	return logsResult
}

// ETHNewFilter implements MethodFormatter
type ETHNewFilter struct{}

func (e *ETHNewFilter) Method() string {
	return eth.MethodNewFilter
}

func (e *ETHNewFilter) RequestFormatter() f.ParamsFormatter {
	return f.ApplyAtIndex(filterParams, 0)
}

// ResultFormatter leaves the filter id as the node issued it
func (e *ETHNewFilter) ResultFormatter() f.Formatter {
	return nil
}

// ETHGetFilterLogs implements MethodFormatter
type ETHGetFilterLogs struct{}

func (e *ETHGetFilterLogs) Method() string {
	return eth.MethodGetFilterLogs
}

func (e *ETHGetFilterLogs) RequestFormatter() f.ParamsFormatter {
	return nil
}

func (e *ETHGetFilterLogs) ResultFormatter() f.Formatter {
	return logsResult
}

// ETHGetFilterChanges implements MethodFormatter
type ETHGetFilterChanges struct{}

func (e *ETHGetFilterChanges) Method() string {
	return eth.MethodGetFilterChanges
}

func (e *ETHGetFilterChanges) RequestFormatter() f.ParamsFormatter {
	return nil
}

func (e *ETHGetFilterChanges) ResultFormatter() f.Formatter {
	return filterChangesResult
}
