package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/formatting"
)

type Option func(*Transformer) error

// MethodFormatter describes how one RPC method is converted between Go values
// and the wire. Either formatter may be nil when that leg needs no work.
type MethodFormatter interface {
	Method() string
	RequestFormatter() formatting.ParamsFormatter
	ResultFormatter() formatting.Formatter
}

// NullResultFormatter is implemented by method formatters that handle an
// absent result, typically by reporting what was not found.
type NullResultFormatter interface {
	NullFormatter() formatting.NullFormatter
}
