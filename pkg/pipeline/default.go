package pipeline

import (
	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/transformer"
)

// DefaultStageName names the stage holding the default method formatters.
const DefaultStageName = "default"

// NewDefault creates a pipeline with the default method formatters installed.
// Stages added later sit between the defaults and the node; inject at layer 0
// to see the caller's values before the defaults do.
func NewDefault(transport eth.Transport, opts ...Option) (*Pipeline, error) {
	p, err := New(transport, opts...)
	if err != nil {
		return nil, err
	}

	defaults, err := transformer.DefaultMiddleware()
	if err != nil {
		return nil, errors.Wrap(err, "default middleware")
	}
	if err := p.Add(DefaultStageName, defaults); err != nil {
		return nil, err
	}

	return p, nil
}
