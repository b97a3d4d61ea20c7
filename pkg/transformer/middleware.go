package transformer

import (
	"github.com/revolutionchain/ethfmt/pkg/middleware"
)

// DefaultMiddleware returns the middleware applying the default method
// formatters.
func DefaultMiddleware(opts ...middleware.Option) (*middleware.FormattingMiddleware, error) {
	return middleware.FromFormatterSet(DefaultFormatterSet(), opts...)
}
