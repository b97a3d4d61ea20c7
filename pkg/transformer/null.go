package transformer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// notFound reports a missing block or transaction, naming the lookup that
// found nothing.
func notFound(sentinel error) f.NullFormatter {
	return func(params f.Params) (interface{}, error) {
		if len(params) == 0 {
			return nil, sentinel
		}
		args := make([]string, len(params))
		for i, p := range params {
			args[i] = fmt.Sprint(p)
		}
		return nil, errors.Wrap(sentinel, strings.Join(args, ", "))
	}
}

var (
	blockNotFound       = notFound(f.ErrBlockNotFound)
	transactionNotFound = notFound(f.ErrTransactionNotFound)
)
