package eth

import "context"

type State int

const (
	StateSuccess State = iota
	StateNull
	StateError
)

func (s State) String() string {
	switch s {
	case StateSuccess:
		return "success"
	case StateNull:
		return "null"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the terminal state of one call: a result, an absent result or a
// node-reported error.
type Outcome struct {
	Result interface{}
	Error  *JSONRPCError
}

func (o *Outcome) State() State {
	if o.Error != nil {
		return StateError
	}
	if o.Result == nil {
		return StateNull
	}
	return StateSuccess
}

func NewResultOutcome(result interface{}) *Outcome {
	return &Outcome{Result: result}
}

func NewErrorOutcome(err *JSONRPCError) *Outcome {
	return &Outcome{Error: err}
}

// Transport sends already formatted params to a node and returns the raw
// decoded outcome. A non-nil error means no outcome was received.
type Transport interface {
	Send(ctx context.Context, method string, params []interface{}) (*Outcome, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, method string, params []interface{}) (*Outcome, error)

func (f TransportFunc) Send(ctx context.Context, method string, params []interface{}) (*Outcome, error) {
	return f(ctx, method, params)
}
