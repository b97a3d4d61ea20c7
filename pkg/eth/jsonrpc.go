package eth

import (
	"encoding/json"
	"fmt"
)

const RPCVersion = "2.0"

// Error codes from https://www.jsonrpc.org/specification#error_object
const (
	ErrCodeParse          = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
	ErrCodeServer         = -32000
)

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	ID      json.RawMessage `json:"id"`
	Params  json.RawMessage `json:"params"`
}

type JSONRPCResult struct {
	JSONRPC   string          `json:"jsonrpc"`
	RawResult json.RawMessage `json:"result,omitempty"`
	Error     *JSONRPCError   `json:"error,omitempty"`
	ID        json.RawMessage `json:"id"`
}

// JSONRPCError is the error object reported by a node. It travels through the
// error formatters as data and only becomes a Go error at the call site.
type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (err *JSONRPCError) Error() string {
	if err.Data != nil {
		return fmt.Sprintf("jsonrpc error %d: %s (%v)", err.Code, err.Message, err.Data)
	}
	return fmt.Sprintf("jsonrpc error %d: %s", err.Code, err.Message)
}

// Copy returns a shallow copy so error formatters never mutate a payload
// another stage still holds.
func (err *JSONRPCError) Copy() *JSONRPCError {
	if err == nil {
		return nil
	}
	c := *err
	return &c
}

func NewJSONRPCError(code int, message string, data interface{}) *JSONRPCError {
	return &JSONRPCError{Code: code, Message: message, Data: data}
}

func NewMethodNotFoundError(method string) *JSONRPCError {
	return NewJSONRPCError(ErrCodeMethodNotFound, fmt.Sprintf("The method %s does not exist/is not available", method), nil)
}

func NewInvalidParamsError(message string) *JSONRPCError {
	return NewJSONRPCError(ErrCodeInvalidParams, message, nil)
}

func NewCallbackError(message string) *JSONRPCError {
	return NewJSONRPCError(ErrCodeServer, message, nil)
}
