package internal

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/transport"
)

//copy of transport.Doer interface
type Doer interface {
	Do(*http.Request) (*http.Response, error)
	AddRawResponse(method string, rawResponse []byte)
	AddResponse(method string, responseResult interface{}) error
	AddError(method string, responseError *eth.JSONRPCError) error
}

func NewDoerMappedMock() *DoerMappedMock {
	return &DoerMappedMock{
		Responses: make(map[string][][]byte),
	}
}

// DoerMappedMock answers requests from canned responses queued per method.
// The last response of a method is repeated once the queue is drained.
type DoerMappedMock struct {
	mutex     sync.Mutex
	Responses map[string][][]byte
	Requests  []*eth.JSONRPCRequest
}

func (d *DoerMappedMock) Do(request *http.Request) (*http.Response, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	requestJSON, err := parseRequestFromBody(request)
	if err != nil {
		return nil, err
	}
	d.Requests = append(d.Requests, requestJSON)

	body := d.popResponse(requestJSON.Method)
	status := http.StatusOK
	if body == nil {
		status = http.StatusNotFound
		body = []byte{}
	}

	return &http.Response{
		StatusCode: status,
		Body:       ioutil.NopCloser(bytes.NewReader(body)),
		Request:    request,
	}, nil
}

// LastRequest returns the last request received for method, or nil.
func (d *DoerMappedMock) LastRequest(method string) *eth.JSONRPCRequest {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	for i := len(d.Requests) - 1; i >= 0; i-- {
		if d.Requests[i].Method == method {
			return d.Requests[i]
		}
	}
	return nil
}

func (d *DoerMappedMock) pushResponse(method string, responseRaw []byte) {
	d.Responses[method] = append(d.Responses[method], responseRaw)
}

func (d *DoerMappedMock) popResponse(method string) []byte {
	responses := d.Responses[method]
	switch len(responses) {
	case 0:
		return nil
	case 1:
		return responses[0]
	default:
		d.Responses[method] = responses[1:]
		return responses[0]
	}
}

func (d *DoerMappedMock) AddRawResponse(method string, rawResponse []byte) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.pushResponse(method, rawResponse)
}

func (d *DoerMappedMock) AddResponse(method string, responseResult interface{}) error {
	responseRaw, err := PrepareRawResponse(responseResult, nil)
	if err != nil {
		return err
	}
	d.AddRawResponse(method, responseRaw)
	return nil
}

func (d *DoerMappedMock) AddError(method string, responseError *eth.JSONRPCError) error {
	responseRaw, err := PrepareRawResponse(nil, responseError)
	if err != nil {
		return err
	}
	d.AddRawResponse(method, responseRaw)
	return nil
}

// PrepareRawResponse builds a JSON-RPC response body. A []byte result is
// embedded as raw JSON.
func PrepareRawResponse(responseResult interface{}, responseError *eth.JSONRPCError) ([]byte, error) {
	var responseResultRaw json.RawMessage
	if responseResult != nil {
		var alreadyByteArray bool
		responseResultRaw, alreadyByteArray = responseResult.([]byte)
		if !alreadyByteArray {
			var err error
			responseResultRaw, err = json.Marshal(responseResult)
			if err != nil {
				return nil, err
			}
		}
	} else if responseError == nil {
		responseResultRaw = json.RawMessage("null")
	}

	return json.Marshal(&eth.JSONRPCResult{
		JSONRPC:   eth.RPCVersion,
		RawResult: responseResultRaw,
		Error:     responseError,
		ID:        json.RawMessage("1"),
	})
}

func parseRequestFromBody(request *http.Request) (*eth.JSONRPCRequest, error) {
	requestJSON := eth.JSONRPCRequest{}
	requestBody, err := ioutil.ReadAll(request.Body)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(requestBody, &requestJSON)
	if err != nil {
		return nil, err
	}

	return &requestJSON, nil
}

func CreateMockedClient(doerInstance Doer, opts ...transport.Option) (*transport.Client, error) {
	logger := log.NewLogfmtLogger(os.Stdout)
	if !isDebugEnvironmentVariableSet() {
		logger = level.NewFilter(logger, level.AllowWarn())
	}
	opts = append([]transport.Option{
		transport.SetDoer(doerInstance),
		transport.SetDebug(isDebugEnvironmentVariableSet()),
		transport.SetLogger(logger),
	}, opts...)
	return transport.NewClient("http://mocked:8545", opts...)
}

func isDebugEnvironmentVariableSet() bool {
	return strings.ToLower(os.Getenv("DEBUG")) == "true"
}

func MustMarshalIndent(v interface{}, prefix, indent string) []byte {
	res, err := json.MarshalIndent(v, prefix, indent)
	if err != nil {
		panic(err)
	}
	return res
}

// ParamsOf decodes the params of a recorded request.
func ParamsOf(req *eth.JSONRPCRequest) []interface{} {
	var params []interface{}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		panic(err)
	}
	return params
}

var (
	BlockNumberHex = "0xf8f"
	BlockHash      = "0xbba11e1bacc69ba535d478cf1f2e542da3735a517b0b8eebaf7e6bb25eeb48c5"

	TransactionResponse = map[string]interface{}{
		"blockHash":        BlockHash,
		"blockNumber":      BlockNumberHex,
		"transactionIndex": "0x2",
		"hash":             "0x11e97fa5877c5df349934bafc02da6218038a427e8ed081f048626fa6eb523f5",
		"nonce":            "0x0",
		"value":            "0xde0b6b3a7640000",
		"input":            "0x",
		"from":             "0x7926223070547d2d15b2ef5e7383e541c338ffe9",
		"to":               "0x0000000000000000000000000000000000000000",
		"gas":              "0x5208",
		"gasPrice":         "0x3b9aca00",
		"v":                "0x25",
		"r":                "0x1b5e176d927f8e9ab405058b2d2457392da3e20f328b16ddabcebc33eaac5fea",
		"s":                "0x4ba69724e8f69de52f0125ad8b3c5c2cef33019bac3249e2c0a2192766d1721c",
	}

	BlockResponse = map[string]interface{}{
		"number":           BlockNumberHex,
		"hash":             BlockHash,
		"parentHash":       "0x6d7d56af09383301e1bb32a97d4a5c0661d62302c06a778487d919b7115543be",
		"miner":            "0x0000000000000000000000000000000000000000",
		"size":             "0x26c",
		"nonce":            "0x0000000000000000",
		"transactionsRoot": "0x0b5f03dc9d456c63c587cc554b70c1232449be43d1df62bc25a493b04de90334",
		"receiptsRoot":     "0x0b5f03dc9d456c63c587cc554b70c1232449be43d1df62bc25a493b04de90334",
		"stateRoot":        "0x3e49216e58f1ad9e6823b5095dc532f0a6cc44943d36ff4a7b1aa474e172d672",
		"difficulty":       "0x4",
		"totalDifficulty":  "0x4",
		"extraData":        "0x",
		"gasLimit":         "0x1c9c380",
		"gasUsed":          "0x0",
		"timestamp":        "0x5b95ebd0",
		"transactions": []interface{}{
			"0x3208dc44733cbfa11654ad5651305428de473ef1e61a1ec07b0c1a5f4843be91",
			"0x8fcd819194cce6a8454b2bec334d3448df4f097e9cdc36707bfd569900268950",
		},
		"uncles": []string{},
	}
)
