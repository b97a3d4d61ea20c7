package transformer

import (
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
)

// Field formatters shared by the method tables. Every numeric field requires
// the 0x prefix except the ones explicitly decoded with looseInteger.
var (
	integer      = f.HexToInteger
	looseInteger = f.LooseHexToInteger
	hash32       = f.ToHash32
	address      = f.ToChecksumAddress
	data         = f.HexToBytes
	quantity     = f.IntegerToHex
	hexData      = f.BytesToHex
	block        = f.BlockIdentifier

	hashes    = f.ApplyToArray(hash32)
	integers  = f.ApplyToArray(integer)
	addresses = f.ApplyToArray(address)

	// an address or a list of addresses, as accepted by log filters
	addressOrAddresses = f.ApplyOneOf(
		f.Case{When: f.IsString, Apply: address},
		f.Case{When: f.IsArray, Apply: addresses},
	)
)

var accessListResult = f.ApplyToArray(f.ApplyKeyMap(map[string]f.Formatter{
	"address":     address,
	"storageKeys": hashes,
}))

var transactionResult = f.ApplyKeyMap(map[string]f.Formatter{
	"accessList":           accessListResult,
	"blobVersionedHashes":  hashes,
	"blockHash":            hash32,
	"blockNumber":          integer,
	"chainId":              integer,
	"from":                 address,
	"gas":                  integer,
	"gasPrice":             integer,
	"hash":                 hash32,
	"input":                data,
	"maxFeePerBlobGas":     integer,
	"maxFeePerGas":         integer,
	"maxPriorityFeePerGas": integer,
	"nonce":                integer,
	"r":                    data,
	"s":                    data,
	"to":                   address,
	"transactionIndex":     integer,
	"type":                 integer,
	"v":                    looseInteger,
	"value":                integer,
	"yParity":              looseInteger,
})

var withdrawalResult = f.ApplyKeyMap(map[string]f.Formatter{
	"address":        address,
	"amount":         integer,
	"index":          integer,
	"validatorIndex": integer,
})

// blocks carry either transaction hashes or full transaction objects
var blockTransactions = f.ApplyToArray(f.ApplyOneOf(
	f.Case{When: f.IsString, Apply: hash32},
	f.Case{When: f.IsMap, Apply: transactionResult},
))

var blockResult = f.ApplyKeyMap(map[string]f.Formatter{
	"baseFeePerGas":         integer,
	"blobGasUsed":           integer,
	"difficulty":            integer,
	"excessBlobGas":         integer,
	"extraData":             data,
	"gasLimit":              integer,
	"gasUsed":               integer,
	"hash":                  hash32,
	"logsBloom":             data,
	"miner":                 address,
	"mixHash":               hash32,
	"nonce":                 data,
	"number":                integer,
	"parentBeaconBlockRoot": hash32,
	"parentHash":            hash32,
	"receiptsRoot":          hash32,
	"sha3Uncles":            hash32,
	"size":                  integer,
	"stateRoot":             hash32,
	"timestamp":             integer,
	"totalDifficulty":       integer,
	"transactions":          blockTransactions,
	"transactionsRoot":      hash32,
	"uncles":                hashes,
	"withdrawals":           f.ApplyToArray(withdrawalResult),
	"withdrawalsRoot":       hash32,
})

var logResult = f.ApplyKeyMap(map[string]f.Formatter{
	"address":          address,
	"blockHash":        hash32,
	"blockNumber":      integer,
	"blockTimestamp":   integer,
	"data":             data,
	"logIndex":         integer,
	"topics":           hashes,
	"transactionHash":  hash32,
	"transactionIndex": integer,
})

var logsResult = f.ApplyToArray(logResult)

// block and pending transaction filters return hashes, log filters return logs
var filterChangesResult = f.ApplyToArray(f.ApplyOneOf(
	f.Case{When: f.IsString, Apply: hash32},
	f.Case{When: f.IsMap, Apply: logResult},
))

var receiptResult = f.ApplyKeyMap(map[string]f.Formatter{
	"blobGasPrice":      integer,
	"blobGasUsed":       integer,
	"blockHash":         hash32,
	"blockNumber":       integer,
	"contractAddress":   address,
	"cumulativeGasUsed": integer,
	"effectiveGasPrice": integer,
	"from":              address,
	"gasUsed":           integer,
	"logs":              logsResult,
	"logsBloom":         data,
	"root":              hash32,
	"status":            looseInteger,
	"to":                address,
	"transactionHash":   hash32,
	"transactionIndex":  integer,
	"type":              integer,
})

var transactionParams = f.ApplyKeyMap(map[string]f.Formatter{
	"accessList": f.ApplyToArray(f.ApplyKeyMap(map[string]f.Formatter{
		"address": address,
	})),
	"chainId":              quantity,
	"data":                 hexData,
	"from":                 address,
	"gas":                  quantity,
	"gasPrice":             quantity,
	"input":                hexData,
	"maxFeePerBlobGas":     quantity,
	"maxFeePerGas":         quantity,
	"maxPriorityFeePerGas": quantity,
	"nonce":                quantity,
	"to":                   address,
	"type":                 quantity,
	"value":                quantity,
})

var filterParams = f.ApplyKeyMap(map[string]f.Formatter{
	"address":   addressOrAddresses,
	"fromBlock": block,
	"toBlock":   block,
})

var feeHistoryResult = f.ApplyKeyMap(map[string]f.Formatter{
	"baseFeePerBlobGas": integers,
	"baseFeePerGas":     integers,
	"oldestBlock":       integer,
	"reward":            f.ApplyToArray(integers),
})

var syncingResult = f.ApplyIf(f.IsMap, f.ApplyKeyMap(map[string]f.Formatter{
	"currentBlock":  integer,
	"highestBlock":  integer,
	"knownStates":   integer,
	"pulledStates":  integer,
	"startingBlock": integer,
}))

var proofResult = f.ApplyKeyMap(map[string]f.Formatter{
	"accountProof": f.ApplyToArray(data),
	"address":      address,
	"balance":      integer,
	"codeHash":     hash32,
	"nonce":        integer,
	"storageHash":  hash32,
	"storageProof": f.ApplyToArray(f.ApplyKeyMap(map[string]f.Formatter{
		"proof": f.ApplyToArray(data),
		"value": integer,
	})),
})

var signedTransactionResult = f.ApplyKeyMap(map[string]f.Formatter{
	"raw": data,
	"tx":  transactionResult,
})
