package eth

// Block tags accepted wherever a block identifier is expected.
const (
	BlockTagLatest    = "latest"
	BlockTagEarliest  = "earliest"
	BlockTagPending   = "pending"
	BlockTagSafe      = "safe"
	BlockTagFinalized = "finalized"
)

var BlockTags = []string{BlockTagLatest, BlockTagEarliest, BlockTagPending, BlockTagSafe, BlockTagFinalized}

func IsBlockTag(s string) bool {
	for _, tag := range BlockTags {
		if tag == s {
			return true
		}
	}
	return false
}

// Method names, see https://ethereum.org/en/developers/docs/apis/json-rpc/
const (
	MethodAccounts                            = "eth_accounts"
	MethodBlobBaseFee                         = "eth_blobBaseFee"
	MethodBlockNumber                         = "eth_blockNumber"
	MethodCall                                = "eth_call"
	MethodChainId                             = "eth_chainId"
	MethodCoinbase                            = "eth_coinbase"
	MethodEstimateGas                         = "eth_estimateGas"
	MethodFeeHistory                          = "eth_feeHistory"
	MethodGasPrice                            = "eth_gasPrice"
	MethodGetBalance                          = "eth_getBalance"
	MethodGetBlockByHash                      = "eth_getBlockByHash"
	MethodGetBlockByNumber                    = "eth_getBlockByNumber"
	MethodGetBlockTransactionCountByHash      = "eth_getBlockTransactionCountByHash"
	MethodGetBlockTransactionCountByNumber    = "eth_getBlockTransactionCountByNumber"
	MethodGetCode                             = "eth_getCode"
	MethodGetFilterChanges                    = "eth_getFilterChanges"
	MethodGetFilterLogs                       = "eth_getFilterLogs"
	MethodGetLogs                             = "eth_getLogs"
	MethodGetProof                            = "eth_getProof"
	MethodGetRawTransactionByHash             = "eth_getRawTransactionByHash"
	MethodGetStorageAt                        = "eth_getStorageAt"
	MethodGetTransactionByBlockHashAndIndex   = "eth_getTransactionByBlockHashAndIndex"
	MethodGetTransactionByBlockNumberAndIndex = "eth_getTransactionByBlockNumberAndIndex"
	MethodGetTransactionByHash                = "eth_getTransactionByHash"
	MethodGetTransactionCount                 = "eth_getTransactionCount"
	MethodGetTransactionReceipt               = "eth_getTransactionReceipt"
	MethodGetUncleByBlockHashAndIndex         = "eth_getUncleByBlockHashAndIndex"
	MethodGetUncleByBlockNumberAndIndex       = "eth_getUncleByBlockNumberAndIndex"
	MethodGetUncleCountByBlockHash            = "eth_getUncleCountByBlockHash"
	MethodGetUncleCountByBlockNumber          = "eth_getUncleCountByBlockNumber"
	MethodMaxPriorityFeePerGas                = "eth_maxPriorityFeePerGas"
	MethodNewBlockFilter                      = "eth_newBlockFilter"
	MethodNewFilter                           = "eth_newFilter"
	MethodSendRawTransaction                  = "eth_sendRawTransaction"
	MethodSendTransaction                     = "eth_sendTransaction"
	MethodSign                                = "eth_sign"
	MethodSignTransaction                     = "eth_signTransaction"
	MethodSyncing                             = "eth_syncing"
	MethodUninstallFilter                     = "eth_uninstallFilter"
	MethodNetListening                        = "net_listening"
	MethodNetPeerCount                        = "net_peerCount"
	MethodNetVersion                          = "net_version"
	MethodWeb3ClientVersion                   = "web3_clientVersion"
)
