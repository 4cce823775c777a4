package zksync

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

var eip712Types = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
	},
	"Transaction": {
		{Name: "txType", Type: "uint256"},
		{Name: "from", Type: "uint256"},
		{Name: "to", Type: "uint256"},
		{Name: "gasLimit", Type: "uint256"},
		{Name: "gasPerPubdataByteLimit", Type: "uint256"},
		{Name: "maxFeePerGas", Type: "uint256"},
		{Name: "maxPriorityFeePerGas", Type: "uint256"},
		{Name: "paymaster", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "value", Type: "uint256"},
		{Name: "data", Type: "bytes"},
		{Name: "factoryDeps", Type: "bytes32[]"},
		{Name: "paymasterInput", Type: "bytes"},
	},
}

// Transaction712 is a zkSync EIP-712 transaction. The signature travels in
// CustomSignature rather than in v/r/s.
type Transaction712 struct {
	Nonce         uint64
	GasTipCap     *big.Int
	GasFeeCap     *big.Int
	Gas           uint64
	To            *common.Address
	Value         *big.Int
	Data          []byte
	ChainID       *big.Int
	From          common.Address
	GasPerPubdata *big.Int

	FactoryDeps     [][]byte
	CustomSignature []byte
	PaymasterParams *PaymasterParams
}

// TypedData returns the EIP-712 payload the sender signs.
func (tx *Transaction712) TypedData() (apitypes.TypedData, error) {
	if tx.ChainID == nil {
		return apitypes.TypedData{}, fmt.Errorf("chain ID is required")
	}

	// array elements are hex strings so apitypes encodes them as bytes32
	// rather than recursing into the byte slice
	deps := make([]interface{}, 0, len(tx.FactoryDeps))
	for i, dep := range tx.FactoryDeps {
		hash, err := HashBytecode(dep)
		if err != nil {
			return apitypes.TypedData{}, fmt.Errorf("factory dependency %d: %w", i, err)
		}
		deps = append(deps, hash.Hex())
	}

	var (
		paymaster      common.Address
		paymasterInput = []byte{}
	)
	if tx.PaymasterParams != nil {
		paymaster = tx.PaymasterParams.Paymaster
		paymasterInput = tx.PaymasterParams.PaymasterInput
	}

	var to common.Address
	if tx.To != nil {
		to = *tx.To
	}

	data := tx.Data
	if data == nil {
		data = []byte{}
	}

	return apitypes.TypedData{
		Types:       eip712Types,
		PrimaryType: "Transaction",
		Domain: apitypes.TypedDataDomain{
			Name:    "zkSync",
			Version: "2",
			ChainId: (*math.HexOrDecimal256)(new(big.Int).Set(tx.ChainID)),
		},
		Message: apitypes.TypedDataMessage{
			"txType":                 uint256Value(big.NewInt(EIP712TxType)),
			"from":                   addressValue(tx.From),
			"to":                     addressValue(to),
			"gasLimit":               uint256Value(new(big.Int).SetUint64(tx.Gas)),
			"gasPerPubdataByteLimit": uint256Value(tx.gasPerPubdata()),
			"maxFeePerGas":           uint256Value(tx.GasFeeCap),
			"maxPriorityFeePerGas":   uint256Value(tx.GasTipCap),
			"paymaster":              addressValue(paymaster),
			"nonce":                  uint256Value(new(big.Int).SetUint64(tx.Nonce)),
			"value":                  uint256Value(tx.Value),
			"data":                   hexutil.Bytes(data),
			"factoryDeps":            deps,
			"paymasterInput":         hexutil.Bytes(paymasterInput),
		},
	}, nil
}

// SigningHash returns the EIP-712 digest of the transaction.
func (tx *Transaction712) SigningHash() (common.Hash, error) {
	typed, err := tx.TypedData()
	if err != nil {
		return common.Hash{}, err
	}
	digest, _, err := apitypes.TypedDataAndHash(typed)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash typed data: %w", err)
	}
	return common.BytesToHash(digest), nil
}

// Sign signs the transaction with key and stores the 65 byte signature
// (v in {27, 28}) as the custom signature.
func (tx *Transaction712) Sign(key *ecdsa.PrivateKey) error {
	if from := crypto.PubkeyToAddress(key.PublicKey); from != tx.From {
		return fmt.Errorf("signing key belongs to %s, transaction is from %s", from.Hex(), tx.From.Hex())
	}
	hash, err := tx.SigningHash()
	if err != nil {
		return err
	}
	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	tx.CustomSignature = sig
	return nil
}

// Sender recovers the address that produced the custom signature.
func (tx *Transaction712) Sender() (common.Address, error) {
	if len(tx.CustomSignature) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length %d", len(tx.CustomSignature))
	}
	hash, err := tx.SigningHash()
	if err != nil {
		return common.Address{}, err
	}
	sig := make([]byte, crypto.SignatureLength)
	copy(sig, tx.CustomSignature)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// MarshalBinary returns the raw transaction: 0x71 followed by the RLP list
// [nonce, tip, feeCap, gas, to, value, data, chainId, "", "", chainId, from,
// gasPerPubdata, factoryDeps, customSignature, paymasterParams].
func (tx *Transaction712) MarshalBinary() ([]byte, error) {
	if tx.ChainID == nil {
		return nil, fmt.Errorf("chain ID is required")
	}

	var to interface{} = []byte{}
	if tx.To != nil {
		to = *tx.To
	}

	deps := tx.FactoryDeps
	if deps == nil {
		deps = [][]byte{}
	}

	var paymaster interface{} = []interface{}{}
	if tx.PaymasterParams != nil {
		paymaster = []interface{}{tx.PaymasterParams.Paymaster, tx.PaymasterParams.PaymasterInput}
	}

	fields := []interface{}{
		tx.Nonce,
		bigOrZero(tx.GasTipCap),
		bigOrZero(tx.GasFeeCap),
		tx.Gas,
		to,
		bigOrZero(tx.Value),
		bytesOrEmpty(tx.Data),
		tx.ChainID,
		[]byte{},
		[]byte{},
		tx.ChainID,
		tx.From,
		tx.gasPerPubdata(),
		deps,
		bytesOrEmpty(tx.CustomSignature),
		paymaster,
	}

	payload, err := rlp.EncodeToBytes(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to rlp encode transaction: %w", err)
	}
	return append([]byte{EIP712TxType}, payload...), nil
}

func (tx *Transaction712) gasPerPubdata() *big.Int {
	if tx.GasPerPubdata == nil {
		return big.NewInt(DefaultGasPerPubdataLimit)
	}
	return tx.GasPerPubdata
}

func uint256Value(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(bigOrZero(v))
}

func addressValue(addr common.Address) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(new(big.Int).SetBytes(addr.Bytes()))
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

func bytesOrEmpty(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
