package zksync

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

const maxBytecodeWords = 1<<16 - 1

// ErrInvalidBytecode is returned for bytecode the zkSync VM cannot accept.
var ErrInvalidBytecode = errors.New("invalid bytecode")

// HashBytecode returns the versioned hash the ContractDeployer uses to
// identify a factory dependency: sha256 of the code with the first two bytes
// replaced by the version (1, 0) and the next two by the length in words.
func HashBytecode(bytecode []byte) (common.Hash, error) {
	if len(bytecode) == 0 || len(bytecode)%32 != 0 {
		return common.Hash{}, fmt.Errorf("%w: length %d is not a positive multiple of 32", ErrInvalidBytecode, len(bytecode))
	}
	words := len(bytecode) / 32
	if words > maxBytecodeWords {
		return common.Hash{}, fmt.Errorf("%w: %d words exceeds the limit of %d", ErrInvalidBytecode, words, maxBytecodeWords)
	}
	if words%2 == 0 {
		return common.Hash{}, fmt.Errorf("%w: length in words must be odd, got %d", ErrInvalidBytecode, words)
	}

	sum := sha256.Sum256(bytecode)
	var hash common.Hash
	copy(hash[:], sum[:])
	hash[0] = 1
	hash[1] = 0
	binary.BigEndian.PutUint16(hash[2:4], uint16(words))
	return hash, nil
}
