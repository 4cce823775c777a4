package models

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/zkpm/internal/domain"
)

// Wallet is a key pair able to sign transactions.
type Wallet struct {
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}

// NewWallet wraps a private key.
func NewWallet(key *ecdsa.PrivateKey) *Wallet {
	return &Wallet{
		Address:    crypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: key,
	}
}

// WalletFromHex parses a hex private key, with or without 0x prefix.
func WalletFromHex(hexKey string) (*Wallet, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, fmt.Errorf("%w: empty key", domain.ErrInvalidPrivateKey)
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPrivateKey, err)
	}
	return NewWallet(key), nil
}

// PrivateKeyHex returns the 0x prefixed private key.
func (w *Wallet) PrivateKeyHex() string {
	return hexutil.Encode(crypto.FromECDSA(w.PrivateKey))
}
