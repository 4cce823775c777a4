package keys

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/zkpm/internal/domain/models"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// Generator creates random secp256k1 wallets
type Generator struct{}

// NewGenerator creates a new key generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a wallet backed by a fresh private key
func (g *Generator) Generate() (*models.Wallet, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return models.NewWallet(key), nil
}

var _ usecase.KeyGenerator = (*Generator)(nil)
