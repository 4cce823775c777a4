package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/internal/domain/models"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// bytecodeField holds either a hex string (hardhat) or {"object": "0x.."} (solc, foundry)
type bytecodeField string

func (b *bytecodeField) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*b = bytecodeField(obj.Object)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = bytecodeField(s)
	return nil
}

// flatArtifact covers hardhat and foundry single-contract artifacts
type flatArtifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     bytecodeField   `json:"bytecode"`
	Metadata     struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

// solcContract is one entry of solc/zksolc combined output
type solcContract struct {
	ABI json.RawMessage `json:"abi"`
	EVM struct {
		Bytecode bytecodeField `json:"bytecode"`
	} `json:"evm"`
}

// Loader reads contract artifacts from disk and caches them by path
type Loader struct {
	log   *slog.Logger
	cache map[string]*models.Artifact
	mu    sync.RWMutex
}

// NewLoader creates a new artifact loader
func NewLoader(log *slog.Logger) *Loader {
	return &Loader{
		log:   log,
		cache: make(map[string]*models.Artifact),
	}
}

// Load reads the artifact at path
func (l *Loader) Load(ctx context.Context, path string) (*models.Artifact, error) {
	l.mu.RLock()
	if artifact, ok := l.cache[path]; ok {
		l.mu.RUnlock()
		return artifact, nil
	}
	l.mu.RUnlock()

	data, err := os.ReadFile(path) //nolint:gosec // configured artifact path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	artifact, err := parseArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	artifact.Path = path
	if artifact.Name == "" {
		artifact.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	l.log.Debug("loaded artifact", "name", artifact.Name, "path", path, "bytecode_size", len(artifact.Bytecode))

	l.mu.Lock()
	l.cache[path] = artifact
	l.mu.Unlock()

	return artifact, nil
}

func parseArtifact(data []byte) (*models.Artifact, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}

	if _, flat := top["abi"]; flat {
		var a flatArtifact
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, err
		}
		name := a.ContractName
		for _, contract := range a.Metadata.Settings.CompilationTarget {
			if name == "" {
				name = contract
			}
		}
		return build(name, a.ABI, a.Bytecode)
	}

	// Combined output keyed by contract name; the first deployable entry wins
	names := make([]string, 0, len(top))
	for name := range top {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var c solcContract
		if err := json.Unmarshal(top[name], &c); err != nil {
			continue
		}
		if len(c.ABI) == 0 || c.EVM.Bytecode == "" || c.EVM.Bytecode == "0x" {
			continue
		}
		return build(name, c.ABI, c.EVM.Bytecode)
	}
	return nil, errors.New("no contract with ABI and bytecode found")
}

func build(name string, rawABI json.RawMessage, code bytecodeField) (*models.Artifact, error) {
	parsed, err := abi.JSON(bytes.NewReader(rawABI))
	if err != nil {
		return nil, fmt.Errorf("invalid ABI: %w", err)
	}

	hexCode := string(code)
	if hexCode == "" || hexCode == "0x" {
		return nil, errors.New("artifact has no bytecode")
	}
	if !strings.HasPrefix(hexCode, "0x") {
		hexCode = "0x" + hexCode
	}
	bytecode, err := hexutil.Decode(hexCode)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}

	return &models.Artifact{
		Name:     name,
		ABI:      parsed,
		Bytecode: bytecode,
	}, nil
}

// Ensure Loader implements ArtifactLoader
var _ usecase.ArtifactLoader = (*Loader)(nil)
