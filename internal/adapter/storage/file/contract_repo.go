package file

import (
	"context"
	"path/filepath"
	"sort"
	"sync"

	"rangerblock/internal/core/domain"
)

// ContractFile holds every transfer contract keyed by id.
const ContractFile = "contracts.json"

// ContractRepository implements ports.ContractRepository on a single JSON file.
type ContractRepository struct {
	path string
	mu   sync.Mutex
}

// NewContractRepository stores contracts under dir.
func NewContractRepository(dir string) *ContractRepository {
	return &ContractRepository{path: filepath.Join(dir, ContractFile)}
}

// Save inserts or replaces a contract.
func (r *ContractRepository) Save(_ context.Context, contract *domain.TransferContract) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return err
	}
	all[contract.ContractID] = contract
	return writeJSON(r.path, all)
}

// Get returns nil, nil when the contract does not exist.
func (r *ContractRepository) Get(_ context.Context, contractID string) (*domain.TransferContract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return nil, err
	}
	return all[contractID], nil
}

// List returns every contract, newest first.
func (r *ContractRepository) List(_ context.Context) ([]domain.TransferContract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return nil, err
	}
	out := make([]domain.TransferContract, 0, len(all))
	for _, c := range all {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ContractRepository) readAll() (map[string]*domain.TransferContract, error) {
	all := make(map[string]*domain.TransferContract)
	if _, err := readJSON(r.path, &all); err != nil {
		return nil, err
	}
	return all, nil
}
