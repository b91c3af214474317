package store

import (
	"fmt"
	"strings"
	"sync"

	"mreyes/kuenta/internal/models"
)

// MemoryStore is an in-memory Store used by tests and by components that do
// not need persistence. It mirrors the SQLite semantics, including pattern
// uppercasing and upsert-by-pattern.
type MemoryStore struct {
	mu         sync.RWMutex
	categories []string
	txs        []models.Transaction
	mappings   []models.MerchantMapping
	nextTxID   int64
	nextMapID  int64
}

// NewMemoryStore returns an empty MemoryStore seeded with the default
// category list.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: append([]string(nil), models.DefaultCategories...),
		nextTxID:   1,
		nextMapID:  1,
	}
}

// NewEmptyMemoryStore returns a MemoryStore without seeded categories.
func NewEmptyMemoryStore() *MemoryStore {
	return &MemoryStore{nextTxID: 1, nextMapID: 1}
}

func (m *MemoryStore) Categories() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ensureUncategorized(append([]string(nil), m.categories...)), nil
}

func (m *MemoryStore) AddCategory(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c == name {
			return nil
		}
	}
	m.categories = append(m.categories, name)
	return nil
}

func (m *MemoryStore) RenameCategory(oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.categories {
		if c == oldName {
			m.categories[i] = newName
			for j := range m.txs {
				if m.txs[j].Category == oldName {
					m.txs[j].Category = newName
				}
			}
			return nil
		}
	}
	return fmt.Errorf("category %q not found", oldName)
}

func (m *MemoryStore) DeleteCategory(name string) error {
	if strings.EqualFold(name, models.CategoryUncategorized) {
		return fmt.Errorf("the %s category cannot be deleted", models.CategoryUncategorized)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.categories {
		if c == name {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			for j := range m.txs {
				if m.txs[j].Category == name {
					m.txs[j].Category = models.CategoryUncategorized
				}
			}
			return nil
		}
	}
	return fmt.Errorf("category %q not found", name)
}

func (m *MemoryStore) Transactions() ([]models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Transaction(nil), m.txs...), nil
}

func (m *MemoryStore) AddTransaction(tx models.Transaction) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx.ID = m.nextTxID
	m.nextTxID++
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now()
	}
	m.txs = append(m.txs, tx)
	return tx.ID, nil
}

func (m *MemoryStore) UpdateTransactionCategory(id int64, category string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.txs {
		if m.txs[i].ID == id {
			m.txs[i].Category = category
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) Mappings() ([]models.MerchantMapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.MerchantMapping(nil), m.mappings...), nil
}

func (m *MemoryStore) UpsertMapping(pattern, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pattern = strings.ToUpper(pattern)
	for i := range m.mappings {
		if m.mappings[i].Pattern == pattern {
			m.mappings[i].Category = category
			return nil
		}
	}
	m.mappings = append(m.mappings, models.MerchantMapping{
		ID:        m.nextMapID,
		Pattern:   pattern,
		Category:  category,
		CreatedAt: now(),
		LastUsed:  now(),
	})
	m.nextMapID++
	return nil
}

func (m *MemoryStore) DeleteMapping(pattern string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pattern = strings.ToUpper(pattern)
	for i := range m.mappings {
		if m.mappings[i].Pattern == pattern {
			m.mappings = append(m.mappings[:i], m.mappings[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) RenameMapping(oldPattern, newPattern, category string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	oldPattern = strings.ToUpper(oldPattern)
	for i := range m.mappings {
		if m.mappings[i].Pattern == oldPattern {
			m.mappings[i].Pattern = strings.ToUpper(newPattern)
			m.mappings[i].Category = category
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) TouchMapping(pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pattern = strings.ToUpper(pattern)
	for i := range m.mappings {
		if m.mappings[i].Pattern == pattern {
			m.mappings[i].LastUsed = now()
		}
	}
	return nil
}
