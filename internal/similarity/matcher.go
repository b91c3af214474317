package similarity

import (
	"math"
	"sort"

	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/models"
	"mreyes/kuenta/internal/store"
)

// DefaultThreshold is the token-set score below which two descriptions
// are not considered the same merchant.
const DefaultThreshold = 0.6

// Matcher finds persisted transactions whose descriptions resemble a
// query and recategorizes them in bulk.
type Matcher struct {
	transactions store.TransactionStore
	logger       logging.Logger
}

// NewMatcher returns a Matcher over the given transaction store.
func NewMatcher(transactions store.TransactionStore, logger logging.Logger) *Matcher {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Matcher{transactions: transactions, logger: logger}
}

// FindSimilar returns transactions whose description scores at least
// threshold against query, best match first. excludeID skips one
// transaction, typically the row the query came from; pass 0 to skip
// nothing. Scores are rounded to two decimals.
func (m *Matcher) FindSimilar(query string, excludeID int64, threshold float64) ([]models.ScoredTransaction, error) {
	all, err := m.transactions.Transactions()
	if err != nil {
		return nil, err
	}

	var similar []models.ScoredTransaction
	for _, t := range all {
		if excludeID != 0 && t.ID == excludeID {
			continue
		}
		score := math.Round(TokenSetRatio(query, t.Description)*100) / 100
		if score >= threshold {
			similar = append(similar, models.ScoredTransaction{Transaction: t, Score: score})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool { return similar[i].Score > similar[j].Score })
	return similar, nil
}

// BulkRecategorize assigns newCategory to every transaction whose
// description scores at least threshold against pattern and returns the
// number of rows changed. Updates are applied row by row; rows updated
// before a failure stay updated.
func (m *Matcher) BulkRecategorize(pattern, newCategory string, threshold float64) (int, error) {
	all, err := m.transactions.Transactions()
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, t := range all {
		if TokenSetRatio(pattern, t.Description) < threshold {
			continue
		}
		ok, err := m.transactions.UpdateTransactionCategory(t.ID, newCategory)
		if err != nil {
			return updated, err
		}
		if ok {
			updated++
		}
	}

	m.logger.WithFields(
		logging.Field{Key: "pattern", Value: pattern},
		logging.Field{Key: "category", Value: newCategory},
		logging.Field{Key: "updated", Value: updated},
	).Info("Bulk recategorization finished")
	return updated, nil
}
