// Package learner mines historical transactions for merchants that keep
// receiving the same category and turns them into merchant mappings, so
// future statements categorize themselves.
package learner

import (
	"sort"
	"strings"

	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/models"
	"mreyes/kuenta/internal/store"
)

const (
	// DefaultMinFrequency is how often a merchant must recur before a
	// mapping is suggested for it.
	DefaultMinFrequency = 3
	// DefaultConfidence is how dominant the top category must be among a
	// merchant's transactions, as a fraction.
	DefaultConfidence = 0.8
)

// merchantStopWords never carry merchant identity and are stripped before
// building a merchant key.
var merchantStopWords = map[string]struct{}{
	"the": {}, "at": {}, "from": {}, "in": {}, "on": {}, "a": {},
	"an": {}, "and": {}, "or": {}, "by": {}, "to": {}, "for": {},
	"with": {}, "of": {}, "via": {}, "through": {},
	"transaction": {}, "payment": {},
}

// Learner derives mapping suggestions from the transaction history.
type Learner struct {
	transactions store.TransactionStore
	mappings     store.MappingStore
	logger       logging.Logger
}

// New returns a Learner over the given stores.
func New(transactions store.TransactionStore, mappings store.MappingStore, logger logging.Logger) *Learner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Learner{
		transactions: transactions,
		mappings:     mappings,
		logger:       logger,
	}
}

// ExtractMerchant reduces a transaction description to a stable merchant
// key: stop words and tokens of two characters or fewer are dropped, the
// first four remaining tokens are joined and uppercased. A description
// that yields no tokens comes back uppercased whole.
func ExtractMerchant(description string) string {
	words := strings.Fields(strings.ToLower(description))
	kept := make([]string, 0, 4)
	for _, w := range words {
		if _, stop := merchantStopWords[w]; stop {
			continue
		}
		if len(w) <= 2 {
			continue
		}
		kept = append(kept, w)
		if len(kept) == 4 {
			break
		}
	}
	if len(kept) == 0 {
		return strings.ToUpper(description)
	}
	return strings.ToUpper(strings.Join(kept, " "))
}

// SuggestMappings analyzes the transaction history and proposes merchant
// mappings for merchants seen at least minFrequency times whose dominant
// category accounts for at least confThreshold of their transactions.
// Merchants that already have a mapping, uncategorized rows, and merchant
// keys shorter than three characters are ignored. Results sort by
// frequency descending, merchant ascending on ties.
func (l *Learner) SuggestMappings(minFrequency int, confThreshold float64) ([]models.CategorySuggestion, error) {
	transactions, err := l.transactions.Transactions()
	if err != nil {
		return nil, err
	}
	existing, err := l.mappings.Mappings()
	if err != nil {
		return nil, err
	}

	covered := make(map[string]struct{}, len(existing))
	for _, m := range existing {
		covered[m.Pattern] = struct{}{}
	}

	tallies := make(map[string]map[string]int)
	for _, t := range transactions {
		merchant := ExtractMerchant(t.Description)
		if _, ok := covered[merchant]; ok {
			continue
		}
		if t.Category == models.CategoryUncategorized {
			continue
		}
		if tallies[merchant] == nil {
			tallies[merchant] = make(map[string]int)
		}
		tallies[merchant][t.Category]++
	}

	var suggestions []models.CategorySuggestion
	for merchant, categories := range tallies {
		if len(merchant) < 3 {
			continue
		}
		total := 0
		for _, count := range categories {
			total += count
		}
		if total < minFrequency {
			continue
		}

		bestCategory, bestCount := "", 0
		for category, count := range categories {
			if count > bestCount || (count == bestCount && category < bestCategory) {
				bestCategory, bestCount = category, count
			}
		}

		confidence := float64(bestCount) / float64(total)
		if confidence < confThreshold {
			continue
		}
		suggestions = append(suggestions, models.CategorySuggestion{
			Merchant:   merchant,
			Category:   bestCategory,
			Frequency:  total,
			Confidence: confidence,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Frequency != suggestions[j].Frequency {
			return suggestions[i].Frequency > suggestions[j].Frequency
		}
		return suggestions[i].Merchant < suggestions[j].Merchant
	})
	return suggestions, nil
}

// AutoApply persists every current suggestion as a merchant mapping and
// reports how many were added and how many failed.
func (l *Learner) AutoApply(minFrequency int, confThreshold float64) (models.ApplyResult, error) {
	suggestions, err := l.SuggestMappings(minFrequency, confThreshold)
	if err != nil {
		return models.ApplyResult{}, err
	}

	var result models.ApplyResult
	for _, s := range suggestions {
		if err := l.mappings.UpsertMapping(s.Merchant, s.Category); err != nil {
			l.logger.WithError(err).WithField("merchant", s.Merchant).Warn("Failed to add merchant mapping")
			result.Failed++
			continue
		}
		result.Added++
	}
	return result, nil
}

// Stats summarizes learning progress: categorized counts, mapping count,
// pending suggestion count, and the share of transactions whose merchant
// key matches an existing mapping pattern exactly.
func (l *Learner) Stats() (models.LearningStats, error) {
	transactions, err := l.transactions.Transactions()
	if err != nil {
		return models.LearningStats{}, err
	}
	mappings, err := l.mappings.Mappings()
	if err != nil {
		return models.LearningStats{}, err
	}

	stats := models.LearningStats{
		TotalTransactions: len(transactions),
		MerchantMappings:  len(mappings),
	}
	for _, t := range transactions {
		if t.Category == models.CategoryUncategorized {
			stats.Uncategorized++
		} else {
			stats.Categorized++
		}
	}

	patterns := make(map[string]struct{}, len(mappings))
	for _, m := range mappings {
		patterns[m.Pattern] = struct{}{}
	}
	for _, t := range transactions {
		if _, ok := patterns[ExtractMerchant(t.Description)]; ok {
			stats.CoveredByMapping++
		}
	}

	suggestions, err := l.SuggestMappings(DefaultMinFrequency, DefaultConfidence)
	if err != nil {
		return models.LearningStats{}, err
	}
	stats.PendingSuggestions = len(suggestions)

	if stats.TotalTransactions > 0 {
		stats.CoveragePercent = float64(stats.CoveredByMapping) / float64(stats.TotalTransactions) * 100
	}
	return stats, nil
}
