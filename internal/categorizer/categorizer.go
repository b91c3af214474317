// Package categorizer assigns spending categories to transaction
// descriptions using three methods, in order of trust:
// 1. Learned merchant mappings from the database
// 2. Keyword rules (built-in table, overridable from a YAML file)
// 3. Fuzzy matching against the existing category names
package categorizer

import (
	"sort"
	"strings"
	"sync"

	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/models"
	"mreyes/kuenta/internal/similarity"
	"mreyes/kuenta/internal/store"
)

const (
	// keywordConfidence is assigned to any keyword-rule hit.
	keywordConfidence = 75.0
	// fuzzyAcceptScore is the minimum fuzzy score for a category-name
	// match to beat a keyword hit.
	fuzzyAcceptScore = 60.0
	// fallbackConfidence is the score attached to "Uncategorized".
	fallbackConfidence = 30.0
	// DefaultThreshold is the confidence below which AutoCategorize
	// refuses to assign anything.
	DefaultThreshold = 60.0
)

// Categorizer suggests and auto-assigns categories. It is safe for
// concurrent use; the rule table is read-locked during matching so a
// reload cannot race a batch run.
type Categorizer struct {
	rules      []KeywordRule
	rulesMutex sync.RWMutex
	categories store.CategoryStore
	mappings   store.MappingStore
	logger     logging.Logger
}

// New returns a Categorizer over the given stores using the built-in
// keyword rules.
func New(categories store.CategoryStore, mappings store.MappingStore, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Categorizer{
		rules:      DefaultKeywordRules,
		categories: categories,
		mappings:   mappings,
		logger:     logger,
	}
}

// LoadRules replaces the keyword rule table with the contents of a YAML
// file.
func (c *Categorizer) LoadRules(path string) error {
	rules, err := LoadKeywordRules(path)
	if err != nil {
		return err
	}
	c.rulesMutex.Lock()
	c.rules = rules
	c.rulesMutex.Unlock()
	c.logger.WithFields(
		logging.Field{Key: "path", Value: path},
		logging.Field{Key: "rules", Value: len(rules)},
	).Info("Loaded keyword rules")
	return nil
}

// keywordMatch returns the first rule category whose keyword appears in
// the lowercased description, or "" when none match.
func (c *Categorizer) keywordMatch(descriptionLower string) string {
	c.rulesMutex.RLock()
	defer c.rulesMutex.RUnlock()
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(descriptionLower, keyword) {
				return rule.Category
			}
		}
	}
	return ""
}

// SuggestCategory proposes a category for description together with a
// confidence score in [0, 100]. existing is the set of category names to
// fuzzy-match against; pass nil to load them from the store. A strong
// fuzzy match against an existing category name outranks a keyword hit;
// a keyword hit outranks the "Uncategorized" fallback.
func (c *Categorizer) SuggestCategory(description string, existing []string) (string, float64) {
	if existing == nil {
		names, err := c.categories.Categories()
		if err != nil {
			c.logger.WithError(err).Warn("Failed to load categories for suggestion")
		}
		existing = names
	}

	keywordHit := c.keywordMatch(strings.ToLower(description))

	if len(existing) > 0 {
		bestName, bestScore := "", 0.0
		for _, name := range existing {
			if score := similarity.TokenSetRatio(description, name) * 100; score > bestScore {
				bestName, bestScore = name, score
			}
		}
		if keywordHit != "" && bestScore < fuzzyAcceptScore {
			return keywordHit, keywordConfidence
		}
		if bestScore >= fuzzyAcceptScore {
			return bestName, bestScore
		}
	}

	if keywordHit != "" {
		return keywordHit, keywordConfidence
	}
	return models.CategoryUncategorized, fallbackConfidence
}

// mappingMatch looks up a learned merchant mapping for the description.
// A pattern matches when it appears literally in the uppercased
// description, or when every word of the pattern does. The winning
// mapping's last-used timestamp is refreshed.
func (c *Categorizer) mappingMatch(description string) (string, bool) {
	mappings, err := c.mappings.Mappings()
	if err != nil {
		c.logger.WithError(err).Warn("Failed to load merchant mappings")
		return "", false
	}

	descUpper := strings.ToUpper(description)

	for _, m := range mappings {
		if strings.Contains(descUpper, m.Pattern) {
			c.touch(m.Pattern)
			return m.Category, true
		}
	}

	for _, m := range mappings {
		parts := strings.Fields(m.Pattern)
		if len(parts) == 0 {
			continue
		}
		all := true
		for _, part := range parts {
			if !strings.Contains(descUpper, part) {
				all = false
				break
			}
		}
		if all {
			c.touch(m.Pattern)
			return m.Category, true
		}
	}
	return "", false
}

func (c *Categorizer) touch(pattern string) {
	if err := c.mappings.TouchMapping(pattern); err != nil {
		c.logger.WithError(err).WithField("pattern", pattern).Warn("Failed to update mapping last-used time")
	}
}

// AutoCategorize assigns a category to description when confident enough.
// A merchant-mapping hit wins unconditionally. Otherwise the suggestion
// must meet threshold and name a category that already exists; no new
// category is ever invented here. The second return reports whether a
// category was assigned.
func (c *Categorizer) AutoCategorize(description string, threshold float64) (string, bool) {
	if category, ok := c.mappingMatch(description); ok {
		return category, true
	}

	existing, err := c.categories.Categories()
	if err != nil {
		c.logger.WithError(err).Warn("Failed to load categories")
		return "", false
	}

	suggested, confidence := c.SuggestCategory(description, existing)
	if confidence >= threshold {
		for _, name := range existing {
			if name == suggested {
				return suggested, true
			}
		}
	}
	return "", false
}

// BatchAutoCategorize runs AutoCategorize over each description and
// returns description -> assigned category. Descriptions below threshold
// map to the empty string.
func (c *Categorizer) BatchAutoCategorize(descriptions []string, threshold float64) map[string]string {
	results := make(map[string]string, len(descriptions))
	for _, desc := range descriptions {
		category, ok := c.AutoCategorize(desc, threshold)
		if !ok {
			category = ""
		}
		results[desc] = category
	}
	return results
}

// GetOrCreateCategory returns the canonical name of an existing category
// matching name case-insensitively, creating the category when absent.
func (c *Categorizer) GetOrCreateCategory(name string) (string, error) {
	existing, err := c.categories.Categories()
	if err != nil {
		return "", err
	}
	for _, candidate := range existing {
		if strings.EqualFold(candidate, name) {
			return candidate, nil
		}
	}
	if err := c.categories.AddCategory(name); err != nil {
		return "", err
	}
	return name, nil
}

// CategoryScore pairs a category with its keyword-based confidence.
type CategoryScore struct {
	Category string
	Score    float64
}

// ConfidenceBreakdown scores every rule category against the description,
// 30 points per keyword hit capped at 100, sorted by score descending.
// Useful when debugging why a description categorized the way it did.
func (c *Categorizer) ConfidenceBreakdown(description string) []CategoryScore {
	descriptionLower := strings.ToLower(description)

	c.rulesMutex.RLock()
	scores := make([]CategoryScore, 0, len(c.rules))
	for _, rule := range c.rules {
		matches := 0
		for _, keyword := range rule.Keywords {
			if strings.Contains(descriptionLower, keyword) {
				matches++
			}
		}
		score := float64(matches * 30)
		if score > 100 {
			score = 100
		}
		scores = append(scores, CategoryScore{Category: rule.Category, Score: score})
	}
	c.rulesMutex.RUnlock()

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	return scores
}
