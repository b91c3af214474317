package categorizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeywordRule maps a category to the description keywords that imply it.
// Rule order matters: the first rule with a matching keyword wins.
type KeywordRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// DefaultKeywordRules is the built-in rule table, tuned for Philippine
// bank statements. A user-supplied YAML file replaces it wholesale.
var DefaultKeywordRules = []KeywordRule{
	{
		Category: "Food & Dining",
		Keywords: []string{
			"restaurant", "cafe", "coffee", "food", "dining", "mcdonald", "jollibee",
			"starbucks", "pizza", "burger", "kitchen", "bistro", "grill", "bakery",
			"fastfood", "delivery", "grab food", "foodpanda",
		},
	},
	{
		Category: "Transportation",
		Keywords: []string{
			"grab", "uber", "taxi", "transport", "gas", "gasoline", "petron", "shell",
			"caltex", "parking", "toll", "lrt", "mrt", "bus", "jeep", "angkas",
		},
	},
	{
		Category: "Shopping",
		Keywords: []string{
			"mall", "store", "shop", "lazada", "shopee", "sm", "robinsons", "ayala",
			"department", "retail", "market", "supermarket", "grocery",
		},
	},
	{
		Category: "Utilities",
		Keywords: []string{
			"meralco", "maynilad", "pldt", "globe", "smart", "electric", "water",
			"internet", "phone", "bill", "utility", "converge", "skycable",
		},
	},
	{
		Category: "Entertainment",
		Keywords: []string{
			"cinema", "movie", "netflix", "spotify", "youtube", "game", "gaming",
			"concert", "theater", "entertainment", "gym", "fitness",
		},
	},
	{
		Category: "Healthcare",
		Keywords: []string{
			"hospital", "clinic", "doctor", "pharmacy", "medicine", "medical",
			"health", "dental", "mercury drug", "watsons", "southstar",
		},
	},
	{
		Category: "Bills & Fees",
		Keywords: []string{
			"fee", "charge", "annual", "membership", "subscription", "insurance",
			"payment", "installment", "loan", "credit card",
		},
	},
}

// LoadKeywordRules reads a rule table from a YAML file. The file holds a
// list of {category, keywords} entries in priority order.
func LoadKeywordRules(path string) ([]KeywordRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword rules: %w", err)
	}

	var rules []KeywordRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing keyword rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("keyword rules file %s is empty", path)
	}
	return rules, nil
}
