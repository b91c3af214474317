package bankparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		bank string
	}{
		{"bpi marker", "BANK OF THE PHILIPPINE ISLANDS\nStatement of Account", "BPI"},
		{"unionbank marker", "UnionBank Rewards Visa Platinum", "UnionBank"},
		{"unionbank wins over bpi promo", "UNIONBANK statement. Pay via BPI online.", "UnionBank"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Detect(tt.text, nil)
			require.NotNil(t, p)
			assert.Equal(t, tt.bank, p.Bank())
		})
	}
}

func TestDetectUnknown(t *testing.T) {
	assert.Nil(t, Detect("some unrelated receipt text", nil))
}

func TestForBank(t *testing.T) {
	for selector, want := range map[string]string{
		"bpi":        "BPI",
		"BPI":        "BPI",
		"ub":         "UnionBank",
		"unionbank":  "UnionBank",
		"Union Bank": "UnionBank",
		"generic":    "Generic",
	} {
		p, err := ForBank(selector, nil)
		require.NoError(t, err, selector)
		require.NotNil(t, p, selector)
		assert.Equal(t, want, p.Bank(), selector)
	}
}

func TestForBankUnknown(t *testing.T) {
	_, err := ForBank("metrobank", nil)
	assert.Error(t, err)
}

func TestGuessImageParser(t *testing.T) {
	assert.Equal(t, "UnionBank", GuessImageParser("01/19/26 01/20/26 SHOPEE PH 220.00", nil).Bank())
	assert.Equal(t, "BPI", GuessImageParser("Nov 28 Dec 1 NETFLIX.COM 549.00", nil).Bank())
}
