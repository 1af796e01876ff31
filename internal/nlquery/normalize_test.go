package nlquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercase", "Show All Customers", "show all customers"},
		{"trailing question mark", "How many documents has Rajesh Kumar submitted?", "how many documents has rajesh kumar submitted"},
		{"all punctuation", "List. the! document? types", "list the document types"},
		{"surrounding whitespace", "  show customers  \n", "show customers"},
		{"punctuation beside whitespace", "show customers ?", "show customers"},
		{"only punctuation", "?!.", ""},
		{"inner quote kept", "How many documents has O'Brien submitted", "how many documents has o'brien submitted"},
		{"decomposed accent composed", "Jose\u0301", "jos\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"abc ?",
		"? abc",
		"Show ALL the Customers!!!",
		"which customers are assigned to Home Loan Application?",
		". . .",
		"\tx . \t",
		"ÉCOLE",
		"Straße",
		"what is the weather today",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestCleanParam(t *testing.T) {
	assert.Equal(t, "rajesh kumar", cleanParam(" rajesh kumar "))
	assert.Equal(t, "home loan", cleanParam("home loan?"))
	assert.Equal(t, "", cleanParam(" ! "))
}
