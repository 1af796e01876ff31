package nlquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Stable(t *testing.T) {
	a := MustNewCatalog(DefaultRules())
	b := DefaultCatalog()

	assert.Len(t, a.Fingerprint(), 64)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprint_OrderMatters(t *testing.T) {
	rules := DefaultRules()
	swapped := DefaultRules()
	swapped[1], swapped[8] = swapped[8], swapped[1]

	assert.NotEqual(t,
		MustNewCatalog(rules).Fingerprint(),
		MustNewCatalog(swapped).Fingerprint())
}

func TestFingerprint_FieldBoundaries(t *testing.T) {
	a := MustNewCatalog([]Rule{{Name: "ab", Trigger: "c", SQL: "SELECT 1"}})
	b := MustNewCatalog([]Rule{{Name: "a", Trigger: "bc", SQL: "SELECT 1"}})

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
