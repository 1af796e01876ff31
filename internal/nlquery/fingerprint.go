package nlquery

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// catalogDomain separates catalog fingerprints from any other hash.
// The version suffix allows the encoding to change later.
const catalogDomain = "quickdocs/catalog/v1"

// Fingerprint returns a hex SHA-256 over the rules in precedence order.
// Two catalogs have the same fingerprint exactly when they have the same
// rules in the same order.
//
// Format: SHA256(domain + 0x00 + for each rule, each field as
// uint32 big-endian length + bytes).
func (c *Catalog) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(catalogDomain))
	h.Write([]byte{0x00})

	var n [4]byte
	field := func(s string) {
		binary.BigEndian.PutUint32(n[:], uint32(len(s)))
		h.Write(n[:])
		h.Write([]byte(s))
	}
	for _, r := range c.rules {
		field(r.Name)
		field(r.Trigger)
		field(r.SQL)
		field(r.Template)
	}
	return hex.EncodeToString(h.Sum(nil))
}
