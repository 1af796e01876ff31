package nlquery

import (
	libinjection "github.com/corazawaf/libinjection-go"
)

// Suspicion describes a bound argument that looks like SQL injection.
type Suspicion struct {
	// Value is the argument as bound.
	Value string

	// Fingerprint is libinjection's token fingerprint for the value.
	Fingerprint string
}

// inspectArgs runs every string argument through libinjection.
// Arguments are always bound, so a hit changes nothing about execution;
// it is reported for logging and metrics.
func inspectArgs(args []any) []Suspicion {
	var found []Suspicion
	for _, a := range args {
		s, ok := a.(string)
		if !ok {
			continue
		}
		if isSQLi, fingerprint := libinjection.IsSQLi(s); isSQLi {
			found = append(found, Suspicion{Value: s, Fingerprint: string(fingerprint)})
		}
	}
	return found
}
