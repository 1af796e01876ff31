package nlquery

import "fmt"

// Explain builds the one-line summary returned with every successful query.
// original is the question exactly as the caller passed it.
func Explain(original string, count int) string {
	return fmt.Sprintf("Converted query '%s' to SQL and found %d results.", original, count)
}

// failureExplanation is the explanation carried by a fail-soft Outcome.
func failureExplanation(err error) string {
	return "Error processing query: " + err.Error()
}
