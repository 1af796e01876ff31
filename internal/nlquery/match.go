package nlquery

// Match is the result of a successful catalog lookup.
type Match struct {
	// Rule is the matched rule.
	Rule Rule

	// Index is the rule's position in the catalog (0-based).
	Index int

	// Capture is the raw text of the trigger's capture group.
	// Empty for fixed rules.
	Capture string
}

// Match searches the normalized question for each trigger in order and
// returns the first rule found. The search is unanchored.
//
// Returns a *QueryError of kind KindNoMatchingPattern if no trigger matches.
func (c *Catalog) Match(normalized string) (Match, error) {
	for _, r := range c.rules {
		groups := r.trigger.FindStringSubmatch(normalized)
		if groups == nil {
			continue
		}

		m := Match{Rule: r.Rule, Index: r.index}
		if r.Parameterized() {
			m.Capture = groups[1]
		}
		return m, nil
	}

	return Match{}, newNoMatchError(normalized)
}
