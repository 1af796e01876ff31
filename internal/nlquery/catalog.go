package nlquery

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// ParamSlot marks where a parameterized rule's captured value is bound.
const ParamSlot = "{param}"

// Rule is one catalog entry.
//
// A fixed rule sets SQL and its trigger has no capture groups.
// A parameterized rule sets Template instead; its trigger has exactly one
// capture group and the template contains ParamSlot exactly once.
type Rule struct {
	Name     string
	Trigger  string
	SQL      string
	Template string
}

// Parameterized reports whether the rule binds a captured value.
func (r Rule) Parameterized() bool {
	return r.Template != ""
}

type compiledRule struct {
	Rule
	index   int
	trigger *regexp.Regexp
}

// Catalog is an ordered, immutable list of rules. Order is precedence.
// A Catalog is safe for concurrent use.
type Catalog struct {
	rules []compiledRule
}

// NewCatalog validates and compiles rules, keeping their order.
func NewCatalog(rules []Rule) (*Catalog, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("catalog has no rules")
	}

	c := &Catalog{rules: make([]compiledRule, 0, len(rules))}
	seen := make(map[string]int, len(rules))

	for i, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d: name is required", i)
		}
		if prev, ok := seen[r.Name]; ok {
			return nil, fmt.Errorf("rule %d: name %q already used by rule %d", i, r.Name, prev)
		}
		seen[r.Name] = i

		if (r.SQL == "") == (r.Template == "") {
			return nil, fmt.Errorf("rule %q: exactly one of sql or template must be set", r.Name)
		}

		re, err := regexp.Compile(r.Trigger)
		if err != nil {
			return nil, fmt.Errorf("rule %q: invalid trigger: %w", r.Name, err)
		}

		if r.Parameterized() {
			if n := re.NumSubexp(); n != 1 {
				return nil, fmt.Errorf("rule %q: trigger must have exactly one capture group, has %d", r.Name, n)
			}
			if n := strings.Count(r.Template, ParamSlot); n != 1 {
				return nil, fmt.Errorf("rule %q: template must contain %s exactly once, has %d", r.Name, ParamSlot, n)
			}
		} else if n := re.NumSubexp(); n != 0 {
			return nil, fmt.Errorf("rule %q: fixed rule trigger must not capture, has %d groups", r.Name, n)
		}

		c.rules = append(c.rules, compiledRule{Rule: r, index: i, trigger: re})
	}

	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on error.
func MustNewCatalog(rules []Rule) *Catalog {
	c, err := NewCatalog(rules)
	if err != nil {
		panic(err)
	}
	return c
}

// Rules returns the rules in precedence order.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.Rule
	}
	return out
}

// Len returns the number of rules.
func (c *Catalog) Len() int {
	return len(c.rules)
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	return MustNewCatalog(DefaultRules())
})

// DefaultCatalog returns the built-in QuickDocs catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

// DefaultRules returns the built-in QuickDocs rules in precedence order.
//
// Rules pending_processes / pending_process_details and
// completed_processes / completed_process_details overlap on purpose:
// the earlier one answers the short phrasing it names.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "all_customers",
			Trigger: `show (?:all )?(?:the )?customers`,
			SQL:     `SELECT id, name, email, phone, registration_date FROM customers ORDER BY registration_date DESC`,
		},
		{
			Name:    "pending_processes",
			Trigger: `list (?:all )?(?:the )?pending processes`,
			SQL: `SELECT DISTINCT p.name, p.description
FROM processes p
JOIN process_assignments pa ON p.id = pa.process_id
WHERE pa.status = 'pending'`,
		},
		{
			Name:    "customer_document_count",
			Trigger: `how many documents (?:has|have) (.+?) submitted`,
			Template: `SELECT c.name, COUNT(ds.id) AS document_count
FROM customers c
LEFT JOIN document_submissions ds ON c.id = ds.customer_id
WHERE LOWER(c.name) LIKE LOWER('%' || {param} || '%')
GROUP BY c.id, c.name`,
		},
		{
			Name:    "customers_by_process",
			Trigger: `(?:which|what) customers are assigned to (.+)`,
			Template: `SELECT c.name, c.email, pa.status, pa.completion_percentage
FROM customers c
JOIN process_assignments pa ON c.id = pa.customer_id
JOIN processes p ON pa.process_id = p.id
WHERE LOWER(p.name) LIKE LOWER('%' || {param} || '%')`,
		},
		{
			Name:    "process_most_documents",
			Trigger: `(?:which|what) process has (?:the )?most documents`,
			SQL: `SELECT p.name, COUNT(ds.id) AS document_count
FROM processes p
LEFT JOIN document_submissions ds ON p.id = ds.process_id
GROUP BY p.id, p.name
ORDER BY document_count DESC
LIMIT 1`,
		},
		{
			Name:    "completed_processes",
			Trigger: `show (?:all )?(?:the )?completed processes`,
			SQL: `SELECT c.name AS customer_name, p.name AS process_name, pa.completion_percentage
FROM process_assignments pa
JOIN customers c ON pa.customer_id = c.id
JOIN processes p ON pa.process_id = p.id
WHERE pa.status = 'completed'`,
		},
		{
			Name:    "document_types",
			Trigger: `list (?:all )?(?:the )?document types`,
			SQL:     `SELECT name, description FROM document_types ORDER BY name`,
		},
		{
			Name:    "completed_process_details",
			Trigger: `(?:list|show) (?:all )?(?:the )?completed processes?`,
			SQL: `SELECT c.name AS customer_name, p.name AS process_name, pa.completion_percentage, pa.assignment_date
FROM process_assignments pa
JOIN customers c ON pa.customer_id = c.id
JOIN processes p ON pa.process_id = p.id
WHERE pa.status = 'completed'
ORDER BY pa.assignment_date DESC`,
		},
		{
			Name:    "pending_process_details",
			Trigger: `(?:list|show) (?:all )?(?:the )?pending processes?`,
			SQL: `SELECT c.name AS customer_name, p.name AS process_name, pa.completion_percentage, pa.assignment_date
FROM process_assignments pa
JOIN customers c ON pa.customer_id = c.id
JOIN processes p ON pa.process_id = p.id
WHERE pa.status = 'pending'
ORDER BY pa.assignment_date DESC`,
		},
		{
			Name:    "process_types",
			Trigger: `(?:list|show) (?:all )?process types?`,
			SQL: `SELECT DISTINCT p.name, p.description
FROM processes p
WHERE p.status = 'active'
ORDER BY p.name`,
		},
	}
}
