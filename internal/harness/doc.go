// Package harness runs question scenarios against the query engine.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: customer_questions
//	description: "What this scenario validates"
//	catalog: ../catalog.yaml        # optional, relative to the file
//	steps:
//	  - ask: "How many documents has Rajesh Kumar submitted?"
//	    expect:
//	      rule: customer_document_count
//	      rows: 1
//	      args: ["rajesh kumar"]
//	      sql_contains: "GROUP BY c.id"
//	      contains_row: { name: Rajesh Kumar, document_count: 3 }
//	  - ask: "what is the weather today"
//	    expect:
//	      error: "Could not understand the query"
//
// Unknown fields are rejected so typos fail loudly.
//
// # Execution
//
// Each scenario runs in a fresh SQLite database seeded with the demo data.
// Steps run in order through nlquery.Processor.ProcessQuery; every expect
// field that is set is checked, and unset fields are ignored.
//
// # Golden Files
//
// RunWithGolden snapshots each step's rule, SQL, bound args, explanation
// and row count under testdata/golden/<scenario>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
