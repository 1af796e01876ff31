// Package store provides the relational store the query engine reads from.
//
// The store supports two drivers:
//   - sqlite3 (github.com/mattn/go-sqlite3): the default, file backed
//   - postgres (github.com/lib/pq)
//
// Both are reached through sqlx so that statements can be written once with
// ? placeholders and rebound per driver.
//
// # Connection Scope
//
// Execute and Schema each check out a single connection from the pool, use
// it, and return it before they finish, on success and failure alike. No
// connection is ever held between calls, and no transaction wraps a read.
//
// # Demo Data
//
// Seed loads the embedded schema.sql and sample_data.sql (customers,
// processes, document types, requirements, assignments and submissions).
// It drops existing tables first, so it is repeatable. Only sqlite3 is
// seedable.
package store
