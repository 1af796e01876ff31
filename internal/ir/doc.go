// Package ir defines the typed result model shared by the store and the
// query engine.
//
// Values coming back from the store are never handed around as bare
// interface{}: they are converted once, at the scan boundary, into the sealed
// Value variant (Null, Text, Int, Real, Bool, Blob). Rows keep the column
// order the store returned so that printing and JSON encoding match the SQL
// projection exactly.
//
// SchemaMap records the table/column layout read at construction time. It is
// informational; matching never consults it.
package ir
