// Package catalog reads the canonical show database.
//
// The database records every performance with its sets, songs, segues, and
// venue. All queries are read-only; Create exists so fixtures and import
// tooling can build a database from the schema.
package catalog
