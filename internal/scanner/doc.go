// Package scanner walks archive folders, pairs each show with its
// setlist documents, and reconciles them against the catalog. Scans are
// strictly read-only with respect to the folders and the catalog; the
// only output is the discrepancy report.
package scanner
