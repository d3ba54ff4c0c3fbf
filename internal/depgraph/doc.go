// Package depgraph builds the graph of internal packages, scans it for
// dependency declarations that disagree with the authoritative versions, and
// fixes them.
//
// FromRecords, Scan and ApplyFixes are pure: they never touch the
// filesystem. Load and Fix go through a manifest.Store.
package depgraph
