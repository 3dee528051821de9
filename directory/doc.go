// Package directory joins the catalog and the statistics cache for
// presentation.
//
// Rankings come from the current stats snapshot and are resolved to tools
// best-effort: identifiers missing from the loaded catalog are skipped. When
// a derived ranking is empty, for example on a cold start with no usage yet,
// the curated Featured list is used instead.
package directory
