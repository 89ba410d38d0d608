// Package diag defines the diagnostic model shared by the scanner, the parser
// and the driver.
//
// Diagnostic is the central record: a Severity, a stable numeric Code, a short
// Message and the primary source.Info where the problem was found, plus
// optional Notes. Producers emit through a Reporter; BagReporter collects into
// a Bag which supports sorting and deduplication.
//
// Package diag does no formatting or IO. Rendering lives in internal/diagfmt.
package diag
