// Package instagram holds the Instagram-specific knowledge the pipeline
// relies on: URL construction and canonicalization, and the DOM selectors
// used for extraction.
//
// The selectors are deliberately the only place in the codebase that knows
// what Instagram's markup looks like. When the site changes (and it does),
// this is the package to fix.
package instagram
