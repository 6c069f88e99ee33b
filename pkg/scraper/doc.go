// Package scraper implements the post discovery and extraction pipeline.
//
// The pipeline drives a single browser tab sequentially. For each account
// the Processor navigates to the profile, the Collector scrolls the feed
// and harvests post permalinks, and the Extractor visits each permalink to
// pull out the date and caption. Field extraction goes through resolution
// chains (Chain) that try selectors in decreasing order of trust, so one
// broken selector degrades accuracy instead of breaking the run.
//
// Extraction failures are typed (see pkg/errors) and end the account's
// pass: posts are visited newest first, so a post past the cutoff means
// the rest of the feed is past it too.
package scraper
