package models

import "time"

// Post is one extracted Instagram post. Instances are immutable once
// constructed by the extractor; the report and archive layers only read them.
type Post struct {
	// URL is the canonical post address: absolute, no query string, no
	// trailing slash. It doubles as the dedupe key.
	URL string `json:"url"`

	// Account is the handle the post was collected from, without the @.
	Account string `json:"account"`

	// Caption is the raw caption text. Empty is a valid value; plenty of
	// posts have no caption or one the heuristics could not reach.
	Caption string `json:"caption"`

	// DatePosted carries the post timestamp in the run's configured zone.
	DatePosted time.Time `json:"date_posted"`
}

// ByDateDesc sorts posts newest first, the order the report presents them in.
type ByDateDesc []*Post

func (p ByDateDesc) Len() int           { return len(p) }
func (p ByDateDesc) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p ByDateDesc) Less(i, j int) bool { return p[i].DatePosted.After(p[j].DatePosted) }
