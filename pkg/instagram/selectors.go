package instagram

// Instagram DOM selectors.
// These are isolated here because the markup is not a stable contract and
// changes without notice. Update these when scraping breaks.

const (
	// Feed link patterns, in priority order: post permalinks, reel
	// permalinks, then any link as a last resort.
	PostLinkSelector = `a[href*='/p/']`
	ReelLinkSelector = `a[href*='/reel/']`
	AnyLinkSelector  = `a[href]`

	// Machine-readable timestamp on a post page
	PostDateSelector = `time[datetime]`
	// Secondary timestamp sources
	ArticleDateSelector = `article time[datetime]`
	MetaDateSelector    = `meta[property='article:published_time']`

	// Login page indicators (for detecting an unauthenticated session)
	LoginInputSelector = `input[name='username'], input[name='password']`

	// Consent dialog buttons, matched by visible text
	ConsentButtonSelector = `button`

	// Content readiness marker after navigation
	MainContentSelector = `main`
)

// CaptionXPath is the primary, fragile structural path to a post caption.
// Kept first in the caption chain to preserve the legacy extraction order.
const CaptionXPath = "/html/body/div[1]/div/div/div[2]/div/div/div[1]/div[1]/div[1]/section/main/" +
	"div/div[1]/div/div[2]/div/div[2]/div/div[1]/div/div[2]/div/span/div/span"

// CaptionSelectors are the conservative CSS fallbacks for the caption,
// tried in order after the structural path.
var CaptionSelectors = []string{
	`article section span[dir='auto']`,
	`div[role='dialog'] article span[dir='auto']`,
	`article h1`,
	`article h2`,
}

// ConsentButtonTexts are the labels of consent buttons worth clicking,
// checked case-insensitively.
var ConsentButtonTexts = []string{
	"only allow essential",
	"allow all",
	"accept all",
	"accept",
}

// LinkSelectors returns the feed link patterns in priority order
func LinkSelectors() []string {
	return []string{PostLinkSelector, ReelLinkSelector, AnyLinkSelector}
}
