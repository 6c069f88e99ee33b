package scraper

import (
	"context"
	"time"
)

// pageState is the DOM a fakePage serves while "at" one URL.
type pageState struct {
	counts map[string]int
	links  map[string][]string
	// linkErrs makes Links fail for a selector
	linkErrs map[string]error
	texts  map[string]string
	xpath  map[string]string
	attrs  map[string]map[string]string
	html   string
	// navErrs are consumed one per navigation attempt; nil means success
	navErrs []error
}

// fakePage is an in-memory Page keyed by URL.
type fakePage struct {
	pages   map[string]*pageState
	current *pageState
	visits  []string
	scrolls int
	// textCalls records caption selector lookups, to assert extraction order
	textCalls int
}

func newFakePage() *fakePage {
	return &fakePage{pages: make(map[string]*pageState)}
}

func (f *fakePage) addPage(url string) *pageState {
	st := &pageState{
		counts:   make(map[string]int),
		links:    make(map[string][]string),
		linkErrs: make(map[string]error),
		texts:    make(map[string]string),
		xpath:    make(map[string]string),
		attrs:    make(map[string]map[string]string),
	}
	f.pages[url] = st
	return st
}

func (st *pageState) setAttr(selector, name, value string) *pageState {
	if st.attrs[selector] == nil {
		st.attrs[selector] = make(map[string]string)
	}
	st.attrs[selector][name] = value
	return st
}

func (f *fakePage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	f.visits = append(f.visits, url)
	st, ok := f.pages[url]
	if !ok {
		st = f.addPage(url)
	}
	if len(st.navErrs) > 0 {
		err := st.navErrs[0]
		st.navErrs = st.navErrs[1:]
		if err != nil {
			return err
		}
	}
	f.current = st
	return nil
}

func (f *fakePage) Count(ctx context.Context, selector string) (int, error) {
	if f.current == nil {
		return 0, nil
	}
	return f.current.counts[selector], nil
}

func (f *fakePage) Links(ctx context.Context, selector string, max int) ([]string, error) {
	if f.current == nil {
		return nil, nil
	}
	if err := f.current.linkErrs[selector]; err != nil {
		return nil, err
	}
	links := f.current.links[selector]
	if max > 0 && len(links) > max {
		links = links[:max]
	}
	return links, nil
}

func (f *fakePage) Text(ctx context.Context, selector string) (string, error) {
	f.textCalls++
	if f.current == nil {
		return "", nil
	}
	return f.current.texts[selector], nil
}

func (f *fakePage) TextByXPath(ctx context.Context, xpath string) (string, error) {
	f.textCalls++
	if f.current == nil {
		return "", nil
	}
	return f.current.xpath[xpath], nil
}

func (f *fakePage) Attribute(ctx context.Context, selector, name string) (string, bool, error) {
	if f.current == nil {
		return "", false, nil
	}
	attrs, ok := f.current.attrs[selector]
	if !ok {
		return "", false, nil
	}
	v, ok := attrs[name]
	return v, ok, nil
}

func (f *fakePage) HTML(ctx context.Context) (string, error) {
	if f.current == nil {
		return "", nil
	}
	return f.current.html, nil
}

func (f *fakePage) Scroll(ctx context.Context, deltaY int) error {
	f.scrolls++
	return nil
}

func (f *fakePage) ClickByText(ctx context.Context, selector string, texts []string) (bool, error) {
	return false, nil
}
