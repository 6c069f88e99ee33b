package scraper

import (
	"context"
	"strings"

	"ighelper/pkg/logger"
)

// Strategy is one attempt at pulling a value out of the page. A strategy
// reports what it found; errors are treated the same as an empty result so
// that a broken selector never takes the whole chain down.
type Strategy struct {
	Name string
	Fn   func(ctx context.Context, page Page) (string, error)
}

// Chain tries strategies in order and returns the first non-empty value.
// The ordering encodes trust: structural selectors that break loudly come
// before loose heuristics that can return junk.
type Chain struct {
	field      string
	strategies []Strategy
	log        logger.Logger
}

// NewChain builds a resolution chain for the named field
func NewChain(field string, log logger.Logger, strategies ...Strategy) *Chain {
	return &Chain{field: field, strategies: strategies, log: log}
}

// Resolve runs the chain. It returns the winning value and the name of the
// strategy that produced it, or ("", "") when every strategy came up empty.
// Strategy errors are logged at debug and swallowed.
func (c *Chain) Resolve(ctx context.Context, page Page) (value, strategy string) {
	for _, s := range c.strategies {
		if ctx.Err() != nil {
			return "", ""
		}
		v, err := s.Fn(ctx, page)
		if err != nil {
			c.log.DebugWithFields("Strategy failed", map[string]interface{}{
				"field":    c.field,
				"strategy": s.Name,
				"error":    err.Error(),
			})
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		c.log.DebugWithFields("Strategy resolved", map[string]interface{}{
			"field":    c.field,
			"strategy": s.Name,
		})
		return v, s.Name
	}
	return "", ""
}
