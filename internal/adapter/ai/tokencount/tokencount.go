// Package tokencount estimates prompt token usage for generation calls. It
// uses tiktoken encodings, which approximate Mistral tokenization closely
// enough for logging and budget monitoring.
package tokencount

import (
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// Counter caches tiktoken encodings and counts tokens. Safe for concurrent use.
type Counter struct {
	mu  sync.Mutex
	enc *tiktoken.Tiktoken
}

// NewCounter creates a Counter with a lazily loaded encoding.
func NewCounter() *Counter { return &Counter{} }

// Count returns the token count of text, or a rough estimate when the
// encoding cannot be loaded. Counting must never fail a generation call.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enc == nil {
		enc, err := tiktoken.GetEncoding(defaultEncoding)
		if err != nil {
			// ~4 chars per token holds for English prose.
			return len(text) / 4
		}
		c.enc = enc
	}
	return len(c.enc.Encode(text, nil, nil))
}
