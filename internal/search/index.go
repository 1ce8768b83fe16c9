// Package search provides a concurrency-safe in-memory index over food names
// and the query normalization shared by the search cache.
//
//   - No logging in the library (callers decide how/what to log)
//   - Unicode-aware tokenization (case-folded) with optional stop-word removal
//   - Foods can be added after construction; reads and writes are guarded
//   - Deterministic scoring and sorting (stable order for ties)
//
// Scoring uses Jaccard similarity between the query token set and each
// food name's token set: score = |Q ∩ N| / |Q ∪ N|.
package search

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// Result is a ranked food with its similarity score.
type Result struct {
	FoodID string  `json:"food_id"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
}

// Entry is a food to be indexed.
type Entry struct {
	FoodID string
	Name   string
}

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	stopwords map[string]struct{}
	maxDocs   int
}

func defaultConfig() config {
	return config{}
}

// WithStopwords drops the given words from both names and queries.
func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = fold(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) > 0 {
			c.stopwords = m
		}
	}
}

// WithMaxDocs caps the number of indexed foods; later additions are ignored.
func WithMaxDocs(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDocs = n
		}
	}
}

// ----------------------------------------------------------------------------
// Implementation

type doc struct {
	id     string
	name   string
	tokens map[string]struct{}
}

// FoodIndex ranks known foods by name similarity. The zero value is not
// usable; build one with NewFoodIndex.
type FoodIndex struct {
	cfg config

	mu   sync.RWMutex
	docs []doc
	ids  map[string]int
}

// NewFoodIndex builds an index over entries. Entries with a blank id, a
// tokenless name or a duplicate id are skipped.
func NewFoodIndex(entries []Entry, opts ...Option) *FoodIndex {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	ix := &FoodIndex{cfg: cfg, ids: make(map[string]int, len(entries))}
	for _, e := range entries {
		ix.add(e)
	}
	return ix
}

// Add indexes e, replacing the name of an already indexed id. It reports
// whether the index changed.
func (ix *FoodIndex) Add(e Entry) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.add(e)
}

// Len returns the number of indexed foods.
func (ix *FoodIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

func (ix *FoodIndex) add(e Entry) bool {
	id := strings.TrimSpace(e.FoodID)
	name := strings.TrimSpace(normalizeWhitespace(e.Name))
	if id == "" || name == "" {
		return false
	}
	toks := tokenize(name, ix.cfg.stopwords)
	if len(toks) == 0 {
		return false
	}
	if i, ok := ix.ids[id]; ok {
		ix.docs[i] = doc{id: id, name: name, tokens: toks}
		return true
	}
	if ix.cfg.maxDocs > 0 && len(ix.docs) >= ix.cfg.maxDocs {
		return false
	}
	ix.ids[id] = len(ix.docs)
	ix.docs = append(ix.docs, doc{id: id, name: name, tokens: toks})
	return true
}

// TopK returns up to k best-matching foods by Jaccard similarity. A
// non-positive k defaults to 5.
func (ix *FoodIndex) TopK(q string, k int) []Result {
	if strings.TrimSpace(q) == "" {
		return nil
	}
	if k <= 0 {
		k = 5
	}
	qTokens := tokenize(q, ix.cfg.stopwords)
	if len(qTokens) == 0 {
		return nil
	}
	qLen := len(qTokens)

	type scored struct {
		Result
		lenRunes int
	}

	ix.mu.RLock()
	buf := make([]scored, 0, min(k*4, len(ix.docs)))
	for _, d := range ix.docs {
		over := overlap(qTokens, d.tokens)
		if over == 0 {
			continue
		}
		union := float64(qLen + len(d.tokens) - over)
		if union <= 0 {
			continue
		}
		buf = append(buf, scored{
			Result:   Result{FoodID: d.id, Name: d.name, Score: float64(over) / union},
			lenRunes: utf8.RuneCountInString(d.name),
		})
	}
	ix.mu.RUnlock()
	if len(buf) == 0 {
		return nil
	}

	sort.SliceStable(buf, func(a, b int) bool {
		if buf[a].Score != buf[b].Score {
			return buf[a].Score > buf[b].Score
		}
		if buf[a].lenRunes != buf[b].lenRunes {
			return buf[a].lenRunes < buf[b].lenRunes
		}
		return buf[a].FoodID < buf[b].FoodID
	})

	if k > len(buf) {
		k = len(buf)
	}
	out := make([]Result, k)
	for i := 0; i < k; i++ {
		out[i] = buf[i].Result
	}
	return out
}

// ----------------------------------------------------------------------------
// Helpers

var wordRE = regexp.MustCompile(`\p{L}+\p{N}*|\p{N}+`)

func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	words := wordRE.FindAllString(fold(s), -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if stop != nil {
			if _, skip := stop[w]; skip {
				continue
			}
		}
		out[w] = struct{}{}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := 0
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
