package models

import "sort"

type GuildID int64

// Entry is one emoji and its count as stored in a snapshot row.
type Entry struct {
	Emoji string `json:"emoji"`
	Count int64  `json:"count"`
}

// Counter is a multiset of emoji tokens that keeps first-insertion order.
// Counts are signed; a removal without a prior add leaves a negative count.
// Counter is not safe for concurrent use, callers serialize access per guild.
type Counter struct {
	order  []string
	counts map[string]int64
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int64)}
}

func NewCounterFromEntries(entries []Entry) *Counter {
	c := NewCounter()
	for _, e := range entries {
		c.Set(e.Emoji, e.Count)
	}
	return c
}

func (c *Counter) Add(emoji string, delta int64) int64 {
	if _, ok := c.counts[emoji]; !ok {
		c.order = append(c.order, emoji)
	}
	c.counts[emoji] += delta
	return c.counts[emoji]
}

func (c *Counter) Set(emoji string, count int64) {
	if _, ok := c.counts[emoji]; !ok {
		c.order = append(c.order, emoji)
	}
	c.counts[emoji] = count
}

func (c *Counter) Get(emoji string) int64 {
	return c.counts[emoji]
}

func (c *Counter) Len() int {
	return len(c.order)
}

// Entries returns a copy of all entries in insertion order.
func (c *Counter) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, Entry{Emoji: k, Count: c.counts[k]})
	}
	return out
}

// Ranked returns the entries inside r, sorted by descending count.
// Ties keep insertion order.
func (c *Counter) Ranked(r RankRange) []Entry {
	start, end, ok := r.bounds(c.Len())
	if !ok {
		return []Entry{}
	}
	sorted := c.Entries()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	return sorted[start-1 : end]
}
