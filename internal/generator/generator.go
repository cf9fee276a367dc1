// Package generator draws test words from a corpus.
package generator

import (
	"math/rand"
	"time"
)

// Generator produces randomized word sequences.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, for reproducible runs.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate returns count words drawn from corpus. See Deck.
func (g *Generator) Generate(corpus []string, count int) []string {
	return g.Deck(corpus).Next(count)
}

// Deck returns a draw pile over corpus sharing the generator's source.
func (g *Generator) Deck(corpus []string) *Deck {
	return &Deck{words: corpus, rnd: g.rnd}
}

// Deck deals words in shuffled order. Every corpus word is dealt once before
// the pile is reshuffled, so short corpora repeat.
type Deck struct {
	words []string
	order []int
	pos   int
	rnd   *rand.Rand
}

// Next deals n words. It returns nil for an empty corpus.
func (d *Deck) Next(n int) []string {
	if len(d.words) == 0 || n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for len(out) < n {
		if d.pos >= len(d.order) {
			d.shuffle()
		}
		out = append(out, d.words[d.order[d.pos]])
		d.pos++
	}
	return out
}

func (d *Deck) shuffle() {
	if d.order == nil {
		d.order = make([]int, len(d.words))
		for i := range d.order {
			d.order[i] = i
		}
	}
	d.rnd.Shuffle(len(d.order), func(i, j int) {
		d.order[i], d.order[j] = d.order[j], d.order[i]
	})
	d.pos = 0
}
