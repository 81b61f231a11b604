package tetris

import "math/rand"

// refillBelow is the queue length under which another shuffled set of seven is
// appended. It keeps a five-piece preview satisfiable after every draw.
const refillBelow = 6

// Bag is the 7-bag randomizer: an endless queue built from shuffled sets
// containing each playable kind exactly once.
type Bag struct {
	rng   *rand.Rand
	queue []Kind
}

// NewBag creates a bag drawing its permutations from rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng}
}

// refill appends one shuffled set of all seven kinds.
func (b *Bag) refill() {
	set := Kinds()
	b.rng.Shuffle(len(set), func(i, j int) {
		set[i], set[j] = set[j], set[i]
	})
	b.queue = append(b.queue, set...)
}

// Next removes and returns the head of the queue.
func (b *Bag) Next() Kind {
	if len(b.queue) < refillBelow {
		b.refill()
	}
	k := b.queue[0]
	b.queue = b.queue[1:]
	return k
}

// Peek returns the next n kinds without consuming them.
func (b *Bag) Peek(n int) []Kind {
	for len(b.queue) < n {
		b.refill()
	}
	out := make([]Kind, n)
	copy(out, b.queue)
	return out
}

// PushFront puts k back at the head of the queue so it is drawn next.
func (b *Bag) PushFront(k Kind) {
	b.queue = append([]Kind{k}, b.queue...)
}

// Len returns the number of kinds currently buffered.
func (b *Bag) Len() int {
	return len(b.queue)
}
