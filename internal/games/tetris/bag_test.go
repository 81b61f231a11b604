package tetris

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBagSevenProperty(t *testing.T) {
	b := NewBag(rand.New(rand.NewSource(42)))

	for set := 0; set < 20; set++ {
		seen := make(map[Kind]int)
		for i := 0; i < 7; i++ {
			k := b.Next()
			require.True(t, k.Valid(), "drew %v", k)
			seen[k]++
		}
		for _, k := range Kinds() {
			assert.Equal(t, 1, seen[k], "set %d kind %s", set, k)
		}
	}
}

func TestBagNoLongRuns(t *testing.T) {
	b := NewBag(rand.New(rand.NewSource(7)))

	prev, run := None, 0
	for i := 0; i < 700; i++ {
		k := b.Next()
		if k == prev {
			run++
		} else {
			prev, run = k, 1
		}
		require.LessOrEqual(t, run, 2, "draw %d", i)
	}
}

func TestBagDeterministic(t *testing.T) {
	a := NewBag(rand.New(rand.NewSource(12345)))
	b := NewBag(rand.New(rand.NewSource(12345)))

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Next(), b.Next(), "draw %d", i)
	}
}

func TestBagPeekDoesNotConsume(t *testing.T) {
	b := NewBag(rand.New(rand.NewSource(1)))
	b.Next()

	preview := b.Peek(5)
	require.Len(t, preview, 5)
	assert.Equal(t, preview, b.Peek(5))

	for i, want := range preview {
		assert.Equal(t, want, b.Next(), "draw %d", i)
	}
}

func TestBagKeepsPreviewAvailable(t *testing.T) {
	b := NewBag(rand.New(rand.NewSource(3)))

	for i := 0; i < 100; i++ {
		b.Next()
		assert.GreaterOrEqual(t, b.Len(), 5, "after draw %d", i)
	}
}

func TestBagPushFront(t *testing.T) {
	b := NewBag(rand.New(rand.NewSource(9)))
	next := b.Peek(1)[0]

	b.PushFront(T)
	assert.Equal(t, T, b.Next())
	assert.Equal(t, next, b.Next())
}
