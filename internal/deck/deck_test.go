package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifedeck/internal/card"
)

func cards(ids ...string) []card.Card {
	out := make([]card.Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, card.Card{ID: id, Name: "card " + id, Kind: card.KindLife, Power: 5})
	}
	return out
}

func TestNew_RejectsCardWithoutID(t *testing.T) {
	_, err := New("player", []card.Card{{Name: "anonymous"}})
	assert.Error(t, err)

	d, err := New("player", cards("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Size())
	assert.Equal(t, "player", d.Name())
}

func TestDraw_FIFOAndEmpty(t *testing.T) {
	d, err := New("player", cards("a", "b", "c"))
	require.NoError(t, err)

	c, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, "a", c.ID)

	c, ok = d.Draw()
	require.True(t, ok)
	assert.Equal(t, "b", c.ID)

	c, ok = d.Draw()
	require.True(t, ok)
	assert.Equal(t, "c", c.ID)

	_, ok = d.Draw()
	assert.False(t, ok)
	assert.True(t, d.Empty())
}

func TestAdd_AppendsToBack(t *testing.T) {
	d, err := New("player", cards("a"))
	require.NoError(t, err)

	d.Add(card.Card{ID: "b", Kind: card.KindLife})
	d.AddAll(cards("c", "d"))

	got := []string{}
	for {
		c, ok := d.Draw()
		if !ok {
			break
		}
		got = append(got, c.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestShuffle_ConservesCards(t *testing.T) {
	d, err := New("player", cards("a", "b", "c", "d", "e", "f"))
	require.NoError(t, err)

	d.Shuffle(rand.New(rand.NewSource(3)))

	assert.Equal(t, 6, d.Size())
	seen := map[string]bool{}
	for _, c := range d.Cards() {
		seen[c.ID] = true
	}
	assert.Len(t, seen, 6)
}

func TestShuffle_DeterministicUnderSeed(t *testing.T) {
	a, err := New("player", cards("a", "b", "c", "d", "e", "f"))
	require.NoError(t, err)
	b := a.Clone()

	a.Shuffle(rand.New(rand.NewSource(11)))
	b.Shuffle(rand.New(rand.NewSource(11)))

	assert.Equal(t, a.Cards(), b.Cards())
}

func TestClone_Independent(t *testing.T) {
	d, err := New("player", cards("a", "b"))
	require.NoError(t, err)

	clone := d.Clone()
	clone.Draw()
	clone.Add(card.Card{ID: "z", Kind: card.KindLife})

	assert.Equal(t, 2, d.Size())
	first, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, "a", first.ID)
}

func TestCards_DefensiveCopy(t *testing.T) {
	d, err := New("player", cards("a"))
	require.NoError(t, err)

	out := d.Cards()
	out[0].ID = "mutated"

	c, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, "a", c.ID)
}
