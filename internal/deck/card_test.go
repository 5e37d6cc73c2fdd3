package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{NewCard(Spades, Ace), "A♠"},
		{NewCard(Hearts, Ten), "T♥"},
		{NewCard(Diamonds, Two), "2♦"},
		{NewCard(Clubs, King), "K♣"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.card.String())
	}
}

func TestCardValue(t *testing.T) {
	assert.Equal(t, 2, NewCard(Hearts, Two).Value())
	assert.Equal(t, 14, NewCard(Spades, Ace).Value())
	assert.Equal(t, 11, NewCard(Clubs, Jack).Value())
}

func TestSuitNames(t *testing.T) {
	assert.Equal(t, "Hearts", Hearts.Name())
	assert.Equal(t, "Spades", Spades.Name())
	assert.True(t, Hearts.IsRed())
	assert.True(t, Diamonds.IsRed())
	assert.False(t, Clubs.IsRed())
	assert.False(t, Spades.IsRed())
}

func TestRankNames(t *testing.T) {
	assert.Equal(t, "Two", Two.Name())
	assert.Equal(t, "Ace", Ace.Name())
	assert.Equal(t, "Unknown", Rank(99).Name())
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		input string
		want  []Card
	}{
		{"AsKd", []Card{{Spades, Ace}, {Diamonds, King}}},
		{"Td 7s 8h", []Card{{Diamonds, Ten}, {Spades, Seven}, {Hearts, Eight}}},
		{"2c", []Card{{Clubs, Two}}},
	}

	for _, tt := range tests {
		cards, err := ParseCards(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, cards)
	}
}

func TestParseCardsErrors(t *testing.T) {
	for _, input := range []string{"A", "Xs", "Ax", "AsK"} {
		_, err := ParseCards(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseCardsRoundTrip(t *testing.T) {
	for _, card := range All() {
		parsed, err := ParseCards(card.Rank.String() + map[Suit]string{
			Hearts: "h", Diamonds: "d", Clubs: "c", Spades: "s",
		}[card.Suit])
		require.NoError(t, err)
		require.Len(t, parsed, 1)
		assert.Equal(t, card, parsed[0])
	}
}
