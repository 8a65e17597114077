package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "mixed suits",
			input: "AhKdQcJs9s",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Nine},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{
			name:  "ten as two digits",
			input: "10h9h",
			expected: []Card{
				{Suit: Hearts, Rank: Ten},
				{Suit: Hearts, Rank: Nine},
			},
		},
		{
			name:  "space separated",
			input: "2h 2s, 7d 9c Ks",
			expected: []Card{
				{Suit: Hearts, Rank: Two},
				{Suit: Spades, Rank: Two},
				{Suit: Diamonds, Rank: Seven},
				{Suit: Clubs, Rank: Nine},
				{Suit: Spades, Rank: King},
			},
		},
		{
			name:  "glyph suits",
			input: "A♠ 10♥",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: Ten},
			},
		},
		{
			name:    "invalid rank",
			input:   "XsKs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "AsKx",
			wantErr: true,
		},
		{
			name:    "odd length",
			input:   "AsK",
			wantErr: true,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCards(t *testing.T) {
	cards := MustParseCards("AsKs")
	assert.Equal(t, []Card{{Suit: Spades, Rank: Ace}, {Suit: Spades, Rank: King}}, cards)

	assert.Panics(t, func() { MustParseCards("invalid") })
}

func TestCardFormatting(t *testing.T) {
	c := NewCard(Spades, King)
	assert.Equal(t, "K♠", c.String())
	assert.Equal(t, "Ks", c.Code())
	assert.Equal(t, "King of Spades", c.Name())
	assert.False(t, c.IsRed())

	ten := NewCard(Hearts, Ten)
	assert.Equal(t, "Th", ten.Code())
	assert.Equal(t, "Ten of Hearts", ten.Name())
	assert.Equal(t, "Sixes", Six.Plural())
	assert.Equal(t, "Kings", King.Plural())
	assert.True(t, ten.IsRed())

	assert.Equal(t, "2h 2s Ac", FormatCards(MustParseCards("2h2sAc")))
}

func TestCardIndexCoversCanonicalOrder(t *testing.T) {
	for i, c := range Canonical() {
		assert.Equal(t, i, c.Index(), "card %s", c)
		assert.True(t, c.Valid())
	}
}

func TestRoundTripCodes(t *testing.T) {
	for _, c := range Canonical() {
		parsed, err := ParseCard(c.Code())
		assert.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}
