package attach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

func comments(bodies ...string) []types.Comment {
	out := make([]types.Comment, 0, len(bodies))
	for i, b := range bodies {
		out = append(out, types.Comment{ID: string(rune('a' + i)), Body: b})
	}
	return out
}

func TestExtractStats_NoMarker(t *testing.T) {
	cases := [][]types.Comment{
		nil,
		comments(),
		comments("unrelated text", "more\nlines"),
		comments(" TradeDesk API stats:\nmatched:1\nunmatched:2"),
		comments("TradeDesk API stats: \nmatched:1\nunmatched:2"),
		comments("prefix\nTradeDesk API stats:\nmatched:1\nunmatched:2"),
	}

	for _, c := range cases {
		record, err := ExtractStats(c)
		require.NoError(t, err)
		assert.Nil(t, record)
	}
}

func TestExtractStats_WellFormed(t *testing.T) {
	body := "TradeDesk API stats:\nmatched:120\nunmatched:5"
	record, err := ExtractStats(comments("unrelated text", body))
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, body, record.Raw)
	assert.Equal(t, map[string]string{"matched": "120", "unmatched": "5"}, record.Metrics)
}

func TestExtractStats_ValueKeepsTextAfterFirstColon(t *testing.T) {
	record, err := ExtractStats(comments("TradeDesk API stats:\nwindow:10:30\nrate: 5 \ntrailing line"))
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, map[string]string{"window": "10:30", "rate": " 5 "}, record.Metrics)
}

func TestExtractStats_FirstMarkerWins(t *testing.T) {
	first := "TradeDesk API stats:\nmatched:1\nunmatched:2"
	second := "TradeDesk API stats:\nmatched:3\nunmatched:4"

	record, err := ExtractStats(comments("noise", first, "more noise", second))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, first, record.Raw)

	reordered, err := ExtractStats(comments("more noise", first, second, "noise"))
	require.NoError(t, err)
	assert.Equal(t, record, reordered)
}

func TestExtractStats_Malformed(t *testing.T) {
	cases := []string{
		"TradeDesk API stats:",
		"TradeDesk API stats:\nmatched:1",
		"TradeDesk API stats:\nmatched 1\nunmatched:2",
	}

	for _, body := range cases {
		record, err := ExtractStats(comments(body, "TradeDesk API stats:\nmatched:1\nunmatched:2"))
		assert.ErrorIs(t, err, ErrMalformedStats, body)
		assert.Nil(t, record)
	}
}
