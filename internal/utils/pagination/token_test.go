package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	c := Cursor{
		Date:      time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "0b7f3c62-8f11-4c36-9a4c-3c1f1f0f2a10",
	}

	token := EncodeToken(c)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, c, decoded)

	// Zero values survive the round trip.
	zero, err := DecodeToken(EncodeToken(Cursor{}))
	require.NoError(t, err)
	assert.Equal(t, Cursor{}, zero)
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	assert.ErrorContains(t, err, "base64 decode")

	// "2024-05-15T00:00:00Z" without separators
	_, err = DecodeToken("MjAyNC0wNS0xNVQwMDowMDowMFo=")
	assert.ErrorContains(t, err, "split")

	// "notadate|2024-05-15T00:00:00Z|x"
	_, err = DecodeToken("bm90YWRhdGV8MjAyNC0wNS0xNVQwMDowMDowMFp8eA==")
	assert.ErrorContains(t, err, "date parse")
}

func TestCursorAfter(t *testing.T) {
	day := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	at := day.Add(10 * time.Hour)
	c := Cursor{Date: day, CreatedAt: at, ID: "m"}

	assert.True(t, c.After(day.AddDate(0, 0, -1), at, "z"), "older date is on the next page")
	assert.False(t, c.After(day.AddDate(0, 0, 1), at, "a"), "newer date was on this page")
	assert.True(t, c.After(day, at.Add(-time.Second), "z"))
	assert.True(t, c.After(day, at, "a"))
	assert.False(t, c.After(day, at, "m"), "the cursor row itself is excluded")
}
