package domain

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceEmpty(t *testing.T) {
	next, _, ok := Advance(0, 7)
	assert.False(t, ok)
	assert.Equal(t, 0, next)
}

func TestAdvanceStartsAtZero(t *testing.T) {
	next, idx, ok := Advance(3, 0)
	require.True(t, ok)
	assert.Equal(t, 1, next)
	assert.Equal(t, 0, idx)
}

func TestAdvanceVisitsEveryIndexThenWraps(t *testing.T) {
	cursor := 0
	var seen []int
	for i := 0; i < 8; i++ {
		next, idx, ok := Advance(4, cursor)
		require.True(t, ok)
		seen = append(seen, idx)
		cursor = next
	}
	assert.Equal(t, []int{0, 1, 2, 3, 0, 1, 2, 3}, seen)
}

func TestAdvanceIndexAlwaysInRange(t *testing.T) {
	for count := 1; count <= 5; count++ {
		for prior := 0; prior <= 20; prior++ {
			_, idx, ok := Advance(count, prior)
			require.True(t, ok)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, count)
		}
	}
}

// A deactivated item shrinks the active set; the modulo must still land in
// range on the next advance.
func TestAdvanceAfterShrink(t *testing.T) {
	cursor := 0
	for i := 0; i < 5; i++ {
		cursor, _, _ = Advance(5, cursor)
	}
	_, idx, ok := Advance(2, cursor)
	require.True(t, ok)
	assert.Less(t, idx, 2)
}

func TestCursorTickRespectsInterval(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := Cursor{}

	// First tick always advances.
	idx, ok := c.Tick(now, 45*time.Second, 3)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, c.Count)

	// Ten seconds later the interval has not elapsed: same index, no advance.
	idx, ok = c.Tick(now.Add(10*time.Second), 45*time.Second, 3)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, c.Count)

	// After the interval the cursor moves on.
	idx, ok = c.Tick(now.Add(45*time.Second), 45*time.Second, 3)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, c.Count)
}

func TestCursorTickClampsFutureTimestamp(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := Cursor{Count: 2, LastAdvance: now.Add(time.Hour).Unix()}

	// A timestamp from the future does not freeze the category: it gets
	// clamped to now and the current index keeps rendering.
	idx, ok := c.Tick(now, 10*time.Second, 3)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, c.Count)
	assert.Equal(t, now.Unix(), c.LastAdvance)

	// And the next interval boundary advances as usual.
	idx, ok = c.Tick(now.Add(10*time.Second), 10*time.Second, 3)
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 3, c.Count)
}

func TestCursorTickEmptyCategoryResets(t *testing.T) {
	c := Cursor{Count: 12, LastAdvance: 99}
	_, ok := c.Tick(time.Now(), time.Second, 0)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Count)
}

func TestCursorsRoundTrip(t *testing.T) {
	in := Cursors{
		News:      Cursor{Count: 3, LastAdvance: 1700000000},
		Birthdays: Cursor{Count: 1, LastAdvance: 1700000005},
		Videos:    Cursor{Count: 9, LastAdvance: 1700000010},
	}
	out := ParseCursors(in.Encode())
	assert.Equal(t, in, out)
}

func TestParseCursorsMalformed(t *testing.T) {
	q := url.Values{"nc": {"abc"}, "bc": {"-4"}, "vt": {"nope"}}
	c := ParseCursors(q)
	assert.Equal(t, Cursors{}, c)
}
