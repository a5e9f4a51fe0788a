package domain

import (
	"net/url"
	"strconv"
	"time"
)

// Advance moves a rotation cursor forward by one position and selects the
// item to display. It is pure: the caller owns persisting the returned
// cursor between invocations.
//
// With no active items the cursor resets to 0 and ok is false (the caller
// renders an empty state). Otherwise the cursor increments and the index is
// (next-1) mod activeCount, so the first invocation from 0 selects index 0
// and later ones wrap forward one position at a time. If the active set
// shrank since the last invocation the modulo still lands in range; the
// displayed item may jump, which is accepted.
func Advance(activeCount, prior int) (next, index int, ok bool) {
	if activeCount <= 0 {
		return 0, 0, false
	}
	next = prior + 1
	return next, (next - 1) % activeCount, true
}

// Cursor is the rotation state for one category: how many times it has
// advanced and when it last did.
type Cursor struct {
	Count       int
	LastAdvance int64 // unix seconds, 0 = never
}

// Tick advances the cursor if its interval has elapsed (or it never
// advanced) and returns the index to display. A category whose interval has
// not elapsed keeps its current index, so one shared refresh timer does not
// drag every category along at the fastest configured rate.
func (c *Cursor) Tick(now time.Time, interval time.Duration, activeCount int) (index int, ok bool) {
	if activeCount <= 0 {
		c.Count = 0
		c.LastAdvance = 0
		return 0, false
	}
	// A future timestamp (clock skew, crafted params) would freeze the
	// category until it passed; clamp so the state self-heals.
	if c.LastAdvance > now.Unix() {
		c.LastAdvance = now.Unix()
	}
	if c.LastAdvance == 0 || now.Unix()-c.LastAdvance >= int64(interval.Seconds()) {
		next, idx, _ := Advance(activeCount, c.Count)
		c.Count = next
		c.LastAdvance = now.Unix()
		return idx, true
	}
	return c.Current(activeCount), true
}

// Current derives the displayed index from the cursor without advancing.
func (c *Cursor) Current(activeCount int) int {
	if activeCount <= 0 || c.Count == 0 {
		return 0
	}
	return (c.Count - 1) % activeCount
}

// Cursors carries the rotation state of the three rotating categories
// through client-visible query parameters, so it survives a full page
// reload without any server-side session.
type Cursors struct {
	News      Cursor
	Birthdays Cursor
	Videos    Cursor
}

// Query parameter names for cursor round-tripping.
const (
	paramNewsCount     = "nc"
	paramBirthdayCount = "bc"
	paramVideoCount    = "vc"
	paramNewsTick      = "nt"
	paramBirthdayTick  = "bt"
	paramVideoTick     = "vt"
)

// ParseCursors reads rotation state from query parameters. Absent or
// malformed values start from zero.
func ParseCursors(q url.Values) Cursors {
	return Cursors{
		News:      Cursor{Count: parseCount(q.Get(paramNewsCount)), LastAdvance: parseUnix(q.Get(paramNewsTick))},
		Birthdays: Cursor{Count: parseCount(q.Get(paramBirthdayCount)), LastAdvance: parseUnix(q.Get(paramBirthdayTick))},
		Videos:    Cursor{Count: parseCount(q.Get(paramVideoCount)), LastAdvance: parseUnix(q.Get(paramVideoTick))},
	}
}

// Encode writes the rotation state back as query parameters.
func (c Cursors) Encode() url.Values {
	q := url.Values{}
	q.Set(paramNewsCount, strconv.Itoa(c.News.Count))
	q.Set(paramBirthdayCount, strconv.Itoa(c.Birthdays.Count))
	q.Set(paramVideoCount, strconv.Itoa(c.Videos.Count))
	q.Set(paramNewsTick, strconv.FormatInt(c.News.LastAdvance, 10))
	q.Set(paramBirthdayTick, strconv.FormatInt(c.Birthdays.LastAdvance, 10))
	q.Set(paramVideoTick, strconv.FormatInt(c.Videos.LastAdvance, 10))
	return q
}

func parseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseUnix(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
