// Package carousel tracks the scroll position over the row of vehicle cards.
package carousel

// DefaultCardWidth approximates one card plus its gap, in pixels
const DefaultCardWidth = 300

// State is a read-only view of a carousel used by templates and JSON responses
type State struct {
	Index        int  `json:"index"`
	Max          int  `json:"max"`
	Offset       int  `json:"offset"`
	PrevDisabled bool `json:"prev_disabled"`
	NextDisabled bool `json:"next_disabled"`
}

// Carousel is a clamped index over total cards of which only some are visible.
// A carousel is built for each render, so the position starts at 0 whenever
// the vehicle list is rendered again. It is not safe for concurrent use.
type Carousel struct {
	index      int
	max        int
	trackWidth int
	cardWidth  int
}

// New computes bounds for total cards in a track of the given width
func New(total, trackWidth, cardWidth int) *Carousel {
	if cardWidth <= 0 {
		cardWidth = DefaultCardWidth
	}
	if total < 0 {
		total = 0
	}
	c := &Carousel{trackWidth: trackWidth, cardWidth: cardWidth}
	c.max = total - c.Visible()
	if c.max < 0 {
		c.max = 0
	}
	return c
}

// Visible is the number of whole cards that fit in the track
func (c *Carousel) Visible() int {
	if c.trackWidth <= 0 {
		return 0
	}
	return c.trackWidth / c.cardWidth
}

// SlideTo moves to i clamped to [0, max] and returns the new index
func (c *Carousel) SlideTo(i int) int {
	if i > c.max {
		i = c.max
	}
	if i < 0 {
		i = 0
	}
	c.index = i
	return c.index
}

// Next advances by one card
func (c *Carousel) Next() int {
	return c.SlideTo(c.index + 1)
}

// Prev moves back by one card
func (c *Carousel) Prev() int {
	return c.SlideTo(c.index - 1)
}

// Index is the current position
func (c *Carousel) Index() int {
	return c.index
}

// Max is the largest reachable index
func (c *Carousel) Max() int {
	return c.max
}

// Offset is the horizontal translation of the track in pixels
func (c *Carousel) Offset() int {
	return c.index * c.cardWidth
}

// PrevDisabled reports whether the track is at its start
func (c *Carousel) PrevDisabled() bool {
	return c.index == 0
}

// NextDisabled reports whether the track is at its end
func (c *Carousel) NextDisabled() bool {
	return c.index >= c.max
}

// State snapshots the carousel
func (c *Carousel) State() State {
	return State{
		Index:        c.index,
		Max:          c.max,
		Offset:       c.Offset(),
		PrevDisabled: c.PrevDisabled(),
		NextDisabled: c.NextDisabled(),
	}
}
