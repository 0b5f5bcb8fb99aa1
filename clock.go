package tetris

// FallThreshold is the number of frames the piece rests before falling one
// row. At 60 frames per second that is a little under 0.6s per row.
const FallThreshold = 35

// Clock counts animation frames and fires once the count exceeds its
// threshold.
type Clock struct {
	count     int
	threshold int
}

func NewClock(threshold int) Clock {
	return Clock{threshold: threshold}
}

// Advance registers one frame and reports whether the piece should fall.
func (c *Clock) Advance() bool {
	c.count++
	if c.count > c.threshold {
		c.count = 0
		return true
	}
	return false
}

func (c *Clock) Count() int {
	return c.count
}
