package tvos

import "time"

// SetClock replaces the time source used for deploy records.
func (c *Catalog) SetClock(now func() time.Time) {
	c.now = now
}
