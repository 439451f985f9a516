package cache

import "time"

// SetClock replaces the time source used for expiry.
func (c *Provider) SetClock(now func() time.Time) { c.now = now }
