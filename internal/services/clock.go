package services

import "time"

// Clock supplies the current time. Services fall back to time.Now when given nil.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
