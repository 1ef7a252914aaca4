package clock

import "time"

// Clock abstracts now() so due dates and fees are deterministic under test.
type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }
