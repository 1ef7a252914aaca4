package clockmock

import "time"

// Fixed always reports the same instant, so due dates and fees are exact.
type Fixed struct{ T time.Time }

func (f Fixed) Now() time.Time { return f.T }

func At(s string) Fixed {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return Fixed{T: t.UTC()}
}
