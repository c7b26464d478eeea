package worldtime

import (
	"fmt"
	"time"
	_ "time/tzdata" // zones must resolve on hosts without /usr/share/zoneinfo

	"github.com/jonboulle/clockwork"
)

// ZoneClock implements Clock over a clockwork time source so tests can
// freeze time.
type ZoneClock struct {
	clock clockwork.Clock
}

// NewZoneClock wraps c. A nil c selects the real clock.
func NewZoneClock(c clockwork.Clock) *ZoneClock {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return &ZoneClock{clock: c}
}

func (z *ZoneClock) Now(zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return z.clock.Now().In(loc), nil
}
