package pgtype

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	clockMu sync.RWMutex
	clock   clockwork.Clock = clockwork.NewRealClock()
)

// SetClock replaces the clock used to resolve now, today, tomorrow and
// yesterday. Tests install a clockwork fake clock.
func SetClock(c clockwork.Clock) {
	clockMu.Lock()
	clock = c
	clockMu.Unlock()
}

func now() time.Time {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return clock.Now()
}
