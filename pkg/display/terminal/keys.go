package terminal

import (
	"time"

	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/types"
)

// keys tracks keys pressed from the terminal. Terminals only
// report key presses (repeating while held), so a key is released
// once it has not been seen for the hold time.
type keys struct {
	hold              time.Duration
	pressed, released chan<- keypad.Key

	until   [types.KeyCount]time.Time
	timer   *time.Timer
	expired <-chan time.Time
	now     func() time.Time
}

func newKeys(hold time.Duration, pressed, released chan<- keypad.Key) *keys {
	return &keys{hold: hold, pressed: pressed, released: released, now: time.Now}
}

// press presses k, or extends the hold of a key already held.
func (k *keys) press(key keypad.Key) {
	now := k.now()
	if k.until[key].IsZero() {
		k.pressed <- key
	}
	k.until[key] = now.Add(k.hold)
	k.schedule(now)
}

// releaseExpired releases every key whose hold has run out.
func (k *keys) releaseExpired() {
	now := k.now()
	for key, until := range k.until {
		if !until.IsZero() && !until.After(now) {
			k.until[key] = time.Time{}
			k.released <- keypad.Key(key)
		}
	}
	k.schedule(now)
}

// releaseAll releases every held key.
func (k *keys) releaseAll() {
	for key, until := range k.until {
		if !until.IsZero() {
			k.until[key] = time.Time{}
			k.released <- keypad.Key(key)
		}
	}
	if k.timer != nil {
		k.timer.Stop()
	}
	k.expired = nil
}

// schedule arms the timer for the earliest release.
func (k *keys) schedule(now time.Time) {
	var next time.Time
	for _, until := range k.until {
		if !until.IsZero() && (next.IsZero() || until.Before(next)) {
			next = until
		}
	}

	if k.timer != nil {
		k.timer.Stop()
	}
	if next.IsZero() {
		k.expired = nil
		return
	}
	k.timer = time.NewTimer(next.Sub(now))
	k.expired = k.timer.C
}
