package term

import (
	"context"
	"io"
)

// Keys understood while the live view is rendering.
const (
	KeyQuit   byte = 'q'
	KeyCtrlC  byte = 0x03
	KeySearch byte = '/'
)

// Keyboard reads single keystrokes from a raw-mode input. Reads are granted
// one at a time: the control loop requests a key, the reader performs exactly
// one Read, delivers the keystroke, and waits for the next request. With no
// request outstanding there is no pending Read, which leaves stdin free for
// the search prompt while the live view is paused.
type Keyboard struct {
	in       io.Reader
	requests chan struct{}
	keys     chan byte
}

// NewKeyboard creates a keyboard reader over the given input.
func NewKeyboard(in io.Reader) *Keyboard {
	return &Keyboard{
		in:       in,
		requests: make(chan struct{}, 1),
		keys:     make(chan byte),
	}
}

// Keys returns the channel keystrokes are delivered on. It is closed when
// the input ends or the reader's context is cancelled.
func (k *Keyboard) Keys() <-chan byte {
	return k.keys
}

// Request arms the reader for one keystroke. It never blocks; at most one
// request can be outstanding.
func (k *Keyboard) Request() {
	select {
	case k.requests <- struct{}{}:
	default:
	}
}

// Run services key requests until the context is cancelled or the input
// closes. It is meant to run in its own goroutine.
func (k *Keyboard) Run(ctx context.Context) {
	defer close(k.keys)

	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		case <-k.requests:
		}

		n, err := k.in.Read(buf)
		if n > 0 {
			select {
			case <-ctx.Done():
				return
			case k.keys <- buf[0]:
			}
		}
		if err != nil {
			return
		}
	}
}
