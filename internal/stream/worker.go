// Package stream implements the concurrent multi-source log pipeline: one
// worker goroutine per target fanning into a single bounded channel, drained
// by the session control loop.
package stream

import (
	"bufio"
	"context"
	"io"

	"github.com/charliek/ktail/internal/constants"
	"github.com/charliek/ktail/internal/domain"
)

// Worker tails one target's line stream into the shared session channel.
// Messages are delivered in the order the stream produced them. A full
// channel stalls the worker (backpressure) without affecting other workers;
// a cancelled context unblocks any pending send so an abandoned worker never
// leaks.
type Worker struct {
	target domain.Target
	out    chan<- domain.LogMessage
}

// NewWorker creates a worker for one target.
func NewWorker(target domain.Target, out chan<- domain.LogMessage) *Worker {
	return &Worker{target: target, out: out}
}

// Run reads lines until the stream ends or the context is cancelled. Stream
// exhaustion and read errors both end the worker silently: a single dead
// target degrades quietly rather than aborting the session.
func (w *Worker) Run(ctx context.Context, stream io.ReadCloser) {
	defer stream.Close()

	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, constants.ScannerBufferSize), constants.ScannerMaxBufferSize)

	for scanner.Scan() {
		msg := domain.LogMessage{
			SourceID:  w.target.SourceID,
			Container: w.target.Container,
			Text:      scanner.Text(),
		}
		select {
		case w.out <- msg:
		case <-ctx.Done():
			return
		}
	}
}
