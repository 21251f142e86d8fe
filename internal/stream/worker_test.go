package stream

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charliek/ktail/internal/domain"
)

func makeTarget(source string) domain.Target {
	return domain.Target{SourceID: source, Container: "app"}
}

type closeRecorder struct {
	io.Reader
	closed atomic.Bool
}

func (c *closeRecorder) Close() error {
	c.closed.Store(true)
	return nil
}

func TestWorker_DeliversLinesInOrderThenStops(t *testing.T) {
	out := make(chan domain.LogMessage, 10)
	stream := &closeRecorder{Reader: strings.NewReader("l1\nl2\nl3\n")}

	w := NewWorker(makeTarget("default/web-1"), out)
	done := make(chan struct{})
	go func() {
		w.Run(context.Background(), stream)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not terminate on stream exhaustion")
	}

	require.Len(t, out, 3)
	for i, want := range []string{"l1", "l2", "l3"} {
		msg := <-out
		assert.Equal(t, want, msg.Text, "line %d out of order", i)
		assert.Equal(t, "default/web-1", msg.SourceID)
		assert.Equal(t, "app", msg.Container)
	}
	assert.True(t, stream.closed.Load(), "worker must close its stream")
}

func TestWorker_NoTrailingNewline(t *testing.T) {
	out := make(chan domain.LogMessage, 1)
	stream := io.NopCloser(strings.NewReader("only line"))

	NewWorker(makeTarget("default/web-1"), out).Run(context.Background(), stream)

	msg := <-out
	assert.Equal(t, "only line", msg.Text)
}

func TestWorker_ExitsOnCancelWhileBlocked(t *testing.T) {
	// Unbuffered channel with no reader: the send must be unblocked by
	// cancellation rather than leak the goroutine.
	out := make(chan domain.LogMessage)
	stream := io.NopCloser(strings.NewReader("l1\nl2\n"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewWorker(makeTarget("default/web-1"), out).Run(ctx, stream)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not exit after cancellation")
	}
}

func TestWorkers_FanIn_NoLossNoDuplication(t *testing.T) {
	const workers = 5
	const lines = 200

	out := make(chan domain.LogMessage, 10)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		source := fmt.Sprintf("default/web-%d", i)
		var sb strings.Builder
		for j := 0; j < lines; j++ {
			fmt.Fprintf(&sb, "line %d\n", j)
		}
		w := NewWorker(makeTarget(source), out)
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Run(ctx, io.NopCloser(strings.NewReader(sb.String())))
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	// Per-source order must hold; cross-source interleaving is unconstrained.
	next := make(map[string]int)
	total := 0
	for msg := range out {
		want := fmt.Sprintf("line %d", next[msg.SourceID])
		assert.Equal(t, want, msg.Text, "source %s out of order", msg.SourceID)
		next[msg.SourceID]++
		total++
	}

	assert.Equal(t, workers*lines, total)
	for source, n := range next {
		assert.Equal(t, lines, n, "source %s delivered wrong count", source)
	}
}
