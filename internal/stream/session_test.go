package stream

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charliek/ktail/internal/domain"
	"github.com/charliek/ktail/internal/logs"
	"github.com/charliek/ktail/internal/term"
)

// scriptKeys is a reader fed keystrokes by the test, so key timing is under
// test control. Closing the channel reads as EOF.
type scriptKeys struct {
	keys chan byte
}

func newScriptKeys() *scriptKeys {
	return &scriptKeys{keys: make(chan byte)}
}

func (s *scriptKeys) Read(p []byte) (int, error) {
	b, ok := <-s.keys
	if !ok {
		return 0, io.EOF
	}
	p[0] = b
	return 1, nil
}

type fakePrompt struct {
	query     string
	cancelled bool
	queried   chan struct{}
	browsed   []domain.LogMessage
}

func newFakePrompt(query string) *fakePrompt {
	return &fakePrompt{query: query, queried: make(chan struct{}, 1)}
}

func (f *fakePrompt) Query() (string, bool, error) {
	select {
	case f.queried <- struct{}{}:
	default:
	}
	return f.query, !f.cancelled, nil
}

func (f *fakePrompt) Browse(matches []domain.LogMessage) error {
	f.browsed = matches
	return nil
}

type sessionHarness struct {
	session *Session
	out     *bytes.Buffer
	keys    *scriptKeys
	prompt  *fakePrompt
	history *logs.History
}

func newSessionHarness(t *testing.T, include, exclude string, capacity int) *sessionHarness {
	t.Helper()

	filter, err := logs.NewFilter(include, exclude)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	keys := newScriptKeys()
	prompt := newFakePrompt("")
	history := logs.NewHistory(capacity)
	renderer := term.NewRenderer(out, -1, term.WithWidth(func() int { return 80 }))
	session := NewSession(
		Config{ChannelCapacity: 100, Tick: 5 * time.Millisecond},
		history, filter, renderer, term.NewKeyboard(keys), prompt,
	)

	return &sessionHarness{
		session: session,
		out:     out,
		keys:    keys,
		prompt:  prompt,
		history: history,
	}
}

// quitWhen sends the quit key once cond() holds.
func (h *sessionHarness) quitWhen(cond func() bool) {
	go func() {
		deadline := time.Now().Add(5 * time.Second)
		for !cond() && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
		}
		h.keys.keys <- term.KeyQuit
	}()
}

func TestSession_FilteredStreaming(t *testing.T) {
	// Two targets each emit start/ready/"error: boom"; the exclude pattern
	// drops "start" from both, leaving four rendered lines out of six.
	h := newSessionHarness(t, "", "start", 1000)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := "start\nready\nerror: boom\n"
	h.session.Spawn(ctx, makeTarget("default/web-1"), io.NopCloser(strings.NewReader(lines)))
	h.session.Spawn(ctx, makeTarget("default/web-2"), io.NopCloser(strings.NewReader(lines)))

	h.quitWhen(func() bool { return h.history.Count() == 6 })
	require.NoError(t, h.session.Run(ctx))
	cancel()
	h.session.Wait()

	// All six messages reach history, filtered or not.
	assert.Equal(t, 6, h.history.Count())

	// Rendered lines carry the "[namespace/pod/container]" prefix; the
	// footer's filter summary also mentions the pattern, so match on the
	// prefixed form.
	out := h.out.String()
	assert.Equal(t, 2, strings.Count(out, "] ready"))
	assert.Equal(t, 2, strings.Count(out, "] error: boom"))
	assert.NotContains(t, out, "] start")
}

func TestSession_QuitKeyStopsLoop(t *testing.T) {
	h := newSessionHarness(t, "", "", 10)

	go func() { h.keys.keys <- term.KeyQuit }()
	require.NoError(t, h.session.Run(context.Background()))
	assert.Equal(t, Stopped, h.session.state)
}

func TestSession_CtrlCStopsLoop(t *testing.T) {
	h := newSessionHarness(t, "", "", 10)

	go func() { h.keys.keys <- term.KeyCtrlC }()
	require.NoError(t, h.session.Run(context.Background()))
	assert.Equal(t, Stopped, h.session.state)
}

func TestSession_UnknownKeysIgnored(t *testing.T) {
	h := newSessionHarness(t, "", "", 10)

	go func() {
		h.keys.keys <- 'x'
		h.keys.keys <- '7'
		h.keys.keys <- term.KeyQuit
	}()
	require.NoError(t, h.session.Run(context.Background()))
	assert.Equal(t, Stopped, h.session.state)
}

func TestSession_InputEOFStopsLoop(t *testing.T) {
	h := newSessionHarness(t, "", "", 10)

	go close(h.keys.keys)
	require.NoError(t, h.session.Run(context.Background()))
	assert.Equal(t, Stopped, h.session.state)
}

func TestSession_SearchPauseAndResume(t *testing.T) {
	h := newSessionHarness(t, "", "", 10)
	h.prompt.query = "error"

	for _, s := range []string{"ready", "error: boom", "ready"} {
		h.history.Append(domain.LogMessage{SourceID: "default/web-1", Container: "app", Text: s})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A live source that emits one more line after the search completes.
	pr, pw := io.Pipe()
	h.session.Spawn(ctx, makeTarget("default/web-1"), pr)

	go func() {
		h.keys.keys <- term.KeySearch
		<-h.prompt.queried
		io.WriteString(pw, "after search\n")
		pw.Close()
	}()
	h.quitWhen(func() bool { return h.history.Count() == 4 })

	require.NoError(t, h.session.Run(ctx))
	cancel()
	h.session.Wait()

	// The search saw exactly the matching history entry.
	require.Len(t, h.prompt.browsed, 1)
	assert.Equal(t, "error: boom", h.prompt.browsed[0].Text)

	// Streaming resumed: the post-search line was rendered and the footer
	// redrawn after it.
	out := h.out.String()
	idx := strings.Index(out, "after search")
	require.GreaterOrEqual(t, idx, 0)
	assert.Contains(t, out[idx:], "ktail", "footer must be redrawn after resuming")
}

func TestSession_SearchCancelledResumesStreaming(t *testing.T) {
	h := newSessionHarness(t, "", "", 10)
	h.prompt.cancelled = true

	go func() {
		h.keys.keys <- term.KeySearch
		<-h.prompt.queried
		h.keys.keys <- term.KeyQuit
	}()

	require.NoError(t, h.session.Run(context.Background()))
	assert.Nil(t, h.prompt.browsed)
}

func TestSession_KeepsTickingWhenSourcesDrain(t *testing.T) {
	// All sources ending is not a session-ending event; the loop keeps
	// ticking so the operator can still search history.
	h := newSessionHarness(t, "", "", 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.session.Spawn(ctx, makeTarget("default/web-1"), io.NopCloser(strings.NewReader("done\n")))

	go func() {
		time.Sleep(100 * time.Millisecond)
		h.keys.keys <- term.KeyQuit
	}()
	require.NoError(t, h.session.Run(ctx))

	assert.Equal(t, 1, h.history.Count())
	// Footer redraws continued after the source drained.
	assert.Greater(t, strings.Count(h.out.String(), "ktail"), 2)
}
