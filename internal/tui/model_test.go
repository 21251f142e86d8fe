package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charliek/ktail/internal/domain"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestMultiModel_ToggleAndConfirm(t *testing.T) {
	m := newMultiModel("Select pods", []string{"web-1", "web-2", "web-3"})

	next, _ := m.Update(key(" "))
	m = next.(multiModel)
	next, _ = m.Update(key("down"))
	m = next.(multiModel)
	next, _ = m.Update(key("down"))
	m = next.(multiModel)
	next, _ = m.Update(key(" "))
	m = next.(multiModel)
	next, _ = m.Update(key("enter"))
	m = next.(multiModel)

	require.True(t, m.confirmed)
	assert.True(t, m.items[0].selected)
	assert.False(t, m.items[1].selected)
	assert.True(t, m.items[2].selected)
}

func TestMultiModel_SelectAllAndNone(t *testing.T) {
	m := newMultiModel("Select pods", []string{"a", "b"})

	next, _ := m.Update(key("a"))
	m = next.(multiModel)
	assert.True(t, m.items[0].selected)
	assert.True(t, m.items[1].selected)

	next, _ = m.Update(key("n"))
	m = next.(multiModel)
	assert.False(t, m.items[0].selected)
	assert.False(t, m.items[1].selected)
}

func TestMultiModel_Cancel(t *testing.T) {
	m := newMultiModel("Select pods", []string{"a"})

	next, _ := m.Update(key("q"))
	m = next.(multiModel)
	assert.True(t, m.cancelled)
}

func TestMultiModel_CursorBounds(t *testing.T) {
	m := newMultiModel("Select pods", []string{"a", "b"})

	next, _ := m.Update(key("up"))
	m = next.(multiModel)
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 5; i++ {
		next, _ = m.Update(key("down"))
		m = next.(multiModel)
	}
	assert.Equal(t, 1, m.cursor)
}

func TestSelectModel_PickByCursor(t *testing.T) {
	m := newSelectModel("Select container", []string{"app", "sidecar"})

	next, _ := m.Update(key("j"))
	m = next.(selectModel)
	next, _ = m.Update(key("enter"))
	m = next.(selectModel)

	require.True(t, m.confirmed)
	assert.Equal(t, 1, m.cursor)
}

func TestSelectModel_Cancel(t *testing.T) {
	m := newSelectModel("Select container", []string{"app"})

	next, _ := m.Update(key("esc"))
	m = next.(selectModel)
	assert.True(t, m.cancelled)
}

func TestBrowseModel_ScrollWindow(t *testing.T) {
	matches := make([]domain.LogMessage, 30)
	for i := range matches {
		matches[i] = domain.LogMessage{SourceID: "default/web-1", Container: "app", Text: "line"}
	}
	m := newBrowseModel(matches)

	for i := 0; i < 20; i++ {
		next, _ := m.Update(key("down"))
		m = next.(browseModel)
	}

	assert.Equal(t, 20, m.cursor)
	assert.Equal(t, 20-m.height+1, m.offset)

	next, _ := m.Update(key("q"))
	m = next.(browseModel)
	assert.True(t, m.done)
}

func TestBrowseModel_ViewShowsMatches(t *testing.T) {
	m := newBrowseModel([]domain.LogMessage{
		{SourceID: "default/web-1", Container: "app", Text: "error: boom"},
	})

	view := m.View()
	assert.Contains(t, view, "1 matches")
	assert.Contains(t, view, "error: boom")
}

func TestQueryModel_ConfirmAndCancel(t *testing.T) {
	m := queryModel{}

	next, _ := m.Update(key("enter"))
	assert.True(t, next.(queryModel).confirmed)

	next, _ = m.Update(key("esc"))
	assert.True(t, next.(queryModel).cancelled)
}
