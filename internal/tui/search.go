package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charliek/ktail/internal/domain"
)

// SearchPrompt is the paused-mode interaction: a query input followed by a
// read-only browse list over the matches. It satisfies stream.SearchPrompt.
type SearchPrompt struct{}

// Query asks the operator for a search string. ok is false when the prompt
// was cancelled with esc.
func (SearchPrompt) Query() (string, bool, error) {
	ti := textinput.New()
	ti.Placeholder = "search history..."
	ti.Prompt = "/ "
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()

	final, err := tea.NewProgram(queryModel{input: ti}).Run()
	if err != nil {
		return "", false, err
	}
	m := final.(queryModel)
	if m.cancelled {
		return "", false, nil
	}
	return m.input.Value(), true, nil
}

// Browse presents the matches as a scrollable, selectable list. Selection is
// read-only; it exists so the operator can scan entries.
func (SearchPrompt) Browse(matches []domain.LogMessage) error {
	_, err := tea.NewProgram(newBrowseModel(matches)).Run()
	return err
}

type queryModel struct {
	input     textinput.Model
	confirmed bool
	cancelled bool
}

// Init initializes the model
func (m queryModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m queryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the query input
func (m queryModel) View() string {
	if m.confirmed || m.cancelled {
		return ""
	}
	return m.input.View() + helpStyle.Render("\nenter search · esc cancel")
}

type browseModel struct {
	matches []domain.LogMessage
	cursor  int
	offset  int
	height  int
	done    bool
}

func newBrowseModel(matches []domain.LogMessage) browseModel {
	return browseModel{matches: matches, height: defaultListHeight}
}

// Init initializes the model
func (m browseModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = listHeight(msg.Height)
		m.clampScroll()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.clampScroll()
		case "down", "j":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			m.clampScroll()
		case "enter", "q", "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the match list
func (m browseModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d matches", len(m.matches))))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.matches))
	for i := m.offset; i < end; i++ {
		match := m.matches[i]

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("▸ ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, prefixStyle.Render(match.Prefix()), match.Text)
	}

	b.WriteString(helpStyle.Render("↑/↓ scroll · enter/q resume streaming"))
	return b.String()
}

func (m *browseModel) clampScroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}
