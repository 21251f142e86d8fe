// Package tui implements ktail's interactive prompts: the pick lists used to
// choose namespaces, pods, and containers, and the paused-mode history
// search. All prompts run as short-lived bubbletea programs; the live
// streaming view deliberately does not go through bubbletea.
package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the operator backs out of a prompt.
var ErrCancelled = errors.New("selection cancelled")

// defaultListHeight caps visible rows before scrolling kicks in
const defaultListHeight = 15

type pickItem struct {
	label    string
	selected bool
}

// multiModel is a multi-select pick list.
type multiModel struct {
	title     string
	items     []pickItem
	cursor    int
	offset    int
	height    int
	confirmed bool
	cancelled bool
}

func newMultiModel(title string, options []string) multiModel {
	items := make([]pickItem, len(options))
	for i, opt := range options {
		items[i] = pickItem{label: opt}
	}
	return multiModel{title: title, items: items, height: defaultListHeight}
}

// Init initializes the model
func (m multiModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m multiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			m.clampScroll()
		case " ":
			if len(m.items) > 0 {
				m.items[m.cursor].selected = !m.items[m.cursor].selected
			}
		case "a":
			for i := range m.items {
				m.items[i].selected = true
			}
		case "n":
			for i := range m.items {
				m.items[i].selected = false
			}
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the pick list
func (m multiModel) View() string {
	if m.confirmed || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.items))
	for i := m.offset; i < end; i++ {
		item := m.items[i]

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("▸ ")
		}
		check := "[ ]"
		label := item.label
		if item.selected {
			check = selectedStyle.Render("[x]")
			label = selectedStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, check, label)
	}

	b.WriteString(helpStyle.Render("space toggle · a all · n none · enter confirm · q cancel"))
	return b.String()
}

func (m *multiModel) clampScroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// selectModel is a single-select pick list.
type selectModel struct {
	title     string
	options   []string
	cursor    int
	offset    int
	height    int
	confirmed bool
	cancelled bool
}

func newSelectModel(title string, options []string) selectModel {
	return selectModel{title: title, options: options, height: defaultListHeight}
}

// Init initializes the model
func (m selectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
			m.clampScroll()
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the pick list
func (m selectModel) View() string {
	if m.confirmed || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.options))
	for i := m.offset; i < end; i++ {
		cursor := "  "
		label := m.options[i]
		if i == m.cursor {
			cursor = cursorStyle.Render("▸ ")
			label = selectedStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s%s\n", cursor, label)
	}

	b.WriteString(helpStyle.Render("enter select · q cancel"))
	return b.String()
}

func (m *selectModel) clampScroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func listHeight(terminalHeight int) int {
	// Leave room for the title and help lines.
	h := terminalHeight - 4
	if h < 1 {
		h = 1
	}
	if h > defaultListHeight {
		h = defaultListHeight
	}
	return h
}

// MultiSelect prompts for zero or more choices and returns the selected
// indices in option order.
func MultiSelect(title string, options []string) ([]int, error) {
	final, err := tea.NewProgram(newMultiModel(title, options)).Run()
	if err != nil {
		return nil, err
	}
	m := final.(multiModel)
	if m.cancelled {
		return nil, ErrCancelled
	}

	var picked []int
	for i, item := range m.items {
		if item.selected {
			picked = append(picked, i)
		}
	}
	return picked, nil
}

// Select prompts for exactly one choice and returns its index.
func Select(title string, options []string) (int, error) {
	final, err := tea.NewProgram(newSelectModel(title, options)).Run()
	if err != nil {
		return 0, err
	}
	m := final.(selectModel)
	if m.cancelled {
		return 0, ErrCancelled
	}
	return m.cursor, nil
}
