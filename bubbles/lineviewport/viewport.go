package lineviewport

import (
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/viewlines"
)

// Option is a configuration option that works in conjunction with [New].
type Option func(*Model)

// WithPrinter sets the [viewlines.Printer] used for rendering.
// If not set, a default printer with line numbers is created.
func WithPrinter(p *viewlines.Printer) Option {
	return func(m *Model) {
		m.printer = p
	}
}

// WithStyle sets the container style for the viewport.
//
//nolint:gocritic // hugeParam: Copying.
func WithStyle(s lipgloss.Style) Option {
	return func(m *Model) {
		m.Style = s
	}
}

// WithGutterWidth reserves horizontal cells for the printer's gutter when
// computing the wrapping column from the viewport width (default: 0).
func WithGutterWidth(w int) Option {
	return func(m *Model) {
		m.gutterWidth = w
	}
}

// New returns a new model over the given collection, with the given
// options.
func New(c *viewlines.Collection, opts ...Option) Model {
	m := Model{
		collection: c,
		KeyMap:     DefaultKeyMap(),
	}

	for _, opt := range opts {
		opt(&m)
	}

	if m.printer == nil {
		m.printer = viewlines.NewPrinter(viewlines.WithLineNumbers())
	}

	return m
}

// Model is the Bubble Tea model for the line viewport.
//
//nolint:recvcheck // tea.Model requires value receivers for Init, Update, View.
type Model struct {
	Style       lipgloss.Style
	KeyMap      KeyMap
	collection  *viewlines.Collection
	printer     *viewlines.Printer
	width       int
	height      int
	yOffset     int
	gutterWidth int
}

// Init satisfies the [tea.Model] interface.
//
//nolint:gocritic // hugeParam: required by tea.Model interface.
func (m Model) Init() tea.Cmd {
	return nil
}

// Height returns the height of the viewport.
func (m *Model) Height() int {
	return m.height
}

// SetHeight sets the height of the viewport.
func (m *Model) SetHeight(h int) {
	m.height = h
	m.clampOffset()
}

// Width returns the width of the viewport.
func (m *Model) Width() int {
	return m.width
}

// SetWidth sets the width of the viewport and re-wraps the collection to
// the matching wrapping column.
func (m *Model) SetWidth(w int) {
	m.width = w

	column := w - m.gutterWidth
	if column < 1 {
		column = 1
	}

	m.collection.SetWrappingColumn(column, 2, true)
	m.clampOffset()
}

// YOffset returns the current vertical scroll offset in output lines.
func (m *Model) YOffset() int {
	return m.yOffset
}

// SetYOffset sets the vertical scroll offset, clamped into range.
func (m *Model) SetYOffset(offset int) {
	m.yOffset = offset
	m.clampOffset()
}

// ScrollDown scrolls down by n output lines.
func (m *Model) ScrollDown(n int) {
	m.SetYOffset(m.yOffset + n)
}

// ScrollUp scrolls up by n output lines.
func (m *Model) ScrollUp(n int) {
	m.SetYOffset(m.yOffset - n)
}

// GotoTop scrolls to the first output line.
func (m *Model) GotoTop() {
	m.SetYOffset(0)
}

// GotoBottom scrolls to the last page of output lines.
func (m *Model) GotoBottom() {
	m.SetYOffset(m.maxYOffset())
}

// AtBottom reports whether the viewport shows the last output line.
func (m *Model) AtBottom() bool {
	return m.yOffset >= m.maxYOffset()
}

func (m *Model) outputLineCount() int {
	count, err := m.collection.OutputLineCount()
	if err != nil {
		return 0
	}

	return count
}

func (m *Model) maxYOffset() int {
	return max(0, m.outputLineCount()-m.height)
}

func (m *Model) clampOffset() {
	m.yOffset = min(max(m.yOffset, 0), m.maxYOffset())
}

// Update satisfies the [tea.Model] interface.
//
//nolint:gocritic // hugeParam: required for tea.Model interface compatibility.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.KeyMap.PageDown):
			m.ScrollDown(m.height)
		case key.Matches(msg, m.KeyMap.PageUp):
			m.ScrollUp(m.height)
		case key.Matches(msg, m.KeyMap.HalfPageDown):
			m.ScrollDown(max(1, m.height/2))
		case key.Matches(msg, m.KeyMap.HalfPageUp):
			m.ScrollUp(max(1, m.height/2))
		case key.Matches(msg, m.KeyMap.Down):
			m.ScrollDown(1)
		case key.Matches(msg, m.KeyMap.Up):
			m.ScrollUp(1)
		case key.Matches(msg, m.KeyMap.GotoTop):
			m.GotoTop()
		case key.Matches(msg, m.KeyMap.GotoBottom):
			m.GotoBottom()
		}

	case tea.WindowSizeMsg:
		m.SetHeight(msg.Height)
		m.SetWidth(msg.Width)
	}

	return m, nil
}

// View satisfies the [tea.Model] interface.
//
//nolint:gocritic // hugeParam: required for tea.Model interface compatibility.
func (m Model) View() string {
	count := m.outputLineCount()
	if count == 0 || m.height <= 0 {
		return m.Style.Render("")
	}

	from := m.yOffset + 1
	to := min(m.yOffset+m.height, count)

	content, err := m.printer.PrintSlice(m.collection, from, to)
	if err != nil {
		return m.Style.Render(err.Error())
	}

	return m.Style.Render(content)
}
