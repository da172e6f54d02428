package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"scrollfeed/internal/common/pagination"
	"scrollfeed/internal/domain/entity"
	"scrollfeed/internal/scroll"
	"scrollfeed/internal/viewport"
)

const (
	// chromeRows is the number of rows taken by the header and footer.
	chromeRows = 4

	// defaultInsertCount is how many records the insert key adds.
	defaultInsertCount = 20

	idColWidth   = 6
	dateColWidth = 16
)

// Inserter prepends n new records to the corpus behind the feed.
type Inserter func(ctx context.Context, n int) error

// Option configures a Model.
type Option func(*Model)

// WithInserter enables the insert key.
func WithInserter(fn Inserter) Option {
	return func(m *Model) { m.insert = fn }
}

// WithInsertCount sets how many records the insert key adds.
func WithInsertCount(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.insertCount = n
		}
	}
}

// WithTitle sets the header title.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// Messages.
type (
	stateMsg  scroll.State
	opDoneMsg struct {
		op  string
		err error
	}
	insertedMsg struct {
		n   int
		err error
	}
)

// Model is the Bubble Tea model for the scroll list.
type Model struct {
	ctx      context.Context
	feed     *scroll.Feed
	observer *viewport.Observer
	updates  chan scroll.State
	unsub    func()

	insert      Inserter
	insertCount int
	title       string

	state   scroll.State
	spinner spinner.Model
	offset  int
	width   int
	height  int
	notice  string
}

// New creates a model bound to feed. Every layout change is reported to observer.
func New(ctx context.Context, feed *scroll.Feed, observer *viewport.Observer, opts ...Option) *Model {
	m := &Model{
		ctx:         ctx,
		feed:        feed,
		observer:    observer,
		updates:     make(chan scroll.State, 1),
		insertCount: defaultInsertCount,
		title:       "scrollfeed",
		state:       feed.State(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(OKStyle)),
		height:      chromeRows + 1,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.unsub = feed.Subscribe(m.offer)
	m.layout()
	return m
}

// offer hands s to the UI loop, replacing any snapshot the loop has not picked up yet.
// It never blocks: the feed calls it while holding its publish lock.
func (m *Model) offer(s scroll.State) {
	for {
		select {
		case m.updates <- s:
			return
		default:
		}
		select {
		case <-m.updates:
		default:
		}
	}
}

// Close stops receiving feed updates.
func (m *Model) Close() {
	m.unsub()
}

// Init starts the spinner and the state listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForState())
}

func (m *Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-m.updates:
			return stateMsg(s)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Update handles input, feed updates and operation results.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateMsg:
		next := scroll.State(msg)
		m.reanchor(m.state.Records, next.Records)
		m.state = next
		m.layout()
		return m, m.waitForState()

	case opDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) && !errors.Is(msg.err, scroll.ErrClosed) {
			m.notice = fmt.Sprintf("%s failed", msg.op)
		}
		return m, nil

	case insertedMsg:
		if msg.err != nil {
			m.notice = "insert failed: " + msg.err.Error()
		} else {
			m.notice = fmt.Sprintf("%d new records available, press r to refresh", msg.n)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

//nolint:gocognit // one branch per binding
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, keys.PageDown):
		m.scrollBy(m.listHeight())
	case key.Matches(msg, keys.PageUp):
		m.scrollBy(-m.listHeight())
	case key.Matches(msg, keys.Top):
		m.scrollBy(-m.offset)
	case key.Matches(msg, keys.Bottom):
		m.scrollBy(len(m.state.Records))
	case key.Matches(msg, keys.Refresh):
		return m, m.run("refresh", m.feed.Refresh)
	case key.Matches(msg, keys.HardReload):
		m.scrollBy(-m.offset)
		return m, m.run("reload", m.feed.HardReload)
	case key.Matches(msg, keys.LoadMore):
		return m, m.run("load more", m.feed.LoadMore)
	case key.Matches(msg, keys.AutoRefresh):
		m.feed.ToggleAutoRefresh()
	case key.Matches(msg, keys.Reset):
		m.feed.Reset()
		m.offset = 0
	case key.Matches(msg, keys.Insert):
		if m.insert != nil {
			return m, m.insertRecords()
		}
	}
	return m, nil
}

func (m *Model) run(op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(m.ctx)}
	}
}

func (m *Model) insertRecords() tea.Cmd {
	n := m.insertCount
	return func() tea.Msg {
		return insertedMsg{n: n, err: m.insert(m.ctx, n)}
	}
}

// reanchor moves offset so the rows on screen stay put when next prepends
// records ahead of prev. A list whose head was replaced returns to the top.
func (m *Model) reanchor(prev, next []entity.Record) {
	if m.offset == 0 || len(prev) == 0 || len(next) == 0 || next[0].ID == prev[0].ID {
		return
	}
	added := len(next) - len(prev)
	if added > 0 && next[added].ID == prev[0].ID {
		m.offset += added
		return
	}
	m.offset = 0
}

func (m *Model) scrollBy(delta int) {
	m.offset += delta
	m.layout()
}

func (m *Model) listHeight() int {
	return max(m.height-chromeRows, 1)
}

// layout clamps the scroll offset and reports the geometry. The sentinel is the row
// after the last record, so the offset may go one row past a full last screen.
func (m *Model) layout() {
	maxOffset := max(len(m.state.Records)+1-m.listHeight(), 0)
	m.offset = min(max(m.offset, 0), maxOffset)
	m.observer.Update(viewport.Geometry{
		Offset:        m.offset,
		Height:        m.listHeight(),
		ContentHeight: len(m.state.Records),
	})
}

// View renders the header, the visible rows and the footer.
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")

	rows := m.listHeight()
	records := m.state.Records
	for i := m.offset; i < m.offset+rows; i++ {
		switch {
		case i < len(records):
			sb.WriteString(m.renderRecord(i))
		case i == len(records):
			sb.WriteString(m.renderSentinel())
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderStatus())
	sb.WriteString("\n")
	sb.WriteString(m.renderHelp())
	return sb.String()
}

func (m *Model) renderHeader() string {
	auto := MutedStyle.Render("auto-refresh off")
	if m.state.AutoRefresh {
		auto = OKStyle.Render("auto-refresh on")
	}
	title := HeaderStyle.Render(m.title)
	counts := fmt.Sprintf("%s %s  %s %s  %s %s",
		LabelStyle.Render("loaded"), ValueStyle.Render(fmt.Sprint(len(m.state.Records))),
		LabelStyle.Render("total"), ValueStyle.Render(fmt.Sprint(m.state.TotalCount)),
		LabelStyle.Render("page"), ValueStyle.Render(fmt.Sprintf("%d/%d", m.state.Cursor,
			pagination.CalculateTotalPages(int64(m.state.TotalCount), m.feed.Limit()))))
	return fmt.Sprintf("%s  %s  %s\n", title, counts, auto)
}

func (m *Model) renderRecord(i int) string {
	r := m.state.Records[i]
	line := fmt.Sprintf("%*d  %-*s  %s",
		idColWidth, r.ID,
		dateColWidth, r.CreatedAt.Format("2006-01-02 15:04"),
		r.Title)
	if r.Description != "" {
		line += " · " + r.Description
	}
	return truncate(line, m.width)
}

func (m *Model) renderSentinel() string {
	switch {
	case m.state.Loading():
		return fmt.Sprintf("%s loading more...", m.spinner.View())
	case m.state.Err != nil:
		return ErrorStyle.Render("failed to load more, press l to retry")
	case !m.state.HasMore:
		return MutedStyle.Render("end of list")
	default:
		return ""
	}
}

func (m *Model) renderStatus() string {
	switch {
	case m.state.Refreshing():
		return fmt.Sprintf("%s refreshing...", m.spinner.View())
	case m.state.Err != nil:
		return ErrorStyle.Render(truncate("error: "+m.state.Err.Error(), m.width))
	case m.notice != "":
		return OKStyle.Render(m.notice)
	default:
		return ""
	}
}

func (m *Model) renderHelp() string {
	parts := make([]string, 0, len(keys.help()))
	for _, b := range keys.help() {
		if b.Help().Desc == keys.Insert.Help().Desc && m.insert == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return MutedStyle.Render(truncate(strings.Join(parts, " • "), m.width))
}

// truncate cuts s to width runes; width <= 0 means unlimited.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
