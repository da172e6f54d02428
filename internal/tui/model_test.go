package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrollfeed/internal/domain/entity"
	"scrollfeed/internal/infra/adapter/persistence/memory"
	"scrollfeed/internal/observability/logging"
	"scrollfeed/internal/scroll"
	"scrollfeed/internal/usecase/record"
	"scrollfeed/internal/viewport"
)

type fixture struct {
	model    *Model
	feed     *scroll.Feed
	observer *viewport.Observer
	store    *memory.RecordStore
}

func newFixture(t *testing.T, corpus int, opts ...Option) *fixture {
	t.Helper()
	store := memory.NewRecordStore()
	store.Seed(corpus)
	svc := &record.Service{Repo: store, RefreshInsertCount: record.DefaultRefreshInsertCount}

	feed, err := scroll.Load(context.Background(), svc,
		scroll.WithRefreshSignal(true), scroll.WithLogger(logging.Discard()))
	require.NoError(t, err)
	t.Cleanup(feed.Close)

	observer := viewport.NewObserver(viewport.DefaultMargin)
	m := New(context.Background(), feed, observer, opts...)
	t.Cleanup(m.Close)
	return &fixture{model: m, feed: feed, observer: observer, store: store}
}

func (f *fixture) resize(w, h int) {
	f.model.Update(tea.WindowSizeMsg{Width: w, Height: h})
}

func (f *fixture) press(t *testing.T, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = f.model.Update(keyMsg(k))
	}
	return cmd
}

// pump applies the latest published state, as the program loop would.
func (f *fixture) pump() {
	select {
	case s := <-f.model.updates:
		f.model.Update(stateMsg(s))
	default:
	}
}

// exec runs cmd synchronously and feeds its message back.
func (f *fixture) exec(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	f.model.Update(msg)
	f.pump()
	return msg
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func TestModel_InitialView(t *testing.T) {
	f := newFixture(t, 200)
	f.resize(120, 14)

	view := f.model.View()
	assert.Contains(t, view, "Item 1")
	assert.Contains(t, view, "Item 10")
	assert.NotContains(t, view, "Item 11 ")
	assert.Contains(t, view, "auto-refresh off")

	g := f.observer.Geometry()
	assert.Equal(t, viewport.Geometry{Offset: 0, Height: 10, ContentHeight: 20}, g)
	assert.False(t, f.observer.Visible())
}

func TestModel_ScrollingReportsGeometry(t *testing.T) {
	f := newFixture(t, 200)
	f.resize(120, 14)

	f.press(t, "j", "j", "down")
	assert.Equal(t, 3, f.observer.Geometry().Offset)
	assert.False(t, f.observer.Visible())

	f.press(t, "pgdown")
	assert.Equal(t, 11, f.observer.Geometry().Offset, "clamped one row past the last full screen")
	assert.True(t, f.observer.Visible())

	f.press(t, "g")
	assert.Zero(t, f.observer.Geometry().Offset)
	f.press(t, "G")
	assert.Equal(t, 11, f.observer.Geometry().Offset)
}

func TestModel_LoadMoreKey(t *testing.T) {
	f := newFixture(t, 200)
	f.resize(120, 14)

	msg := f.exec(t, f.press(t, "l"))

	assert.Equal(t, opDoneMsg{op: "load more"}, msg)
	assert.Len(t, f.model.state.Records, 40)
	assert.Equal(t, 40, f.observer.Geometry().ContentHeight)
	assert.Contains(t, f.model.renderHeader(), "40")
}

func TestModel_RefreshAndReset(t *testing.T) {
	f := newFixture(t, 200)
	f.resize(120, 14)

	f.exec(t, f.press(t, "r"))
	require.Len(t, f.model.state.Records, 40)
	assert.Equal(t, int64(220), f.model.state.Records[0].ID)
	assert.Contains(t, f.model.View(), "Item 220")

	f.press(t, "j", "x")
	f.pump()
	assert.Len(t, f.model.state.Records, 20)
	assert.Equal(t, int64(1), f.model.state.Records[0].ID)
	assert.Zero(t, f.observer.Geometry().Offset)
}

func TestModel_RefreshKeepsViewedRows(t *testing.T) {
	tests := []struct {
		name    string
		refresh func(t *testing.T, f *fixture)
	}{
		{
			name:    "refresh key",
			refresh: func(t *testing.T, f *fixture) { f.exec(t, f.press(t, "r")) },
		},
		{
			name: "feed refresh from auto-refresh",
			refresh: func(t *testing.T, f *fixture) {
				require.NoError(t, f.feed.Refresh(context.Background()))
				f.pump()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 200)
			f.resize(120, 14)
			f.exec(t, f.press(t, "l"))
			require.Len(t, f.model.state.Records, 40)

			f.model.scrollBy(15)
			top := f.model.state.Records[f.model.offset].ID
			require.Equal(t, int64(16), top)

			tt.refresh(t, f)

			require.Len(t, f.model.state.Records, 60)
			assert.Equal(t, 35, f.model.offset)
			assert.Equal(t, top, f.model.state.Records[f.model.offset].ID)
			assert.Equal(t, 35, f.observer.Geometry().Offset)
			assert.NotContains(t, f.model.View(), "Item 220")
		})
	}
}

func TestModel_LoadMoreKeepsOffset(t *testing.T) {
	f := newFixture(t, 200)
	f.resize(120, 14)

	f.model.scrollBy(5)
	f.exec(t, f.press(t, "l"))

	require.Len(t, f.model.state.Records, 40)
	assert.Equal(t, 5, f.model.offset)
}

func TestModel_HardReload(t *testing.T) {
	f := newFixture(t, 200)
	f.resize(120, 14)

	f.exec(t, f.press(t, "l"))
	require.Len(t, f.model.state.Records, 40)
	f.model.scrollBy(15)

	f.exec(t, f.press(t, "R"))
	assert.Len(t, f.model.state.Records, 20)
	assert.Equal(t, 1, f.model.state.Cursor)
	assert.Zero(t, f.model.offset)
	assert.Zero(t, f.observer.Geometry().Offset)
}

func TestModel_ReanchorReplacedHead(t *testing.T) {
	f := newFixture(t, 200)
	f.resize(120, 14)
	f.exec(t, f.press(t, "l"))
	f.model.scrollBy(15)

	prev := f.model.state.Records
	f.model.reanchor(prev, []entity.Record{{ID: 900}, {ID: 901}})
	assert.Zero(t, f.model.offset)
}

func TestModel_ToggleAutoRefresh(t *testing.T) {
	f := newFixture(t, 200)

	f.press(t, "a")
	f.pump()
	assert.True(t, f.model.state.AutoRefresh)
	assert.Contains(t, f.model.View(), "auto-refresh on")

	f.press(t, "a")
	f.pump()
	assert.False(t, f.model.state.AutoRefresh)
}

func TestModel_EndOfList(t *testing.T) {
	f := newFixture(t, 5)
	f.resize(120, 14)

	assert.True(t, f.observer.Visible(), "short list shows the sentinel")
	assert.Contains(t, f.model.View(), "end of list")
}

func TestModel_ErrorShowsRetryHint(t *testing.T) {
	failing := scroll.NewFeed(providerFunc(func(context.Context, entity.PageRequest) (entity.FetchResult, error) {
		return entity.FetchResult{}, errors.New("boom")
	}), entity.FetchResult{HasMore: true, TotalCount: 200}, scroll.WithLogger(logging.Discard()))
	t.Cleanup(failing.Close)
	m := New(context.Background(), failing, viewport.NewObserver(0))
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 14})

	_, cmd := m.Update(keyMsg("l"))
	m.Update(cmd())
	m.Update(stateMsg(failing.State()))

	view := m.View()
	assert.Contains(t, view, "press l to retry")
	assert.Contains(t, view, "error:")
	assert.Equal(t, "load more failed", m.notice)
}

func TestModel_Insert(t *testing.T) {
	var inserted int
	f := newFixture(t, 200, WithInsertCount(3), WithInserter(func(_ context.Context, n int) error {
		inserted = n
		return nil
	}))

	msg := f.exec(t, f.press(t, "n"))

	assert.Equal(t, insertedMsg{n: 3}, msg)
	assert.Equal(t, 3, inserted)
	assert.Contains(t, f.model.View(), "3 new records available")
}

func TestModel_InsertDisabledWithoutInserter(t *testing.T) {
	f := newFixture(t, 200)

	assert.Nil(t, f.press(t, "n"))
	assert.NotContains(t, f.model.renderHelp(), "new records")
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t, 10)

	for _, k := range []string{"q", "ctrl+c"} {
		cmd := f.press(t, k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestModel_OfferKeepsLatest(t *testing.T) {
	f := newFixture(t, 10)

	f.model.offer(scroll.State{Cursor: 1})
	f.model.offer(scroll.State{Cursor: 2})
	f.model.offer(scroll.State{Cursor: 3})

	s := <-f.model.updates
	assert.Equal(t, 3, s.Cursor)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 0, "hello"},
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"héllo wörld", 8, "héllo..."},
		{"hello", 2, "he"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.width))
	}
}

type providerFunc func(context.Context, entity.PageRequest) (entity.FetchResult, error)

func (p providerFunc) FetchPage(ctx context.Context, req entity.PageRequest) (entity.FetchResult, error) {
	return p(ctx, req)
}
