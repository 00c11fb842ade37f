package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"drawboard/pkg/board"
	"drawboard/pkg/element"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) write(s string) error {
	f.text = s
	return f.err
}

type harness struct {
	m     model
	b     *board.Board
	hooks *hooks
	clip  *fakeClipboard
}

func newHarness(t *testing.T, opts board.Options, settings Settings) *harness {
	t.Helper()
	h := newHooks()
	vp := &viewport{}
	opts.OnDraw = h.onDraw
	opts.Listener = h.onEvent
	opts.ScrollContainer = vp
	b, err := board.New(opts)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	clip := &fakeClipboard{}
	if settings.Clipboard == nil {
		settings.Clipboard = clip.write
	}
	hs := &harness{m: newModel(b, h, vp, opts, settings), b: b, hooks: h, clip: clip}
	hs.send(t, tea.WindowSizeMsg{Width: 60, Height: 20})
	return hs
}

func (hs *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := hs.m.Update(msg)
	m, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	hs.m = m
	return cmd
}

func (hs *harness) key(t *testing.T, k string) tea.Cmd {
	t.Helper()
	return hs.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func (hs *harness) mouse(t *testing.T, x, y int, action tea.MouseAction) {
	t.Helper()
	hs.send(t, tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
}

func (hs *harness) controller(t *testing.T, fn func(*board.Controller)) {
	t.Helper()
	if !hs.b.Sync(fn) {
		t.Fatal("board loop stopped")
	}
}

func (hs *harness) drainNotices() []string {
	var out []string
	for {
		select {
		case n := <-hs.hooks.notices:
			out = append(out, n.text)
		default:
			return out
		}
	}
}

func testOptions() board.Options {
	opts := board.DefaultOptions()
	opts.Width, opts.Height = 400, 300
	return opts
}

func TestMouseDrawsElement(t *testing.T) {
	hs := newHarness(t, testOptions(), Settings{})
	hs.mouse(t, 2, 2, tea.MouseActionPress)
	hs.mouse(t, 6, 4, tea.MouseActionMotion)
	hs.mouse(t, 10, 6, tea.MouseActionMotion)
	hs.mouse(t, 10, 6, tea.MouseActionRelease)

	var elems []element.Element
	hs.controller(t, func(c *board.Controller) { elems = c.Elements() })
	want := element.Element{X: 16, Y: 32, Width: 64, Height: 64}
	if len(elems) != 1 {
		t.Fatalf("elements = %+v, want one", elems)
	}
	e := elems[0]
	if e.X != want.X || e.Y != want.Y || e.Width != want.Width || e.Height != want.Height {
		t.Errorf("element = %+v, want %+v", e, want)
	}
	if hs.m.pressed {
		t.Error("pressed still set after release")
	}

	notices := hs.drainNotices()
	if len(notices) == 0 || notices[len(notices)-1] != "added rectangle #0" {
		t.Errorf("notices = %q", notices)
	}

	// The latest scene reaches the view.
	select {
	case s := <-hs.hooks.scenes:
		hs.send(t, sceneMsg(s))
	default:
		t.Fatal("no scene delivered")
	}
	view := hs.m.View()
	if !strings.Contains(view, " +-------+") {
		t.Errorf("view does not show the element:\n%s", view)
	}
}

func TestMousePressOnStatusBarIgnored(t *testing.T) {
	hs := newHarness(t, testOptions(), Settings{})
	hs.mouse(t, 2, 19, tea.MouseActionPress)
	if hs.m.pressed {
		t.Error("press on the status row started a gesture")
	}
}

func TestMouseWheelPans(t *testing.T) {
	hs := newHarness(t, testOptions(), Settings{})
	hs.send(t, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	hs.send(t, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	hs.send(t, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if got := hs.m.view.pan(); got != (point{X: 0, Y: 1}) {
		t.Errorf("pan = %v, want {0 1}", got)
	}
}

func TestPanKeys(t *testing.T) {
	tests := []struct {
		keys []string
		want point
	}{
		{[]string{"l"}, point{1, 0}},
		{[]string{"L"}, point{fastPanSpeed, 0}},
		{[]string{"j", "j", "k"}, point{0, 1}},
		{[]string{"h"}, point{0, 0}},
		{[]string{"L", "h"}, point{fastPanSpeed - 1, 0}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.keys, ""), func(t *testing.T) {
			hs := newHarness(t, testOptions(), Settings{})
			for _, k := range tt.keys {
				hs.key(t, k)
			}
			if got := hs.m.view.pan(); got != tt.want {
				t.Errorf("pan = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPanShiftsClientMapping(t *testing.T) {
	hs := newHarness(t, testOptions(), Settings{})
	hs.key(t, "l")
	hs.key(t, "j")

	var local element.Point
	hs.controller(t, func(c *board.Controller) { local = c.Surface().ToLocal(cellToClient(2, 2)) })
	if local != (element.Point{X: 24, Y: 48}) {
		t.Errorf("ToLocal = %v, want {24 48}", local)
	}
}

func TestSettingKeys(t *testing.T) {
	hs := newHarness(t, testOptions(), Settings{})
	hs.key(t, "2")
	hs.key(t, "g")
	hs.key(t, "c")

	var (
		shape element.Shape
		snap  bool
		draft element.Element
	)
	hs.controller(t, func(c *board.Controller) {
		shape, snap, draft = c.Shape(), c.GridSizeMouseStep(), c.Draft()
	})
	if shape != element.Ellipse {
		t.Errorf("shape = %s, want ellipse", shape)
	}
	if !snap {
		t.Error("grid snap not enabled")
	}
	if draft.Color != palette[1] || draft.Shape != element.Ellipse {
		t.Errorf("draft = %+v, want %s ellipse", draft, palette[1])
	}
	if hs.m.shape != element.Ellipse || !hs.m.snap || hs.m.selectedColor != 1 {
		t.Errorf("model state = %s %v %d", hs.m.shape, hs.m.snap, hs.m.selectedColor)
	}
	if !strings.Contains(hs.m.statusBar(), "ellipse") {
		t.Errorf("status bar = %q", hs.m.statusBar())
	}
}

func TestSaveWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	hs := newHarness(t, testOptions(), Settings{SavePath: path})
	hs.key(t, "w")
	hs.controller(t, func(*board.Controller) {})

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PNG not written: %v", err)
	}
	notices := hs.drainNotices()
	if len(notices) == 0 || notices[len(notices)-1] != "saved "+path {
		t.Errorf("notices = %q", notices)
	}
}

func TestSaveFailureReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	hs := newHarness(t, testOptions(), Settings{SavePath: path})
	hs.key(t, "w")
	hs.controller(t, func(*board.Controller) {})

	select {
	case n := <-hs.hooks.notices:
		if !n.err {
			t.Errorf("notice = %+v, want an error", n)
		}
		hs.send(t, noticeMsg(n))
		if hs.m.errorMessage == "" {
			t.Error("error not shown")
		}
	default:
		t.Fatal("no notice")
	}
}

func TestYank(t *testing.T) {
	hs := newHarness(t, testOptions(), Settings{})
	if cmd := hs.key(t, "y"); cmd != nil {
		t.Error("yank without a selection returned a command")
	}
	if hs.m.errorMessage != "nothing selected" {
		t.Errorf("errorMessage = %q", hs.m.errorMessage)
	}

	hs.m.scene = board.Scene{
		Elements: []element.Element{{X: 1, Y: 2, Width: 3, Height: 4, Shape: element.Rectangle, Color: "red"}},
		Selected: 0,
	}
	cmd := hs.key(t, "y")
	if cmd == nil {
		t.Fatal("yank returned no command")
	}
	hs.send(t, cmd())
	if hs.clip.text != "rectangle 1,2 3x4 red" {
		t.Errorf("clipboard = %q", hs.clip.text)
	}
	if hs.m.message != "yanked rectangle 1,2 3x4 red" {
		t.Errorf("message = %q", hs.m.message)
	}

	hs.clip.err = errors.New("no clipboard")
	hs.send(t, hs.key(t, "y")())
	if !strings.Contains(hs.m.errorMessage, "no clipboard") {
		t.Errorf("errorMessage = %q", hs.m.errorMessage)
	}
}

func TestHelpAndQuit(t *testing.T) {
	hs := newHarness(t, testOptions(), Settings{})
	hs.key(t, "?")
	if !hs.m.help || !strings.Contains(hs.m.View(), "toggle grid snap") {
		t.Fatal("help not shown")
	}
	// Keys other than close are swallowed while help is open.
	hs.key(t, "l")
	if hs.m.view.pan() != (point{}) {
		t.Error("pan applied under help")
	}
	hs.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	if hs.m.help {
		t.Error("esc did not close help")
	}

	cmd := hs.key(t, "q")
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestOnDrawKeepsLatest(t *testing.T) {
	h := newHooks()
	for i := 1; i <= 3; i++ {
		h.onDraw(board.Scene{Width: float64(i)})
	}
	if s := <-h.scenes; s.Width != 3 {
		t.Errorf("scene width = %v, want 3", s.Width)
	}
	select {
	case <-h.scenes:
		t.Error("stale scene left in channel")
	default:
	}
}

func TestNotifyDropsOnOverflow(t *testing.T) {
	h := newHooks()
	for i := 0; i < cap(h.notices)+10; i++ {
		h.notify("x", false)
	}
	if len(h.notices) != cap(h.notices) {
		t.Errorf("notices = %d, want %d", len(h.notices), cap(h.notices))
	}
}

func TestDescribeEvent(t *testing.T) {
	e := element.Element{X: 1, Y: 2, Width: 30, Height: 40, Shape: element.Ellipse}
	tests := []struct {
		event board.Event
		want  string
	}{
		{board.Event{Kind: board.EventAdd, Index: 2, Element: e}, "added ellipse #2"},
		{board.Event{Kind: board.EventClick, Index: 0, Element: e, ClickCoords: &element.Point{X: 5, Y: 6}}, "click #0 at 5,6"},
		{board.Event{Kind: board.EventDragEnd, Index: 1, Element: e}, "drag-end #1: 1,2 30x40"},
		{board.Event{Kind: board.EventFocus, Index: 3, Element: e}, "focus #3"},
	}
	for _, tt := range tests {
		if got := describeEvent(tt.event); got != tt.want {
			t.Errorf("describeEvent(%s) = %q, want %q", tt.event.Kind, got, tt.want)
		}
	}
}

func TestViewportScrollOffset(t *testing.T) {
	var vp viewport
	vp.panBy(2, 3)
	vp.panBy(-5, 0)
	x, y := vp.ScrollOffset()
	if x != 0 || y != 3*cellHeight {
		t.Errorf("ScrollOffset() = %v, %v", x, y)
	}
}

func TestSaveTextView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.png")
	hs := newHarness(t, testOptions(), Settings{SavePath: path})
	hs.m.scene = board.Scene{
		Elements: []element.Element{{X: 8, Y: 16, Width: 32, Height: 32, Shape: element.Rectangle, Color: element.Transparent}},
		Selected: -1, Hovered: -1, Width: 480, Height: 300,
	}
	hs.key(t, "t")

	want := filepath.Join(filepath.Dir(path), "board.txt")
	if hs.m.message != "saved "+want {
		t.Fatalf("message = %q, error = %q", hs.m.message, hs.m.errorMessage)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) < 4 || lines[1] != " +---+" || lines[2] != " |   |" {
		t.Errorf("text view:\n%s", data)
	}
}
