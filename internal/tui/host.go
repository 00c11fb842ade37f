// Package tui is a terminal host for a board. Terminal mouse input drives the
// board's pointer events and the scene is previewed as character cells, one
// cell per 8x16 field pixels.
package tui

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"drawboard/pkg/board"
	"drawboard/pkg/element"
)

// Settings configures the terminal host.
type Settings struct {
	// SavePath is where 'w' writes the PNG export.
	SavePath string
	Logger   *log.Logger
	// Clipboard receives yanked text. Defaults to clipboard.WriteAll.
	Clipboard func(string) error
}

type notice struct {
	text string
	err  bool
}

type (
	sceneMsg  board.Scene
	noticeMsg notice
	yankedMsg notice
)

// hooks carries board callbacks across to the program. The board goroutine
// never blocks on them: scenes keep only the latest, notices drop on overflow.
type hooks struct {
	scenes  chan board.Scene
	notices chan notice
}

func newHooks() *hooks {
	return &hooks{
		scenes:  make(chan board.Scene, 1),
		notices: make(chan notice, 32),
	}
}

func (h *hooks) onDraw(s board.Scene) {
	for {
		select {
		case h.scenes <- s:
			return
		default:
		}
		select {
		case <-h.scenes:
		default:
		}
	}
}

func (h *hooks) notify(text string, isErr bool) {
	select {
	case h.notices <- notice{text: text, err: isErr}:
	default:
	}
}

func (h *hooks) onEvent(e board.Event) {
	h.notify(describeEvent(e), false)
}

func describeEvent(e board.Event) string {
	switch e.Kind {
	case board.EventAdd:
		return fmt.Sprintf("added %s #%d", e.Element.Shape, e.Index)
	case board.EventClick:
		if e.ClickCoords != nil {
			return fmt.Sprintf("click #%d at %g,%g", e.Index, e.ClickCoords.X, e.ClickCoords.Y)
		}
	case board.EventResizeEnd, board.EventDragEnd:
		return fmt.Sprintf("%s #%d: %g,%g %gx%g", e.Kind, e.Index,
			e.Element.X, e.Element.Y, e.Element.Width, e.Element.Height)
	}
	return fmt.Sprintf("%s #%d", e.Kind, e.Index)
}

func waitForScene(ch <-chan board.Scene) tea.Cmd {
	return func() tea.Msg { return sceneMsg(<-ch) }
}

func waitForNotice(ch <-chan notice) tea.Cmd {
	return func() tea.Msg { return noticeMsg(<-ch) }
}

// viewport is the pan offset in cells. The board reads it from its own
// goroutine through ScrollOffset.
type viewport struct {
	x, y atomic.Int64
}

func (v *viewport) ScrollOffset() (x, y float64) {
	return float64(v.x.Load() * cellWidth), float64(v.y.Load() * cellHeight)
}

func (v *viewport) pan() point {
	return point{X: int(v.x.Load()), Y: int(v.y.Load())}
}

func (v *viewport) panBy(dx, dy int) {
	v.x.Store(max(0, v.x.Load()+int64(dx)))
	v.y.Store(max(0, v.y.Load()+int64(dy)))
}

// Run starts a board from opts and a terminal program on top of it. It
// returns when the user quits or ctx is done.
func Run(ctx context.Context, opts board.Options, settings Settings) error {
	h := newHooks()
	vp := &viewport{}
	opts.OnDraw = h.onDraw
	opts.Listener = h.onEvent
	opts.Origin = element.Point{}
	opts.ScrollContainer = vp

	b, err := board.New(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	m := newModel(b, h, vp, opts, settings)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	cancel()
	<-done
	return err
}

func newModel(b *board.Board, h *hooks, vp *viewport, opts board.Options, settings Settings) model {
	if settings.Logger == nil {
		settings.Logger = log.New(io.Discard)
	}
	if settings.Clipboard == nil {
		settings.Clipboard = clipboard.WriteAll
	}
	m := model{
		board:         b,
		hooks:         h,
		view:          vp,
		settings:      settings,
		shape:         opts.Shape,
		snap:          opts.GridSizeMouseStep,
		selectedColor: -1,
		scene:         board.Scene{Selected: -1, Hovered: -1, Width: opts.Width, Height: opts.Height},
	}
	for i, c := range palette {
		if c == opts.InitialElementColor {
			m.selectedColor = i
		}
	}
	return m
}
