package board

import (
	"context"
	"time"

	"drawboard/pkg/element"
)

// Coalescing intervals for pointer moves. Only the last move inside an
// interval is delivered.
const (
	HoverInterval = 8 * time.Millisecond
	MoveInterval  = 5 * time.Millisecond
)

type inputKind int

const (
	inputDown inputKind = iota
	inputUp
	inputMove
	inputHover
	inputCall
)

type input struct {
	kind   inputKind
	client element.Point
	call   func(*Controller)
}

// Board runs a Controller on a single goroutine. Pointer input, configuration
// calls and background image results share one queue and are handled in
// order.
// Hover moves and gesture moves are coalesced separately; a pending hover is
// flushed before a press and a pending gesture move before a release, so
// neither is lost.
type Board struct {
	ctrl   *Controller
	inputs chan input
	done   chan struct{}
}

// New builds a Board from opts. Call Run to start processing.
func New(opts Options) (*Board, error) {
	b := &Board{
		inputs: make(chan input, 64),
		done:   make(chan struct{}),
	}
	c, err := newController(opts, b.post)
	if err != nil {
		return nil, err
	}
	b.ctrl = c
	return b, nil
}

func (b *Board) post(fn func()) {
	b.Do(func(*Controller) { fn() })
}

func (b *Board) send(in input) {
	select {
	case b.inputs <- in:
	case <-b.done:
	}
}

// PointerDown queues a button press at client coordinates.
func (b *Board) PointerDown(client element.Point) { b.send(input{kind: inputDown, client: client}) }

// PointerUp queues a button release.
func (b *Board) PointerUp() { b.send(input{kind: inputUp}) }

// PointerMove queues a window-level move, used while a gesture is active.
func (b *Board) PointerMove(client element.Point) { b.send(input{kind: inputMove, client: client}) }

// Hover queues a move over the field, used for the hover scan.
func (b *Board) Hover(client element.Point) { b.send(input{kind: inputHover, client: client}) }

// Do queues fn to run on the loop goroutine. It returns once fn is queued.
func (b *Board) Do(fn func(*Controller)) {
	b.send(input{kind: inputCall, call: fn})
}

// Sync runs fn on the loop goroutine and waits for it to return. It returns
// false if the loop stopped first.
func (b *Board) Sync(fn func(*Controller)) bool {
	ran := make(chan struct{})
	select {
	case b.inputs <- input{kind: inputCall, call: func(c *Controller) { fn(c); close(ran) }}:
	case <-b.done:
		return false
	}
	select {
	case <-ran:
		return true
	case <-b.done:
		return false
	}
}

// Run mounts the controller and processes queued work until ctx is done.
func (b *Board) Run(ctx context.Context) error {
	defer close(b.done)
	defer b.ctrl.Close()

	c := b.ctrl
	c.Mount()

	var (
		hover, move     debouncer
		hoverAt, moveAt element.Point
	)
	defer hover.stop()
	defer move.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case in := <-b.inputs:
			switch in.kind {
			case inputHover:
				hoverAt = in.client
				hover.reset(HoverInterval)
			case inputMove:
				moveAt = in.client
				move.reset(MoveInterval)
			case inputDown:
				if hover.stop() {
					c.Hover(hoverAt)
				}
				c.PointerDown(in.client)
			case inputUp:
				if move.stop() {
					c.PointerMove(moveAt)
				}
				c.PointerUp()
			case inputCall:
				in.call(c)
			}

		case <-hover.C():
			hover.fired()
			c.Hover(hoverAt)

		case <-move.C():
			move.fired()
			c.PointerMove(moveAt)
		}
	}
}

// debouncer is a restartable trailing-edge timer. Its channel is nil while
// idle, which disables the corresponding select case.
type debouncer struct {
	t       *time.Timer
	pending bool
}

func (d *debouncer) reset(interval time.Duration) {
	if d.t == nil {
		d.t = time.NewTimer(interval)
	} else {
		d.t.Stop()
		d.t.Reset(interval)
	}
	d.pending = true
}

func (d *debouncer) C() <-chan time.Time {
	if !d.pending {
		return nil
	}
	return d.t.C
}

func (d *debouncer) fired() { d.pending = false }

// stop cancels a pending fire and reports whether one was pending.
func (d *debouncer) stop() bool {
	was := d.pending
	if d.t != nil {
		d.t.Stop()
	}
	d.pending = false
	return was
}
