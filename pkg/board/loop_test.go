package board

import (
	"context"
	"image"
	"sync"
	"testing"
	"time"

	"drawboard/pkg/element"
)

func startBoard(t *testing.T, opts Options) *Board {
	t.Helper()
	if opts.Width == 0 {
		opts.Width, opts.Height = 400, 300
	}
	b, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- b.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-errc; err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	})
	return b
}

func TestBoardDrawGesture(t *testing.T) {
	var (
		mu     sync.Mutex
		events []Event
	)
	b := startBoard(t, Options{Listener: func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	}})

	b.Hover(pt(50, 50))
	b.PointerDown(pt(50, 50))
	b.PointerMove(pt(80, 60))
	b.PointerMove(pt(100, 80))
	b.PointerMove(pt(120, 90))
	b.PointerUp()

	var elems []element.Element
	if !b.Sync(func(c *Controller) { elems = c.Elements() }) {
		t.Fatal("loop stopped")
	}
	if len(elems) != 1 || elems[0].Width != 70 || elems[0].Height != 40 {
		t.Fatalf("elements = %+v, want one 70x40", elems)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 || events[0].Kind != EventAdd || events[0].Index != 0 {
		t.Errorf("events = %+v", events)
	}
}

func TestBoardFlushesHoverBeforePress(t *testing.T) {
	b := startBoard(t, Options{
		Elements: []element.Element{{X: 40, Y: 40, Width: 30, Height: 30, Shape: element.Rectangle}},
	})

	// The press arrives well inside the hover interval.
	b.Hover(pt(50, 50))
	b.PointerDown(pt(50, 50))
	b.PointerMove(pt(80, 70))
	b.PointerUp()

	var got element.Element
	b.Sync(func(c *Controller) { got = c.Elements()[0] })
	if got.X != 70 || got.Y != 60 {
		t.Errorf("element origin = (%v, %v), want (70, 60)", got.X, got.Y)
	}
}

func TestBoardHoverDebounced(t *testing.T) {
	b := startBoard(t, Options{
		Elements: []element.Element{{X: 40, Y: 40, Width: 30, Height: 30, Shape: element.Rectangle}},
	})
	b.Hover(pt(300, 200))
	b.Hover(pt(50, 50))

	deadline := time.Now().Add(2 * time.Second)
	for {
		var hovered int
		b.Sync(func(c *Controller) { hovered = c.Hovered() })
		if hovered == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("hover never applied, Hovered() = %d", hovered)
		}
		time.Sleep(HoverInterval)
	}
}

func TestBoardBackgroundImageFitsAsync(t *testing.T) {
	release := make(chan struct{})
	b := startBoard(t, Options{
		Width: 100, Height: 100,
		BackgroundImage:  "backdrop.png",
		FitCanvasToImage: true,
		OpenImage: func(string) (image.Image, error) {
			<-release
			return image.NewRGBA(image.Rect(0, 0, 64, 32)), nil
		},
	})

	var w, h float64
	b.Sync(func(c *Controller) { w, h = c.Surface().Size() })
	if w != 100 || h != 100 {
		t.Fatalf("size before load = %vx%v", w, h)
	}
	close(release)

	deadline := time.Now().Add(2 * time.Second)
	for {
		b.Sync(func(c *Controller) { w, h = c.Surface().Size() })
		if w == 64 && h == 32 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("size after load = %vx%v, want 64x32", w, h)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestBoardCallsAfterStop(t *testing.T) {
	b, err := New(Options{Width: 10, Height: 10})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := b.Run(ctx); err != context.Canceled {
		t.Fatalf("Run() = %v", err)
	}
	// None of these may block once the loop is gone.
	for i := 0; i < 100; i++ {
		b.Hover(pt(1, 1))
	}
	b.Do(func(*Controller) {})
	if b.Sync(func(*Controller) {}) {
		t.Error("Sync() reported success after stop")
	}
}

func TestDebouncer(t *testing.T) {
	var d debouncer
	if d.C() != nil || d.stop() {
		t.Fatal("idle debouncer should have no channel and nothing pending")
	}
	d.reset(time.Hour)
	d.reset(time.Millisecond)
	select {
	case <-d.C():
		d.fired()
	case <-time.After(time.Second):
		t.Fatal("debouncer never fired")
	}
	if d.C() != nil {
		t.Error("fired debouncer still pending")
	}
	d.reset(time.Hour)
	if !d.stop() {
		t.Error("stop() should report a pending fire")
	}
}
