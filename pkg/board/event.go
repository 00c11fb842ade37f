package board

import "drawboard/pkg/element"

// EventKind identifies a lifecycle notification.
type EventKind int

const (
	EventAdd EventKind = iota + 1
	EventClick
	EventFocus
	EventBlur
	EventMouseEnter
	EventMouseLeave
	EventResizeStart
	EventResizing
	EventResizeEnd
	EventDragStart
	EventDragging
	EventDragEnd
)

var eventNames = map[EventKind]string{
	EventAdd:         "add",
	EventClick:       "click",
	EventFocus:       "focus",
	EventBlur:        "blur",
	EventMouseEnter:  "mouse-enter",
	EventMouseLeave:  "mouse-leave",
	EventResizeStart: "resize-start",
	EventResizing:    "resizing",
	EventResizeEnd:   "resize-end",
	EventDragStart:   "drag-start",
	EventDragging:    "dragging",
	EventDragEnd:     "drag-end",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is delivered to the host for every lifecycle notification. Element
// is a copy of the element at Index when the event fired. ClickCoords is set
// only for EventClick and carries the raw client coordinates.
type Event struct {
	Kind        EventKind
	Index       int
	Element     element.Element
	ClickCoords *element.Point
}

// Listener receives events synchronously on the controller's goroutine.
type Listener func(Event)
