package board

import "drawboard/pkg/element"

// Hover runs the hover scan for a pointer move over the field while no button
// is held. Elements are tested in list order and, for each element, its
// handles before its body; the first hit wins.
func (c *Controller) Hover(client element.Point) {
	if c.pointerDown {
		return
	}
	c.draggable = -1
	c.resizable = -1
	c.handle = element.HandleNone

	p := c.surface.ToLocal(client)
	for i, e := range c.elements {
		if h := element.DetectHandle(p, e, element.HandleRadius); h != element.HandleNone {
			c.handle = h
			c.resizable = i
			break
		}
		if element.Contains(p, e) {
			c.draggable = i
			c.hoverShadow = true
			c.Draw()
			break
		}
	}

	if c.draggable >= 0 && c.draggable != c.hovered {
		if c.hovered >= 0 {
			c.emit(EventMouseLeave, c.hovered)
		}
		c.hovered = c.draggable
		c.emit(EventMouseEnter, c.hovered)
	}
	if c.hovered >= 0 && c.draggable < 0 {
		c.emit(EventMouseLeave, c.hovered)
		c.hovered = -1
	}
	if c.draggable < 0 && c.hoverShadow {
		c.Draw()
		c.hoverShadow = false
	}

	c.cursor = element.CursorFor(c.draggable, c.handle)
}

// PointerDown starts a gesture. Pressing on the hovered element selects it;
// pressing anywhere else clears the selection and starts a draft.
func (c *Controller) PointerDown(client element.Point) {
	p := c.surface.ToLocal(client)
	c.draft.X = p.X
	c.draft.Y = p.Y
	c.pointerDown = true

	if c.draggable >= 0 {
		if c.selected >= 0 && c.selected != c.draggable {
			c.emit(EventBlur, c.selected)
		}
		coords := client
		c.emitAt(EventClick, c.draggable, &coords)
		if c.selected != c.draggable {
			c.selected = c.draggable
			c.emit(EventFocus, c.selected)
		}
	} else {
		if c.selected >= 0 {
			c.emit(EventBlur, c.selected)
		}
		c.selected = -1
	}
	c.Draw()
}

// dragJitter reports whether a delta is too small to count as drag motion.
func dragJitter(dx, dy float64) bool {
	switch {
	case dx == 0 && dy == 0,
		dx == -1 && dy == 0,
		dx == 1 && dy == 0,
		dx == 0 && dy == -1,
		dx == 0 && dy == 1:
		return true
	}
	return false
}

// PointerMove advances the gesture in progress. Moves without a held button
// are ignored.
func (c *Controller) PointerMove(client element.Point) {
	if !c.pointerDown {
		return
	}
	w, h := c.surface.Size()
	p := c.surface.ToLocal(client)
	element.ClampPoint(&p, w, h)

	c.draft.Width = p.X - c.draft.X
	c.draft.Height = p.Y - c.draft.Y

	switch {
	case c.resizable >= 0:
		if !c.resizeStarted {
			c.emit(EventResizeStart, c.resizable)
			c.resizeStarted = true
		} else {
			c.emit(EventResizing, c.resizable)
		}
		element.ResizeByHandle(&c.elements[c.resizable], c.handle, p)
		c.Draw()

	case c.draggable >= 0:
		dx, dy := c.draft.Width, c.draft.Height
		if dragJitter(dx, dy) {
			return
		}
		if !c.dragStarted {
			c.emit(EventDragStart, c.draggable)
			c.dragStarted = true
		} else {
			c.emit(EventDragging, c.draggable)
		}
		target := &c.elements[c.draggable]
		target.X += dx
		target.Y += dy
		element.ClampToField(target, w, h)
		c.Draw()
		c.draft.X = p.X
		c.draft.Y = p.Y

	default:
		c.drawDraft()
	}
}

// PointerUp ends the gesture. A resize is normalized, a drag reported, and a
// draft larger than MinElementSize in both dimensions is added to the scene.
// With GridSizeMouseStep on, the affected element is snapped to the grid.
func (c *Controller) PointerUp() {
	c.pointerDown = false
	if c.resizable < 0 && c.draggable < 0 && c.draft.Width == 0 && c.draft.Height == 0 {
		return
	}

	step := c.surface.Grid().CellSize

	if c.resizable >= 0 {
		target := &c.elements[c.resizable]
		element.Normalize(target)
		if c.snap {
			element.SnapToGrid(target, step)
		}
		c.emit(EventResizeEnd, c.resizable)
		c.logger.Debug("resize end", "index", c.resizable, "x", target.X, "y", target.Y,
			"width", target.Width, "height", target.Height)
		c.resizeStarted = false
	}

	if c.draggable >= 0 {
		target := &c.elements[c.draggable]
		if c.snap {
			element.SnapToGrid(target, step)
		}
		if c.dragStarted {
			c.emit(EventDragEnd, c.draggable)
			c.logger.Debug("drag end", "index", c.draggable, "x", target.X, "y", target.Y)
			c.dragStarted = false
		}
	}

	if c.resizable < 0 && c.draggable < 0 {
		e := c.draft.Clone()
		element.Normalize(&e)
		if c.snap {
			element.SnapToGrid(&e, step)
		}
		if e.Width > MinElementSize && e.Height > MinElementSize {
			c.elements = append(c.elements, e)
			index := len(c.elements) - 1
			c.emit(EventAdd, index)
			c.logger.Debug("element added", "index", index, "shape", e.Shape,
				"x", e.X, "y", e.Y, "width", e.Width, "height", e.Height)
		}
	}

	c.draft = c.emptyElement()
	c.Draw()
}
