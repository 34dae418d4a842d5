package internal

// CommittedShape is a finished shape held for display, identified by a
// stable id so the surface can remove it individually. Coordinates are in
// whatever space the caller drew it in (screen space during drafting).
type CommittedShape struct {
	ID     int
	Kind   ShapeKind
	Coords []float64
}

// DraftEngine tracks the single in-progress shape plus the set of committed
// shapes currently on display. The draft and the committed collection are
// deliberately separate: clearing an unfinished draft can never discard
// finished work.
type DraftEngine struct {
	mode      ShapeKind
	draft     []float64
	active    bool
	nextID    int
	committed []CommittedShape
}

// NewDraftEngine returns an engine in the idle state.
func NewDraftEngine() *DraftEngine {
	return &DraftEngine{mode: ShapeNone, nextID: 1}
}

// Mode returns the current drafting mode (ShapeNone when idle).
func (e *DraftEngine) Mode() ShapeKind {
	return e.mode
}

// SetMode discards any uncommitted draft and switches to the drafting state
// for kind, or to idle for ShapeNone.
func (e *DraftEngine) SetMode(kind ShapeKind) {
	e.ClearDraft()
	e.mode = kind
}

// PointerDown handles a primary click. Idle: no-op. Rect: start a new draft
// degenerate at the click. Poly: extend the draft by one vertex. Point:
// replace the draft with a single point.
func (e *DraftEngine) PointerDown(x, y float64) {
	switch e.mode {
	case ShapeRect:
		e.draft = []float64{x, y, x, y}
		e.active = true
	case ShapePoly:
		e.draft = append(e.draft, x, y)
		e.active = true
	case ShapePoint:
		e.draft = []float64{x, y}
		e.active = true
	}
}

// PointerDrag updates the second rectangle corner to follow the pointer.
// Other modes ignore drags.
func (e *DraftEngine) PointerDrag(x, y float64) {
	if e.mode != ShapeRect || !e.active {
		return
	}
	e.draft[2] = x
	e.draft[3] = y
}

// Commit finalizes the current draft into a committed shape and returns it.
// A polygon with fewer than 3 vertices is an invalid commit: nothing is
// produced and the draft is kept so more vertices can be added. On success
// the draft is cleared and the mode resets to idle; the engine must be put
// back into a drafting mode before the next shape.
func (e *DraftEngine) Commit() (CommittedShape, bool) {
	if !e.active || e.mode == ShapeNone {
		return CommittedShape{}, false
	}
	if e.mode == ShapePoly && len(e.draft) < 6 {
		return CommittedShape{}, false
	}
	shape := CommittedShape{
		ID:     e.nextID,
		Kind:   e.mode,
		Coords: append([]float64(nil), e.draft...),
	}
	e.nextID++
	e.committed = append(e.committed, shape)
	e.draft = nil
	e.active = false
	e.mode = ShapeNone
	return shape, true
}

// Load installs an already-complete shape (for example a stored region being
// re-shown) directly into the committed set, bypassing the draft. Returns the
// assigned id, or false if the coordinate arity does not match the kind.
func (e *DraftEngine) Load(kind ShapeKind, coords []float64) (int, bool) {
	if err := (Region{Kind: kind, Coords: coords}).Validate(); err != nil {
		return 0, false
	}
	shape := CommittedShape{
		ID:     e.nextID,
		Kind:   kind,
		Coords: append([]float64(nil), coords...),
	}
	e.nextID++
	e.committed = append(e.committed, shape)
	return shape.ID, true
}

// Draft returns the in-progress shape for live rendering, if any.
func (e *DraftEngine) Draft() (ShapeKind, []float64, bool) {
	if !e.active {
		return ShapeNone, nil, false
	}
	return e.mode, append([]float64(nil), e.draft...), true
}

// Committed returns the committed shapes in commit order.
func (e *DraftEngine) Committed() []CommittedShape {
	return append([]CommittedShape(nil), e.committed...)
}

// ClearDraft discards the uncommitted draft without touching committed shapes.
func (e *DraftEngine) ClearDraft() {
	e.draft = nil
	e.active = false
}

// ClearAll discards the draft and every committed shape.
func (e *DraftEngine) ClearAll() {
	e.ClearDraft()
	e.committed = nil
}

// Remove deletes one committed shape by id. Returns false if the id is
// unknown.
func (e *DraftEngine) Remove(id int) bool {
	for i, s := range e.committed {
		if s.ID == id {
			e.committed = append(e.committed[:i], e.committed[i+1:]...)
			return true
		}
	}
	return false
}
