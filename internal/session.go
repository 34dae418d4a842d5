package internal

import (
	"image"
	"path/filepath"
	"sort"
	"strings"
)

// PendingRegion is a drawn region not yet attached to a committed turn. The
// IsQuestion flag records whether the question or the answer field had focus
// when the shape was finished.
type PendingRegion struct {
	Region     Region
	IsQuestion bool
	drawID     int
}

// ImageListEntry is one row of the image list exposed to the UI.
type ImageListEntry struct {
	Name      string
	Annotated bool
}

// Controller owns the per-folder annotation session: the discovered image
// files, all stored annotations, the working copy for the current image,
// the pending regions, and the draft engine plus viewport it coordinates.
// Everything runs on the caller's single event thread.
type Controller struct {
	folder     string
	store      *AnnotationStore
	imageFiles []string
	all        map[string]TurnList

	index   int
	img     image.Image
	imgW    int
	imgH    int
	current TurnList
	pending []PendingRegion

	engine        *DraftEngine
	view          Viewport
	canvasW       int
	canvasH       int
	questionFocus bool
}

// NewController returns a controller with no folder open.
func NewController() *Controller {
	return &Controller{
		engine: NewDraftEngine(),
		view:   NewViewport(),
		all:    map[string]TurnList{},
	}
}

// SetCanvasSize records the display surface dimensions and refits the
// current image when the viewport is in fit-to-window mode.
func (c *Controller) SetCanvasSize(w, h int) {
	c.canvasW, c.canvasH = w, h
	if c.img != nil && c.view.FitToWindow {
		c.view.Fit(c.canvasW, c.canvasH, c.imgW, c.imgH)
		c.refreshDisplay()
	}
}

// OpenFolder discovers the image files in dir, loads any existing
// annotation file, and loads the first image. Session state is untouched on
// failure.
func (c *Controller) OpenFolder(dir string) error {
	files, err := ListImages(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return &EmptyFolderError{Dir: dir}
	}
	store := NewAnnotationStore(dir)
	all, err := store.Load()
	if err != nil {
		return err
	}
	if err := store.EnsureOutputsDir(); err != nil {
		return err
	}

	c.folder = dir
	c.store = store
	c.imageFiles = files
	c.all = all
	c.index = 0
	LogInfo("opened folder %s (%d images, %d annotated)", dir, len(files), len(all))
	return c.LoadImage(0)
}

// LoadImage decodes the image at index i and makes it current: its stored
// conversation is copied into the working list, pending regions and drawn
// shapes are dropped, and the viewport refits.
func (c *Controller) LoadImage(i int) error {
	if i < 0 || i >= len(c.imageFiles) {
		return &IndexOutOfRangeError{Index: i, Count: len(c.imageFiles)}
	}
	name := c.imageFiles[i]
	img, err := DecodeImage(filepath.Join(c.folder, name))
	if err != nil {
		return err
	}

	c.index = i
	c.img = img
	c.imgW, c.imgH = ImageSize(img)
	c.current = c.all[name].Clone()
	c.pending = nil
	c.engine.ClearAll()
	c.engine.SetMode(ShapeNone)
	c.view.Fit(c.canvasW, c.canvasH, c.imgW, c.imgH)
	LogDebug("loaded %s (%dx%d, %d pairs)", name, c.imgW, c.imgH, c.current.PairCount())
	return nil
}

// Navigate moves the current image index by delta. The working copy is
// flushed into the in-memory annotation set before the index changes, so
// committed turns survive navigation; only Save touches disk.
func (c *Controller) Navigate(delta int) error {
	if c.folder == "" {
		return ErrNoFolderOpen
	}
	target := c.index + delta
	if target < 0 || target >= len(c.imageFiles) {
		return &IndexOutOfRangeError{Index: target, Count: len(c.imageFiles)}
	}
	c.flushCurrent()
	return c.LoadImage(target)
}

// JumpTo navigates directly to image index i, flushing like Navigate.
func (c *Controller) JumpTo(i int) error {
	return c.Navigate(i - c.index)
}

// flushCurrent copies the working list into the annotation set, removing
// the entry entirely when the list is empty.
func (c *Controller) flushCurrent() {
	if c.folder == "" || len(c.imageFiles) == 0 {
		return
	}
	name := c.imageFiles[c.index]
	if len(c.current) == 0 {
		delete(c.all, name)
	} else {
		c.all[name] = c.current.Clone()
	}
}

// SetMode switches the draft engine into the given drafting mode.
func (c *Controller) SetMode(kind ShapeKind) {
	c.engine.SetMode(kind)
}

// Mode returns the current drafting mode.
func (c *Controller) Mode() ShapeKind {
	return c.engine.Mode()
}

// PointerDown forwards a primary click in screen space to the draft engine.
func (c *Controller) PointerDown(x, y float64) {
	c.engine.PointerDown(x, y)
}

// PointerDrag forwards a drag in screen space to the draft engine.
func (c *Controller) PointerDrag(x, y float64) {
	c.engine.PointerDrag(x, y)
}

// SetQuestionFocus records which input field last received focus; shapes
// finished afterwards bind to that side of the pair.
func (c *Controller) SetQuestionFocus(question bool) {
	c.questionFocus = question
}

// QuestionFocus reports whether the question field has focus.
func (c *Controller) QuestionFocus() bool {
	return c.questionFocus
}

// FinishShape commits the in-progress draft, converts it to image space,
// tags it with the current input context and appends it to the pending set.
// Returns false when no draft was ready to commit.
func (c *Controller) FinishShape() (Region, bool) {
	shape, ok := c.engine.Commit()
	if !ok {
		return Region{}, false
	}
	region := Region{Kind: shape.Kind, Coords: c.view.ToImageCoords(shape.Coords)}
	c.pending = append(c.pending, PendingRegion{
		Region:     region,
		IsQuestion: c.questionFocus,
		drawID:     shape.ID,
	})
	LogDebug("finished shape %s (question=%v)", region, c.questionFocus)
	return region, true
}

// ClearDraft discards the uncommitted draft shape.
func (c *Controller) ClearDraft() {
	c.engine.ClearDraft()
}

// ClearShapes discards every drawn shape and all pending regions.
func (c *Controller) ClearShapes() {
	c.engine.ClearAll()
	c.pending = nil
}

// RemovePendingRegion deletes pending region i and its display shape.
func (c *Controller) RemovePendingRegion(i int) error {
	if i < 0 || i >= len(c.pending) {
		return &IndexOutOfRangeError{Index: i, Count: len(c.pending)}
	}
	c.engine.Remove(c.pending[i].drawID)
	c.pending = append(c.pending[:i], c.pending[i+1:]...)
	return nil
}

// CommitTurnPair appends a human turn and a gpt turn built from the given
// texts, partitioning pending regions by input context. Both texts must be
// non-blank. Pending regions and drawn shapes are cleared on success.
func (c *Controller) CommitTurnPair(question, answer string) error {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" {
		return &EmptyFieldError{Field: "question"}
	}
	if answer == "" {
		return &EmptyFieldError{Field: "answer"}
	}

	var questionRegions, answerRegions []Region
	for _, p := range c.pending {
		if p.IsQuestion {
			questionRegions = append(questionRegions, p.Region)
		} else {
			answerRegions = append(answerRegions, p.Region)
		}
	}
	c.current = append(c.current,
		Turn{Role: RoleHuman, Text: question, Regions: questionRegions},
		Turn{Role: RoleGPT, Text: answer, Regions: answerRegions},
	)
	c.pending = nil
	c.engine.ClearAll()
	return nil
}

// DeleteTurnPair removes the turn pair at index i from the working list.
func (c *Controller) DeleteTurnPair(i int) error {
	list, err := c.current.DeletePair(i)
	if err != nil {
		return err
	}
	c.current = list
	return nil
}

// ClearTurns empties the working list. Confirmation is the caller's
// concern.
func (c *Controller) ClearTurns() {
	c.current = nil
}

// EditTurnPair removes pair i from the working list and returns its texts
// so the caller can repopulate its input fields. The pair's regions move
// back into the pending set with their original question/answer context and
// are re-drawn, so resubmitting the pair keeps them.
func (c *Controller) EditTurnPair(i int) (string, string, error) {
	q, a, err := c.current.PairAt(i)
	if err != nil {
		return "", "", err
	}
	c.pending = nil
	c.engine.ClearAll()
	for _, r := range q.Regions {
		c.loadPending(r, true)
	}
	for _, r := range a.Regions {
		c.loadPending(r, false)
	}
	c.current, _ = c.current.DeletePair(i)
	return q.Text, a.Text, nil
}

func (c *Controller) loadPending(r Region, isQuestion bool) {
	id, _ := c.engine.Load(r.Kind, c.view.ToScreenCoords(r.Coords))
	c.pending = append(c.pending, PendingRegion{Region: r, IsQuestion: isQuestion, drawID: id})
}

// ShowRegionsFor re-renders, for inspection, every region attached to the
// turn pair at index i, converting stored image-space coordinates back to
// the current screen space.
func (c *Controller) ShowRegionsFor(i int) error {
	q, a, err := c.current.PairAt(i)
	if err != nil {
		return err
	}
	c.engine.ClearAll()
	for _, r := range q.Regions {
		c.engine.Load(r.Kind, c.view.ToScreenCoords(r.Coords))
	}
	for _, r := range a.Regions {
		c.engine.Load(r.Kind, c.view.ToScreenCoords(r.Coords))
	}
	return nil
}

// Save flushes the working copy and writes the complete annotation file.
// An image whose working list is empty is dropped from the file entirely.
func (c *Controller) Save() error {
	if c.folder == "" {
		return ErrNoFolderOpen
	}
	c.flushCurrent()

	entries := make([]ImageAnnotation, 0, len(c.all))
	seen := make(map[string]bool, len(c.imageFiles))
	for _, name := range c.imageFiles {
		seen[name] = true
		if turns, ok := c.all[name]; ok {
			entries = append(entries, ImageAnnotation{Image: name, Conversations: turns})
		}
	}
	// Entries for files no longer in the folder are kept, sorted for
	// deterministic output.
	var extras []string
	for name := range c.all {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		entries = append(entries, ImageAnnotation{Image: name, Conversations: c.all[name]})
	}

	if err := c.store.Save(entries); err != nil {
		return err
	}
	LogInfo("saved %d annotated images to %s", len(entries), c.store.Path())
	return nil
}

// ZoomIn zooms one step in around the given screen point.
func (c *Controller) ZoomIn(x, y float64) {
	c.view.ZoomIn(x, y, c.imgW, c.imgH)
	c.refreshDisplay()
}

// ZoomOut zooms one step out around the given screen point.
func (c *Controller) ZoomOut(x, y float64) {
	c.view.ZoomOut(x, y, c.imgW, c.imgH)
	c.refreshDisplay()
}

// FitToWindow refits the image to the canvas.
func (c *Controller) FitToWindow() {
	c.view.Fit(c.canvasW, c.canvasH, c.imgW, c.imgH)
	c.refreshDisplay()
}

// ResetZoom restores 1:1 zoom around the canvas center.
func (c *Controller) ResetZoom() {
	c.view.Reset(c.canvasW, c.canvasH, c.imgW, c.imgH)
	c.refreshDisplay()
}

// refreshDisplay re-renders pending regions after a viewport change; their
// screen coordinates are derived from the stored image-space ones.
func (c *Controller) refreshDisplay() {
	c.engine.ClearAll()
	for i := range c.pending {
		id, _ := c.engine.Load(c.pending[i].Region.Kind, c.view.ToScreenCoords(c.pending[i].Region.Coords))
		c.pending[i].drawID = id
	}
}

// Folder returns the open working folder, or "".
func (c *Controller) Folder() string {
	return c.folder
}

// CurrentIndex returns the current image index.
func (c *Controller) CurrentIndex() int {
	return c.index
}

// ImageCount returns the number of discovered image files.
func (c *Controller) ImageCount() int {
	return len(c.imageFiles)
}

// CurrentImageName returns the current image filename, or "".
func (c *Controller) CurrentImageName() string {
	if len(c.imageFiles) == 0 {
		return ""
	}
	return c.imageFiles[c.index]
}

// Image returns the decoded current image, or nil.
func (c *Controller) Image() image.Image {
	return c.img
}

// ImageSize returns the current image's pixel dimensions.
func (c *Controller) ImageSize() (int, int) {
	return c.imgW, c.imgH
}

// Viewport returns the current viewport state.
func (c *Controller) Viewport() Viewport {
	return c.view
}

// Images returns the image list with per-entry annotated flags.
func (c *Controller) Images() []ImageListEntry {
	out := make([]ImageListEntry, len(c.imageFiles))
	for i, name := range c.imageFiles {
		annotated := len(c.all[name]) > 0
		if i == c.index {
			annotated = len(c.current) > 0
		}
		out[i] = ImageListEntry{Name: name, Annotated: annotated}
	}
	return out
}

// AnnotatedCount returns how many images currently carry annotations.
func (c *Controller) AnnotatedCount() int {
	n := 0
	for _, e := range c.Images() {
		if e.Annotated {
			n++
		}
	}
	return n
}

// Turns returns a copy of the working conversation list.
func (c *Controller) Turns() TurnList {
	return c.current.Clone()
}

// Pairs returns the pair summaries of the working list.
func (c *Controller) Pairs() []PairSummary {
	return c.current.Summaries()
}

// PendingCount returns the number of regions awaiting a turn commit.
func (c *Controller) PendingCount() int {
	return len(c.pending)
}

// PendingRegions returns a copy of the pending set.
func (c *Controller) PendingRegions() []PendingRegion {
	return append([]PendingRegion(nil), c.pending...)
}

// DisplayShapes returns the committed shapes currently on display, in
// screen space.
func (c *Controller) DisplayShapes() []CommittedShape {
	return c.engine.Committed()
}

// DraftShape returns the in-progress shape for live rendering, if any.
func (c *Controller) DraftShape() (ShapeKind, []float64, bool) {
	return c.engine.Draft()
}
