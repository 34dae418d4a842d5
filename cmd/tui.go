package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vqatools/vqa-annotator/internal"
)

const sidebarWidth = 36

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			PaddingLeft(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("57"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))
)

// annotateModel is the bubbletea model wrapping the session controller: the
// canvas pane is the display surface, the two textinputs are the question
// and answer fields, and the sidebar renders the image and pair lists.
type annotateModel struct {
	ctrl     *internal.Controller
	question textinput.Model
	answer   textinput.Model

	width   int
	height  int
	canvasW int
	canvasH int

	pairSel int
	status  string
}

func newAnnotateModel(ctrl *internal.Controller) *annotateModel {
	q := textinput.New()
	q.Prompt = "Q> "
	q.Placeholder = "question"
	q.Focus()
	ctrl.SetQuestionFocus(true)

	a := textinput.New()
	a.Prompt = "A> "
	a.Placeholder = "answer"

	return &annotateModel{
		ctrl:     ctrl,
		question: q,
		answer:   a,
		status:   fmt.Sprintf("Loaded %s", ctrl.CurrentImageName()),
	}
}

func (m *annotateModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *annotateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.canvasW = msg.Width - sidebarWidth - 2
		m.canvasH = msg.Height - 5
		if m.canvasW < 10 {
			m.canvasW = 10
		}
		if m.canvasH < 5 {
			m.canvasH = 5
		}
		m.ctrl.SetCanvasSize(m.canvasW, m.canvasH)
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, m.updateInputs(msg)
}

func (m *annotateModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	sx := float64(msg.X)
	sy := float64(msg.Y - 1)
	onCanvas := msg.X >= 0 && msg.X < m.canvasW && sy >= 0 && sy < float64(m.canvasH)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if onCanvas {
			m.ctrl.ZoomIn(sx, sy)
		}
	case tea.MouseButtonWheelDown:
		if onCanvas {
			m.ctrl.ZoomOut(sx, sy)
		}
	case tea.MouseButtonLeft:
		if !onCanvas {
			if msg.Action == tea.MouseActionPress {
				m.clickImageList(msg.X, msg.Y)
			}
			return m, nil
		}
		switch msg.Action {
		case tea.MouseActionPress:
			m.ctrl.PointerDown(sx, sy)
		case tea.MouseActionMotion:
			m.ctrl.PointerDrag(sx, sy)
		}
	case tea.MouseButtonRight:
		if msg.Action == tea.MouseActionPress {
			if region, ok := m.ctrl.FinishShape(); ok {
				side := "answer"
				if m.ctrl.QuestionFocus() {
					side = "question"
				}
				m.status = fmt.Sprintf("Finished %s (bound to %s)", region, side)
			}
		}
	}
	return m, nil
}

func (m *annotateModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.question.Focused() {
			m.question.Blur()
			m.answer.Focus()
			m.ctrl.SetQuestionFocus(false)
		} else {
			m.answer.Blur()
			m.question.Focus()
			m.ctrl.SetQuestionFocus(true)
		}
		return m, nil

	case "enter":
		if err := m.ctrl.CommitTurnPair(m.question.Value(), m.answer.Value()); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.question.Reset()
		m.answer.Reset()
		m.pairSel = m.ctrl.Turns().PairCount() - 1
		m.status = fmt.Sprintf("Committed pair %d", m.pairSel+1)
		return m, nil

	case "f2":
		m.ctrl.SetMode(internal.ShapeRect)
		m.status = "Drawing mode: rectangle"
		return m, nil
	case "f3":
		m.ctrl.SetMode(internal.ShapePoly)
		m.status = "Drawing mode: polygon"
		return m, nil
	case "f4":
		m.ctrl.SetMode(internal.ShapePoint)
		m.status = "Drawing mode: point"
		return m, nil

	case "esc":
		m.ctrl.ClearDraft()
		m.status = "Draft discarded"
		return m, nil
	case "ctrl+x":
		m.ctrl.ClearShapes()
		m.status = "All drawn shapes discarded"
		return m, nil

	case "pgup":
		m.navigate(-1)
		return m, nil
	case "pgdown":
		m.navigate(1)
		return m, nil

	case "ctrl+up":
		if m.pairSel > 0 {
			m.pairSel--
		}
		return m, nil
	case "ctrl+down":
		if m.pairSel < m.ctrl.Turns().PairCount()-1 {
			m.pairSel++
		}
		return m, nil

	case "ctrl+e":
		q, a, err := m.ctrl.EditTurnPair(m.pairSel)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.question.SetValue(q)
		m.answer.SetValue(a)
		m.clampPairSel()
		m.status = "Editing pair; commit with enter"
		return m, nil

	case "ctrl+d":
		if err := m.ctrl.DeleteTurnPair(m.pairSel); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.clampPairSel()
		m.status = "Pair deleted"
		return m, nil

	case "ctrl+r":
		if err := m.ctrl.ShowRegionsFor(m.pairSel); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Showing regions of pair %d", m.pairSel+1)
		return m, nil

	case "f5":
		m.ctrl.FitToWindow()
		m.status = "Zoom: fit to window"
		return m, nil
	case "f6":
		m.ctrl.ResetZoom()
		m.status = "Zoom: 100%"
		return m, nil

	case "ctrl+s":
		if err := m.ctrl.Save(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "Annotations saved"
		return m, nil
	}

	return m, m.updateInputs(msg)
}

// clickImageList jumps to the sidebar image row under a click. Row 0 of the
// list sits below the header and the section title.
func (m *annotateModel) clickImageList(x, y int) {
	if x < m.canvasW {
		return
	}
	start, maxRows := m.imageScroll()
	row := y - 2
	if row < 0 || row >= maxRows {
		return
	}
	i := start + row
	if i >= m.ctrl.ImageCount() || i == m.ctrl.CurrentIndex() {
		return
	}
	if err := m.ctrl.JumpTo(i); err != nil {
		m.status = err.Error()
		return
	}
	m.afterLoad()
}

func (m *annotateModel) navigate(delta int) {
	if err := m.ctrl.Navigate(delta); err != nil {
		var oor *internal.IndexOutOfRangeError
		if errors.As(err, &oor) {
			m.status = "No more images in that direction"
		} else {
			m.status = err.Error()
		}
		return
	}
	m.afterLoad()
}

func (m *annotateModel) afterLoad() {
	m.pairSel = 0
	m.question.Reset()
	m.answer.Reset()
	m.status = fmt.Sprintf("Loaded %s", m.ctrl.CurrentImageName())
}

// imageScroll returns the first visible image row and the row capacity of
// the sidebar list, keeping the current image in view.
func (m *annotateModel) imageScroll() (start, maxRows int) {
	maxRows = m.canvasH/2 - 2
	if m.ctrl.CurrentIndex() >= maxRows {
		start = m.ctrl.CurrentIndex() - maxRows + 1
	}
	return start, maxRows
}

func (m *annotateModel) clampPairSel() {
	if n := m.ctrl.Turns().PairCount(); m.pairSel >= n {
		m.pairSel = n - 1
	}
	if m.pairSel < 0 {
		m.pairSel = 0
	}
}

func (m *annotateModel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.question, cmd = m.question.Update(msg)
	cmds = append(cmds, cmd)
	m.answer, cmd = m.answer.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (m *annotateModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	vp := m.ctrl.Viewport()
	header := statusBarStyle.Width(m.width).Render(fmt.Sprintf(
		"%s [%d/%d] zoom %d%% pending %d | %s",
		m.ctrl.CurrentImageName(),
		m.ctrl.CurrentIndex()+1, m.ctrl.ImageCount(),
		int(vp.Zoom*100),
		m.ctrl.PendingCount(),
		m.status,
	))

	canvas := renderCanvas(m.ctrl, m.canvasW, m.canvasH)
	sidebar := sidebarStyle.Height(m.canvasH).Render(m.renderSidebar())
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvas, sidebar)

	help := helpStyle.Render("f2 rect · f3 poly · f4 point · right-click finish · enter commit · pgup/pgdn image · ctrl+s save · ctrl+c quit")

	return strings.Join([]string{
		header,
		main,
		m.question.View(),
		m.answer.View(),
		help,
	}, "\n")
}

func (m *annotateModel) renderSidebar() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Images"))
	b.WriteString("\n")
	images := m.ctrl.Images()
	start, maxImages := m.imageScroll()
	for i := start; i < len(images) && i-start < maxImages; i++ {
		marker := "  "
		if images[i].Annotated {
			marker = annotatedStyle.Render("✓ ")
		}
		line := marker + truncate(images[i].Name, sidebarWidth-5)
		if i == m.ctrl.CurrentIndex() {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Pairs"))
	b.WriteString("\n")
	for i, s := range m.ctrl.Pairs() {
		q := truncate(s.Question, sidebarWidth-4)
		a := truncate(s.Answer, sidebarWidth-4)
		if i == m.pairSel {
			q = selectedStyle.Render(q)
			a = selectedStyle.Render(a)
		}
		b.WriteString(q)
		b.WriteString("\n")
		b.WriteString(a)
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	if n <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
