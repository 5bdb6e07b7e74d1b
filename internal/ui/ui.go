package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tfx/internal/editor"
	"github.com/desertthunder/tfx/internal/models"
	"github.com/desertthunder/tfx/internal/projection"
	"github.com/desertthunder/tfx/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PickerView ViewState = iota
	ConfirmView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	editor   *editor.Editor
	session  *editor.Session
	width    int
	height   int
	picker   list.Model
	options  []projection.PickerOption
	checked  map[string]bool // by option ID
	verbose  bool
	result   *models.ConfigDocument
	removed  [2]int // playlists, schedules
	err      error
	help     help.Model
	keys     keyMap
	document *models.ConfigDocument
}

// NewModel creates a new TUI model that deletes through e.
func NewModel(ctx context.Context, e *editor.Editor, logger *log.Logger) *Model {
	return &Model{
		ctx:     ctx,
		view:    PickerView,
		editor:  e,
		session: editor.NewSession("delete", logger),
		checked: map[string]bool{},
		verbose: true,
		picker:  newPickerList(nil, 0, 0),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

func newPickerList(items []list.Item, width, height int) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Delete playlists and schedules"
	l.SetShowHelp(false)
	return l
}

// Init initializes the TUI by loading the stored document.
func (m *Model) Init() tea.Cmd {
	return m.loadDocument()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PickerView:
			return m.handlePickerKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgDocumentLoaded:
			res := msg.data.(docResult)
			if res.err != nil {
				m.err = res.err
				return m, nil
			}
			m.err = nil
			m.setDocument(res.doc)
			return m, nil

		case MsgDeleted:
			res := msg.data.(docResult)
			m.err = res.err
			m.result = res.doc
			m.view = ResultView
			if res.err == nil {
				if m.document != nil {
					m.removed = [2]int{
						len(m.document.Playlists) - len(res.doc.Playlists),
						len(m.document.Schedules) - len(res.doc.Schedules),
					}
				}
				m.checked = map[string]bool{}
				m.setDocument(res.doc)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.view == PickerView {
		m.picker, cmd = m.picker.Update(msg)
	}
	return m, cmd
}

// setDocument rebuilds the picker from doc, keeping the cursor and any selections still present.
func (m *Model) setDocument(doc *models.ConfigDocument) {
	m.document = doc
	next := projection.Picker(doc, m.verbose, false)

	present := make(map[string]bool, len(next))
	for _, o := range next {
		present[o.ID()] = true
	}
	for id := range m.checked {
		if !present[id] {
			delete(m.checked, id)
		}
	}

	if !projection.Changed(m.options, next) && len(m.picker.Items()) == len(next) {
		return
	}
	m.options = next

	cursor := m.picker.Index()
	m.picker.SetItems(pickerItems(next, m.checked))
	if cursor >= len(next) {
		cursor = len(next) - 1
	}
	if cursor >= 0 {
		m.picker.Select(cursor)
	}
}

// Selected returns the toggled options in picker order.
func (m *Model) Selected() []projection.PickerOption {
	var out []projection.PickerOption
	for _, o := range m.options {
		if o.Selectable() && m.checked[o.ID()] {
			out = append(out, o)
		}
	}
	return out
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PickerView:
		return m.renderPicker()
	case ConfirmView:
		return m.renderConfirm()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		m.toggleCurrent()
		return m, nil
	case key.Matches(msg, m.keys.verbose):
		m.verbose = !m.verbose
		m.options = nil
		return m, m.loadDocument()
	case key.Matches(msg, m.keys.enter):
		if len(m.Selected()) == 0 {
			return m, nil
		}
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *Model) toggleCurrent() {
	item, ok := m.picker.SelectedItem().(pickerItem)
	if !ok || !item.option.Selectable() {
		return
	}
	item.checked = !item.checked
	if item.checked {
		m.checked[item.option.ID()] = true
	} else {
		delete(m.checked, item.option.ID())
	}
	m.picker.SetItem(m.picker.Index(), item)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit), key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.view = PickerView
		return m, nil
	case key.Matches(msg, m.keys.yes):
		return m, m.deleteSelected(m.Selected())
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		m.view = PickerView
		m.result = nil
		m.err = nil
		return m, m.loadDocument()
	}
	return m, nil
}

func (m *Model) loadDocument() tea.Cmd {
	return func() tea.Msg {
		doc, err := m.editor.Document(m.ctx)
		return documentLoadedMsg(doc, err)
	}
}

func (m *Model) deleteSelected(selected []projection.PickerOption) tea.Cmd {
	return func() tea.Msg {
		var doc *models.ConfigDocument
		err := m.session.Submit(func(string) (string, error) {
			var err error
			doc, err = m.editor.Delete(m.ctx, selected)
			return "", err
		})
		return deletedMsg(doc, err)
	}
}

func (m *Model) renderPicker() string {
	helpKeys := []key.Binding{m.keys.toggle, m.keys.enter, m.keys.verbose, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	status := styles.help.Render(fmt.Sprintf("%d selected", len(m.Selected())))
	return fmt.Sprintf("%s\n%s\n\n%s", m.picker.View(), status, helpView)
}

func (m *Model) renderConfirm() string {
	selected := m.Selected()
	title := styles.title.Render(fmt.Sprintf("Delete %d item(s)?", len(selected)))

	var b strings.Builder
	for _, o := range selected {
		fmt.Fprintf(&b, "\n  • %s", o.Label)
	}
	warning := styles.warn.Render("Deleting a playlist also deletes its schedules.")

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n\n%s\n\n%s", title, b.String(), warning, helpView)
}

func (m *Model) renderResult() string {
	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.err != nil {
		msg := fmt.Sprintf("Delete failed: %v", m.err)
		if errors.Is(m.err, shared.ErrNotFound) {
			msg = "Nothing was deleted: the selection no longer matches the document."
		}
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(msg), helpView)
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to restart, q to quit")
	}

	title := styles.ok.Render("✓ Deleted")
	info := fmt.Sprintf("\nRemoved %d playlist(s) and %d schedule(s)\nRemaining: %d playlist(s), %d schedule(s)\nLast modified: %s",
		m.removed[0], m.removed[1], len(m.result.Playlists), len(m.result.Schedules), m.result.LastModified)
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
