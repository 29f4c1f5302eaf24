// Package configeditor is the full-screen server.cfg editor. It works on a
// cfgsession.Session: form screens for recognized settings, a custom dvar
// list, and the map rotation list with its pickers.
package configeditor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stlalpha/h2mcfg/internal/cfgsession"
	"github.com/stlalpha/h2mcfg/internal/logging"
	"github.com/stlalpha/h2mcfg/internal/rotation"
)

const (
	minWidth  = 80
	minHeight = 25
)

// DefaultMaxRandom bounds the randomize count when Options leaves it unset.
const DefaultMaxRandom = 54

// editorMode represents the current interaction state.
type editorMode int

const (
	modeTopMenu       editorMode = iota // Top-level menu
	modeFieldEdit                       // Settings screen field navigation
	modeFieldInput                      // Settings field editing (textinput active)
	modeCustomList                      // Custom dvar list
	modeCustomInput                     // Custom dvar name/value entry
	modeRotationList                    // Map rotation list
	modeRandomCount                     // Randomize count entry
	modeLookupPicker                    // Lookup picker popup
	modeExitConfirm                     // Unsaved changes exit confirm
	modeSaveConfirm                     // Confirm save
	modeDeleteConfirm                   // Confirm custom dvar delete
	modeReloadConfirm                   // File changed on disk, reload?
	modeHelp                            // Help screen overlay
)

// topAction is what a top menu entry opens.
type topAction int

const (
	actGeneral topAction = iota
	actGametype
	actCustom
	actRotation
	actSave
	actQuit
)

// topMenuItem defines an entry in the top-level menu.
type topMenuItem struct {
	Key      string // Display key (1-9, S, Q)
	Label    string
	action   topAction
	gametype string // for actGametype
}

// pickerPurpose says what a picker selection does.
type pickerPurpose int

const (
	pickField          pickerPurpose = iota // set the current ftLookup field
	pickAddGametype                         // rotation add, step 1
	pickAddCategory                         // rotation add, step 2
	pickAddMap                              // rotation add, step 3
	pickRandomGametype                      // randomize, before the count
)

// Options configures the editor.
type Options struct {
	DefaultGametype string // preselected in gametype pickers
	MaxRandom       int    // upper bound for the randomize count
}

// FileChangedMsg tells the editor the settings file was written by someone
// else. Send it from a file watcher via tea.Program.Send.
type FileChangedMsg struct {
	Path string
}

// Model is the BubbleTea model for the server.cfg editor.
type Model struct {
	sess      *cfgsession.Session
	maxRandom int

	// Top menu state
	topCursor int
	topItems  []topMenuItem

	// Settings screen state
	screenItem  int        // topItems index of the open settings screen
	screenTitle string     // title of the open settings screen
	fields      []fieldDef // fields of the open settings screen
	editField   int        // current field index
	fieldScroll int        // first visible field row

	// List state (custom dvars and rotation)
	listCursor int
	listScroll int

	// Custom dvar entry
	customKey   string // name being added or edited
	customStage int    // 0 = entering name, 1 = entering value
	customEdit  bool   // editing an existing dvar

	// Rotation add and randomize
	lastGametype    string
	pendingGametype string
	pendingCategory string

	// Text input (shared for all entry modes)
	textInput textinput.Model

	// Lookup picker state
	pickerTitle      string
	pickerItems      []LookupItem
	pickerCursor     int
	pickerScroll     int
	pickerPurpose    pickerPurpose
	pickerReturnMode editorMode

	// Confirm dialog
	confirmYes bool
	returnMode editorMode // mode behind a reload confirm

	// Terminal
	width   int
	height  int
	mode    editorMode
	message string // Flash message
}

// New creates an editor over sess.
func New(sess *cfgsession.Session, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.Width = 40

	if opts.MaxRandom <= 0 {
		opts.MaxRandom = DefaultMaxRandom
	}
	gt := opts.DefaultGametype
	if !rotation.IsGametype(gt) {
		gt = rotation.Gametypes[0].Code
	}

	topItems := []topMenuItem{{Key: "1", Label: "General Settings", action: actGeneral}}
	for i, g := range rotation.Gametypes {
		topItems = append(topItems, topMenuItem{
			Key:      fmt.Sprint(i + 2),
			Label:    fmt.Sprintf("%s Rules", g.Label),
			action:   actGametype,
			gametype: g.Code,
		})
	}
	topItems = append(topItems,
		topMenuItem{Key: "8", Label: "Custom DVars", action: actCustom},
		topMenuItem{Key: "9", Label: "Map Rotation", action: actRotation},
		topMenuItem{Key: "S", Label: "Save Configuration", action: actSave},
		topMenuItem{Key: "Q", Label: "Quit Program", action: actQuit},
	)

	m := Model{
		sess:         sess,
		maxRandom:    opts.MaxRandom,
		topItems:     topItems,
		lastGametype: gt,
		textInput:    ti,
		width:        minWidth,
		height:       minHeight,
		mode:         modeTopMenu,
	}
	if warns := sess.Warnings(); len(warns) > 0 {
		msgs := make([]string, len(warns))
		for i, w := range warns {
			msgs[i] = w.Error()
		}
		m.message = "WARNING: " + strings.Join(msgs, "; ")
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("H2M Server Configuration Editor")
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, minWidth)
		m.height = max(msg.Height, minHeight)
		return m, nil

	case FileChangedMsg:
		return m.handleFileChanged()

	case tea.KeyMsg:
		// Any key clears the previous flash message.
		m.message = ""
		switch m.mode {
		case modeTopMenu:
			return m.updateTopMenu(msg)
		case modeFieldEdit:
			return m.updateFieldEdit(msg)
		case modeFieldInput:
			return m.updateFieldInput(msg)
		case modeCustomList:
			return m.updateCustomList(msg)
		case modeCustomInput:
			return m.updateCustomInput(msg)
		case modeRotationList:
			return m.updateRotationList(msg)
		case modeRandomCount:
			return m.updateRandomCount(msg)
		case modeLookupPicker:
			return m.updateLookupPicker(msg)
		case modeExitConfirm, modeSaveConfirm, modeDeleteConfirm, modeReloadConfirm:
			return m.updateConfirm(msg)
		case modeHelp:
			return m.updateHelp(msg)
		}
	}
	return m, nil
}

// --- Top Menu Mode ---

func (m Model) updateTopMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.topCursor > 0 {
			m.topCursor--
		}
	case tea.KeyDown:
		if m.topCursor < len(m.topItems)-1 {
			m.topCursor++
		}
	case tea.KeyHome:
		m.topCursor = 0
	case tea.KeyEnd:
		m.topCursor = len(m.topItems) - 1
	case tea.KeyEnter:
		return m.selectTopMenuItem()
	case tea.KeyEscape:
		return m.tryExit()
	case tea.KeyF1:
		m.mode = modeHelp
	default:
		key := strings.ToUpper(msg.String())
		if key == "?" {
			m.mode = modeHelp
			return m, nil
		}
		for i, item := range m.topItems {
			if item.Key == key {
				m.topCursor = i
				return m.selectTopMenuItem()
			}
		}
	}
	return m, nil
}

func (m Model) selectTopMenuItem() (Model, tea.Cmd) {
	item := m.topItems[m.topCursor]
	switch item.action {
	case actGeneral:
		return m.openSettingsScreen(m.topCursor), nil
	case actGametype:
		return m.openSettingsScreen(m.topCursor), nil
	case actCustom:
		m.listCursor, m.listScroll = 0, 0
		m.mode = modeCustomList
	case actRotation:
		m.listCursor, m.listScroll = 0, 0
		m.mode = modeRotationList
	case actSave:
		if !m.sess.Dirty() {
			m.message = "No changes to save"
			return m, nil
		}
		m.mode = modeSaveConfirm
		m.confirmYes = true
	case actQuit:
		return m.tryExit()
	}
	return m, nil
}

// openSettingsScreen shows the field screen of top menu item idx.
func (m Model) openSettingsScreen(idx int) Model {
	item := m.topItems[idx]
	m.screenItem = idx
	m.screenTitle = item.Label
	if item.action == actGametype {
		m.fields = m.buildGametypeFields(item.gametype)
	} else {
		m.fields = m.buildGeneralFields()
	}
	m.editField, m.fieldScroll = 0, 0
	m.mode = modeFieldEdit
	return m
}

func (m Model) tryExit() (Model, tea.Cmd) {
	if m.sess.Dirty() {
		m.mode = modeExitConfirm
		m.confirmYes = true
		return m, nil
	}
	return m, tea.Quit
}

// --- Confirm Dialog ---

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft, tea.KeyRight, tea.KeyTab:
		m.confirmYes = !m.confirmYes
	case tea.KeyEnter:
		if m.confirmYes {
			return m.executeConfirm()
		}
		return m.rejectConfirm()
	case tea.KeyEscape:
		// Exit confirmation requires an explicit yes/no choice
		if m.mode != modeExitConfirm {
			return m.rejectConfirm()
		}
	default:
		switch msg.String() {
		case "y", "Y":
			m.confirmYes = true
			return m.executeConfirm()
		case "n", "N":
			return m.rejectConfirm()
		}
	}
	return m, nil
}

func (m Model) rejectConfirm() (Model, tea.Cmd) {
	switch m.mode {
	case modeExitConfirm:
		logging.Debug("exit without saving %s", m.sess.ConfigPath())
		return m, tea.Quit
	case modeDeleteConfirm:
		m.mode = modeCustomList
	case modeReloadConfirm:
		m.message = "Keeping unsaved changes; saving will overwrite the file"
		m.mode = m.returnMode
	default:
		m.mode = modeTopMenu
	}
	return m, nil
}

func (m Model) executeConfirm() (Model, tea.Cmd) {
	switch m.mode {
	case modeExitConfirm:
		if !m.save() {
			m.mode = modeTopMenu
			return m, nil
		}
		return m, tea.Quit
	case modeSaveConfirm:
		m.save()
		m.mode = modeTopMenu
	case modeDeleteConfirm:
		m.deleteCustom()
		m.mode = modeCustomList
	case modeReloadConfirm:
		m.mode = m.returnMode
		m.reload()
	default:
		m.mode = modeTopMenu
	}
	return m, nil
}

// --- Help Mode ---

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeTopMenu
	return m, nil
}
