package configeditor

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stlalpha/h2mcfg/internal/logging"
)

// listVisible is the number of list rows shown at once.
func (m Model) listVisible() int {
	return max(5, m.height-10)
}

// moveListCursor applies a navigation key to a list of total rows and
// reports whether the key was one.
func (m *Model) moveListCursor(msg tea.KeyMsg, total int) bool {
	switch msg.Type {
	case tea.KeyUp:
		if m.listCursor > 0 {
			m.listCursor--
		}
	case tea.KeyDown:
		if m.listCursor < total-1 {
			m.listCursor++
		}
	case tea.KeyHome:
		m.listCursor = 0
	case tea.KeyEnd:
		m.listCursor = max(0, total-1)
	case tea.KeyPgUp:
		m.listCursor = max(0, m.listCursor-m.listVisible())
	case tea.KeyPgDown:
		m.listCursor = max(0, min(total-1, m.listCursor+m.listVisible()))
	default:
		return false
	}
	m.ensureListVisible()
	return true
}

func (m *Model) ensureListVisible() {
	vis := m.listVisible()
	if m.listCursor < m.listScroll {
		m.listScroll = m.listCursor
	}
	if m.listCursor >= m.listScroll+vis {
		m.listScroll = m.listCursor - vis + 1
	}
}

// updateCustomList handles the custom dvar list.
func (m Model) updateCustomList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	custom := m.sess.Custom()
	if m.moveListCursor(msg, len(custom)) {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = modeTopMenu
		return m, nil
	case tea.KeyInsert:
		return m.startCustomInput("", false)
	case tea.KeyDelete:
		return m.confirmCustomDelete(len(custom))
	case tea.KeyEnter:
		if len(custom) == 0 {
			return m.startCustomInput("", false)
		}
		return m.startCustomInput(custom[m.listCursor].Key, true)
	}
	switch msg.String() {
	case "i", "I", "a", "A":
		return m.startCustomInput("", false)
	case "e", "E":
		if len(custom) == 0 {
			m.message = "No custom dvar selected"
			return m, nil
		}
		return m.startCustomInput(custom[m.listCursor].Key, true)
	case "d", "D":
		return m.confirmCustomDelete(len(custom))
	}
	return m, nil
}

func (m Model) confirmCustomDelete(total int) (tea.Model, tea.Cmd) {
	if total == 0 {
		m.message = "No custom dvar selected"
		return m, nil
	}
	m.mode = modeDeleteConfirm
	m.confirmYes = false
	return m, nil
}

// startCustomInput opens name entry for a new dvar, or value entry for key
// when editing.
func (m Model) startCustomInput(key string, edit bool) (tea.Model, tea.Cmd) {
	m.customEdit = edit
	m.customKey = key
	m.textInput.CharLimit = 128
	m.textInput.Width = 40
	if edit {
		m.customStage = 1
		m.textInput.SetValue(m.sess.Value(key))
	} else {
		m.customStage = 0
		m.textInput.SetValue("")
	}
	m.textInput.CursorEnd()
	m.textInput.Focus()
	m.mode = modeCustomInput
	return m, textinput.Blink
}

// updateCustomInput handles name and value entry for a custom dvar.
func (m Model) updateCustomInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.textInput.Blur()
		m.mode = modeCustomList
		return m, nil
	case tea.KeyEnter:
		val := m.textInput.Value()
		if m.customStage == 0 {
			if val == "" {
				m.message = "A dvar name is required"
				return m, nil
			}
			m.customKey = val
			m.customStage = 1
			m.textInput.SetValue("")
			return m, nil
		}
		var err error
		if m.customEdit {
			err = m.sess.EditCustom(m.customKey, val)
		} else {
			err = m.sess.AddCustom(m.customKey, val)
		}
		if err != nil {
			m.message = "Invalid dvar: " + err.Error()
			if !m.customEdit {
				// Back to the name so a bad name can be fixed.
				m.customStage = 0
				m.textInput.SetValue(m.customKey)
				m.textInput.CursorEnd()
			}
			return m, nil
		}
		logging.Debug("custom dvar %s set", m.customKey)
		m.textInput.Blur()
		m.mode = modeCustomList
		m.selectCustom(m.customKey)
		m.message = fmt.Sprintf("%s saved in memory (S to write the file)", m.customKey)
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// selectCustom moves the list cursor onto key.
func (m *Model) selectCustom(key string) {
	for i, s := range m.sess.Custom() {
		if s.Key == key {
			m.listCursor = i
			m.ensureListVisible()
			return
		}
	}
}

// deleteCustom removes the dvar under the cursor.
func (m *Model) deleteCustom() {
	custom := m.sess.Custom()
	if m.listCursor >= len(custom) {
		return
	}
	key := custom[m.listCursor].Key
	if err := m.sess.RemoveCustom(key); err != nil {
		m.message = err.Error()
		return
	}
	m.message = key + " removed"
	if m.listCursor >= len(custom)-1 {
		m.listCursor = max(0, len(custom)-2)
	}
	m.ensureListVisible()
}
