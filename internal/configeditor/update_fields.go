package configeditor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// fieldsVisible is the number of field rows shown at once.
func (m Model) fieldsVisible() int {
	return max(5, m.height-10)
}

func (m *Model) ensureFieldVisible() {
	vis := m.fieldsVisible()
	if m.editField < m.fieldScroll {
		m.fieldScroll = m.editField
	}
	if m.editField >= m.fieldScroll+vis {
		m.fieldScroll = m.editField - vis + 1
	}
}

// updateFieldEdit handles navigation on a settings screen.
func (m Model) updateFieldEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := len(m.fields)
	switch msg.Type {
	case tea.KeyUp, tea.KeyShiftTab:
		if m.editField > 0 {
			m.editField--
		}
	case tea.KeyDown, tea.KeyTab:
		if m.editField < total-1 {
			m.editField++
		}
	case tea.KeyHome:
		m.editField = 0
	case tea.KeyEnd:
		m.editField = max(0, total-1)
	case tea.KeyPgUp:
		return m.switchSettingsScreen(-1), nil
	case tea.KeyPgDown:
		return m.switchSettingsScreen(1), nil
	case tea.KeyEnter:
		if total == 0 {
			return m, nil
		}
		return m.startFieldEdit()
	case tea.KeyEscape:
		m.mode = modeTopMenu
		return m, nil
	}
	m.ensureFieldVisible()
	return m, nil
}

// switchSettingsScreen moves to the previous or next settings screen.
func (m Model) switchSettingsScreen(delta int) Model {
	idx := m.screenItem + delta
	if idx < 0 || idx >= len(m.topItems) {
		return m
	}
	act := m.topItems[idx].action
	if act != actGeneral && act != actGametype {
		return m
	}
	m.topCursor = idx
	return m.openSettingsScreen(idx)
}

func (m Model) startFieldEdit() (tea.Model, tea.Cmd) {
	f := m.fields[m.editField]
	if f.Type == ftLookup {
		m.openPicker("Select "+f.Label, f.LookupItems(), f.Get(), pickField)
		return m, nil
	}
	m.textInput.SetValue(f.Get())
	m.textInput.CharLimit = 128
	m.textInput.Width = f.Width
	m.textInput.CursorEnd()
	m.textInput.Focus()
	m.mode = modeFieldInput
	return m, textinput.Blink
}

// updateFieldInput handles keys while a settings field is being typed.
func (m Model) updateFieldInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.fields[m.editField]
	switch msg.Type {
	case tea.KeyEnter, tea.KeyTab, tea.KeyDown:
		if !m.applyFieldInput(f) {
			return m, nil
		}
		if msg.Type != tea.KeyEnter && m.editField < len(m.fields)-1 {
			m.editField++
		}
		m.ensureFieldVisible()
		return m, nil
	case tea.KeyUp, tea.KeyShiftTab:
		if !m.applyFieldInput(f) {
			return m, nil
		}
		if m.editField > 0 {
			m.editField--
		}
		m.ensureFieldVisible()
		return m, nil
	case tea.KeyEscape:
		m.textInput.Blur()
		m.mode = modeFieldEdit
		return m, nil
	case tea.KeyRunes:
		if f.Type == ftNumber {
			for _, r := range msg.Runes {
				if !isNumberRune(r) {
					return m, nil
				}
			}
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// applyFieldInput stores the typed value. On a validation error the input
// stays open with the error flashed.
func (m *Model) applyFieldInput(f fieldDef) bool {
	val := m.textInput.Value()
	if f.Type == ftNumber {
		val = strings.TrimSpace(val)
	}
	if f.Set != nil {
		if err := f.Set(val); err != nil {
			m.message = "Invalid value: " + err.Error()
			return false
		}
	}
	m.textInput.Blur()
	m.mode = modeFieldEdit
	return true
}
