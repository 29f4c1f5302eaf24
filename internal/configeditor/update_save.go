package configeditor

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// save writes the session to disk and reports whether it succeeded.
func (m *Model) save() bool {
	if err := m.sess.Save(); err != nil {
		log.Printf("ERROR: saving %s: %v", m.sess.ConfigPath(), err)
		m.message = fmt.Sprintf("SAVE ERROR: %v", err)
		return false
	}
	m.message = "Configuration saved to " + m.sess.ConfigPath()
	return true
}

// reload discards unsaved changes and re-reads the settings file.
func (m *Model) reload() {
	if err := m.sess.Reload(); err != nil {
		log.Printf("ERROR: reloading %s: %v", m.sess.ConfigPath(), err)
		m.message = fmt.Sprintf("RELOAD ERROR: %v", err)
		return
	}
	m.clampCursors()
	m.message = "Reloaded " + m.sess.ConfigPath()
}

// clampCursors keeps list cursors inside lists that may have shrunk.
func (m *Model) clampCursors() {
	var n int
	switch m.mode {
	case modeCustomList:
		n = len(m.sess.Custom())
	case modeRotationList:
		n = m.sess.MapCount()
	default:
		return
	}
	if m.listCursor >= n {
		m.listCursor = max(0, n-1)
	}
	if m.listScroll > m.listCursor {
		m.listScroll = m.listCursor
	}
}

// handleFileChanged reacts to an external write of the settings file. A
// clean session reloads silently; unsaved edits ask first.
func (m Model) handleFileChanged() (tea.Model, tea.Cmd) {
	changed, err := m.sess.ChangedOnDisk()
	if err != nil {
		log.Printf("WARN: checking %s: %v", m.sess.ConfigPath(), err)
		return m, nil
	}
	if !changed {
		return m, nil
	}
	if !m.sess.Dirty() {
		if m.mode == modeFieldInput || m.mode == modeCustomInput || m.mode == modeRandomCount {
			m.message = "Settings file changed on disk"
			return m, nil
		}
		m.reload()
		m.message = "Settings file changed on disk and was reloaded"
		return m, nil
	}
	switch m.mode {
	case modeTopMenu, modeFieldEdit, modeCustomList, modeRotationList:
		m.returnMode = m.mode
		m.mode = modeReloadConfirm
		m.confirmYes = false
	default:
		m.message = "Settings file changed on disk"
	}
	return m, nil
}
