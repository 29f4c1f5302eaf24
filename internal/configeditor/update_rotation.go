package configeditor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stlalpha/h2mcfg/internal/rotation"
)

// updateRotationList handles the map rotation list.
func (m Model) updateRotationList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := m.sess.MapCount()
	if m.moveListCursor(msg, total) {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = modeTopMenu
		return m, nil
	case tea.KeyInsert:
		return m.startAddMap()
	case tea.KeyDelete:
		return m.removeMap()
	case tea.KeyShiftUp:
		return m.moveMap(-1)
	case tea.KeyShiftDown:
		return m.moveMap(1)
	}
	switch msg.String() {
	case "a", "A", "i", "I":
		return m.startAddMap()
	case "d", "D":
		return m.removeMap()
	case "-", "u", "U":
		return m.moveMap(-1)
	case "+", "=", "n", "N":
		return m.moveMap(1)
	case "r", "R":
		m.openPicker("Randomize: Select Gametype", gametypeItems(), m.lastGametype, pickRandomGametype)
		return m, nil
	}
	return m, nil
}

func (m Model) startAddMap() (tea.Model, tea.Cmd) {
	m.openPicker("Add Map: Select Gametype", gametypeItems(), m.lastGametype, pickAddGametype)
	return m, nil
}

func (m Model) removeMap() (tea.Model, tea.Cmd) {
	if err := m.sess.RemoveMap(m.listCursor); err != nil {
		m.message = "No map selected"
		return m, nil
	}
	if m.listCursor >= m.sess.MapCount() {
		m.listCursor = max(0, m.sess.MapCount()-1)
	}
	m.ensureListVisible()
	return m, nil
}

func (m Model) moveMap(dir int) (tea.Model, tea.Cmd) {
	var (
		idx int
		err error
	)
	if dir < 0 {
		idx, err = m.sess.MoveMapUp(m.listCursor)
	} else {
		idx, err = m.sess.MoveMapDown(m.listCursor)
	}
	if err != nil {
		m.message = "No map selected"
		return m, nil
	}
	m.listCursor = idx
	m.ensureListVisible()
	return m, nil
}

// randomBound is the largest count the randomize prompt accepts.
func (m Model) randomBound() int {
	return min(m.maxRandom, m.sess.Catalog().Len())
}

func (m Model) startRandomCount() (tea.Model, tea.Cmd) {
	bound := m.randomBound()
	if bound == 0 {
		m.message = "No maps loaded; check the map list file"
		m.mode = modeRotationList
		return m, nil
	}
	m.textInput.CharLimit = 4
	m.textInput.Width = 6
	m.textInput.SetValue(strconv.Itoa(bound))
	m.textInput.CursorEnd()
	m.textInput.Focus()
	m.mode = modeRandomCount
	return m, textinput.Blink
}

// updateRandomCount handles the randomize count prompt.
func (m Model) updateRandomCount(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.textInput.Blur()
		m.mode = modeRotationList
		return m, nil
	case tea.KeyEnter:
		bound := m.randomBound()
		n, err := strconv.Atoi(strings.TrimSpace(m.textInput.Value()))
		if err != nil || n < 1 || n > bound {
			m.message = fmt.Sprintf("Enter a number from 1 to %d", bound)
			return m, nil
		}
		added, err := m.sess.Randomize(m.pendingGametype, n)
		if err != nil {
			m.message = "Randomize failed: " + err.Error()
			return m, nil
		}
		m.textInput.Blur()
		m.mode = modeRotationList
		m.listCursor, m.listScroll = 0, 0
		m.message = fmt.Sprintf("Rotation replaced with %d random %s maps", added, rotation.GametypeLabel(m.pendingGametype))
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}
