package configeditor

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// pickerVisibleRows is the max number of items visible in the picker popup.
const pickerVisibleRows = 10

// openPicker shows items with the cursor on the item whose Value is current.
func (m *Model) openPicker(title string, items []LookupItem, current string, purpose pickerPurpose) {
	if m.mode != modeLookupPicker {
		m.pickerReturnMode = m.mode
	}
	m.pickerTitle = title
	m.pickerItems = items
	m.pickerPurpose = purpose
	m.pickerCursor, m.pickerScroll = 0, 0
	for i, it := range items {
		if it.Value == current {
			m.pickerCursor = i
			break
		}
	}
	m.ensurePickerVisible()
	m.mode = modeLookupPicker
}

func (m *Model) ensurePickerVisible() {
	if m.pickerCursor < m.pickerScroll {
		m.pickerScroll = m.pickerCursor
	}
	if m.pickerCursor >= m.pickerScroll+pickerVisibleRows {
		m.pickerScroll = m.pickerCursor - pickerVisibleRows + 1
	}
}

// updateLookupPicker handles key input in the lookup picker mode.
func (m Model) updateLookupPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := len(m.pickerItems)
	if msg.Type == tea.KeyEscape {
		m.mode = m.pickerReturnMode
		return m, nil
	}
	if total == 0 {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyUp:
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case tea.KeyDown:
		if m.pickerCursor < total-1 {
			m.pickerCursor++
		}
	case tea.KeyHome:
		m.pickerCursor = 0
	case tea.KeyEnd:
		m.pickerCursor = total - 1
	case tea.KeyPgUp:
		m.pickerCursor = max(0, m.pickerCursor-pickerVisibleRows)
	case tea.KeyPgDown:
		m.pickerCursor = min(total-1, m.pickerCursor+pickerVisibleRows)
	case tea.KeyEnter:
		return m.pick(m.pickerItems[m.pickerCursor])
	}
	m.ensurePickerVisible()
	return m, nil
}

// pick applies a picker selection according to the picker's purpose.
func (m Model) pick(item LookupItem) (tea.Model, tea.Cmd) {
	switch m.pickerPurpose {
	case pickField:
		m.mode = m.pickerReturnMode
		f := m.fields[m.editField]
		if f.Set != nil {
			if err := f.Set(item.Value); err != nil {
				m.message = "Invalid selection: " + err.Error()
			}
		}
		return m, nil

	case pickAddGametype:
		m.pendingGametype = item.Value
		m.lastGametype = item.Value
		cat := m.sess.Catalog()
		if cat.Len() == 0 {
			m.mode = m.pickerReturnMode
			m.message = "No maps loaded; check the map list file"
			return m, nil
		}
		var items []LookupItem
		for _, c := range cat.Categories() {
			items = append(items, LookupItem{Value: c, Display: fmt.Sprintf("%s (%d maps)", c, len(cat.Maps(c)))})
		}
		m.openPicker("Add Map: Select Category", items, m.pendingCategory, pickAddCategory)
		return m, nil

	case pickAddCategory:
		m.pendingCategory = item.Value
		var items []LookupItem
		for _, e := range m.sess.Catalog().Maps(item.Value) {
			items = append(items, LookupItem{Value: e.Name, Display: fmt.Sprintf("%s (%s)", e.Name, e.Code)})
		}
		m.openPicker("Add Map: Select Map", items, "", pickAddMap)
		return m, nil

	case pickAddMap:
		m.mode = m.pickerReturnMode
		if err := m.sess.AddMapByName(m.pendingGametype, m.pendingCategory, item.Value); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.listCursor = m.sess.MapCount() - 1
		m.ensureListVisible()
		m.message = fmt.Sprintf("Added %s (%s)", item.Value, m.pendingGametype)
		return m, nil

	case pickRandomGametype:
		m.pendingGametype = item.Value
		m.lastGametype = item.Value
		m.mode = m.pickerReturnMode
		return m.startRandomCount()
	}
	m.mode = m.pickerReturnMode
	return m, nil
}
