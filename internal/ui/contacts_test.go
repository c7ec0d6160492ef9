package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0ko/wix-tui/internal/messenger"
)

func newTestContacts(t *testing.T) *ContactsModel {
	t.Helper()
	m := NewContactsModel(newTestDeps(t, nil), newTestMount(t))
	m.SetSize(90, 30)
	return m
}

func fillContact(m *ContactsModel, name, username, phone string) {
	m.Update(runes(name))
	m.Update(tab)
	m.Update(runes(username))
	m.Update(tab)
	m.Update(runes(phone))
	m.Update(enter)
}

func TestContacts_EmptyState(t *testing.T) {
	m := newTestContacts(t)

	assert.Contains(t, m.View(), "No contacts")
	assert.Nil(t, m.SelectedContact())
	assert.False(t, m.Capturing())
}

func TestContacts_AddViaForm(t *testing.T) {
	m := newTestContacts(t)

	m.Update(runes("n"))
	require.True(t, m.Book().FormOpen())
	assert.True(t, m.Capturing())
	assert.Contains(t, m.View(), "New contact")

	fillContact(m, "Anna", "@anna", "+79990001122")

	assert.False(t, m.Book().FormOpen())
	require.Equal(t, 1, m.Book().Len())
	c := m.Book().Contacts()[0]
	assert.Equal(t, "Anna", c.Name)
	assert.Equal(t, "anna", c.Username)
	assert.Equal(t, "+79990001122", c.Phone)
	assert.Equal(t, messenger.DefaultContactAvatar, c.Avatar)
	assert.Contains(t, m.View(), "Contact added")
}

func TestContacts_SaveRequiresNameAndPhone(t *testing.T) {
	m := newTestContacts(t)

	m.Update(runes("n"))
	m.Update(runes("Anna"))
	m.Update(enter)

	assert.True(t, m.Book().FormOpen())
	assert.Equal(t, 0, m.Book().Len())
	assert.Contains(t, m.View(), "Name and phone are required")

	m.Update(esc)
	assert.False(t, m.Book().FormOpen())
	assert.Equal(t, 0, m.Book().Len())
}

func TestContacts_EditKeepsID(t *testing.T) {
	m := newTestContacts(t)
	m.Update(runes("n"))
	fillContact(m, "Anna", "", "+7999")
	id := m.Book().Contacts()[0].ID

	m.Update(runes("e"))
	require.True(t, m.Book().FormOpen())
	assert.Equal(t, id, m.Book().Editing())
	assert.Equal(t, "Anna", m.fields[fieldName].Value())
	assert.Contains(t, m.View(), "Edit contact")

	m.Update(runes(" K."))
	m.Update(enter)

	require.Equal(t, 1, m.Book().Len())
	c := m.Book().Contacts()[0]
	assert.Equal(t, id, c.ID)
	assert.Equal(t, "Anna K.", c.Name)
	assert.Contains(t, m.View(), "Contact updated")
}

func TestContacts_SearchAndDelete(t *testing.T) {
	m := newTestContacts(t)
	m.Update(runes("n"))
	fillContact(m, "Anna", "anna", "+7999")
	m.Update(runes("n"))
	fillContact(m, "Bob", "bobby", "+7888")

	m.Update(runes("/"))
	m.Update(runes("BOBB"))
	m.Update(enter)
	require.Len(t, m.Book().Filtered(), 1)
	assert.Equal(t, "Bob", m.SelectedContact().Name)

	m.Update(runes("d"))
	assert.Equal(t, 1, m.Book().Len())
	assert.Contains(t, m.View(), "No contacts found")

	m.Update(esc)
	assert.Equal(t, "Anna", m.SelectedContact().Name)
}

func TestContacts_FieldFocusWraps(t *testing.T) {
	m := newTestContacts(t)
	m.Update(runes("n"))

	m.Update(keyOf(tea.KeyShiftTab))
	assert.Equal(t, fieldAvatar, m.focus)
	m.Update(tab)
	assert.Equal(t, fieldName, m.focus)
}
