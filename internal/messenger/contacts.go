package messenger

import (
	"strings"

	"github.com/samber/lo"

	"github.com/n0ko/wix-tui/internal/store"
)

// DefaultContactAvatar is used for new contacts
const DefaultContactAvatar = "👤"

// ContactForm is the shared add/edit form
type ContactForm struct {
	Name     string `validate:"required"`
	Username string
	Phone    string `validate:"required"`
	Avatar   string
}

func emptyContactForm() ContactForm {
	return ContactForm{Avatar: DefaultContactAvatar}
}

// ContactBook is the Contacts section state
type ContactBook struct {
	contacts  []store.Contact
	query     string
	form      ContactForm
	formOpen  bool
	editingID string
}

// NewContactBook creates an empty contact book
func NewContactBook() *ContactBook {
	return &ContactBook{form: emptyContactForm()}
}

// Contacts returns all contacts in insertion order
func (b *ContactBook) Contacts() []store.Contact {
	return b.contacts
}

// Len returns the number of contacts, ignoring the filter
func (b *ContactBook) Len() int {
	return len(b.contacts)
}

// SetQuery sets the search filter
func (b *ContactBook) SetQuery(q string) {
	b.query = q
}

// Query returns the search filter
func (b *ContactBook) Query() string {
	return b.query
}

// Filtered returns contacts whose name or username contains the query,
// case-insensitively
func (b *ContactBook) Filtered() []store.Contact {
	q := strings.ToLower(b.query)
	return lo.Filter(b.contacts, func(c store.Contact, _ int) bool {
		return strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Username), q)
	})
}

// EmptyText is the placeholder shown when the filtered list is empty
func (b *ContactBook) EmptyText() string {
	if len(b.contacts) == 0 {
		return "No contacts"
	}
	return "No contacts found"
}

// CanSaveContact reports whether form has the required fields
func CanSaveContact(form ContactForm) bool {
	return validate.Struct(form) == nil
}

// Add validates form and appends a new contact
func (b *ContactBook) Add(form ContactForm) (store.Contact, error) {
	if !CanSaveContact(form) {
		return store.Contact{}, ErrContactInvalid
	}
	if form.Avatar == "" {
		form.Avatar = DefaultContactAvatar
	}
	c := store.Contact{
		ID:       store.NewID(),
		Name:     form.Name,
		Username: form.Username,
		Phone:    form.Phone,
		Avatar:   form.Avatar,
	}
	b.contacts = append(b.contacts, c)
	return c, nil
}

// Update overwrites every field of the contact with id
func (b *ContactBook) Update(id string, form ContactForm) (store.Contact, error) {
	if !CanSaveContact(form) {
		return store.Contact{}, ErrContactInvalid
	}
	_, idx, ok := lo.FindIndexOf(b.contacts, func(c store.Contact) bool { return c.ID == id })
	if !ok {
		return store.Contact{}, ErrContactNotFound
	}
	c := store.Contact{
		ID:       id,
		Name:     form.Name,
		Username: form.Username,
		Phone:    form.Phone,
		Avatar:   form.Avatar,
	}
	b.contacts[idx] = c
	return c, nil
}

// Delete removes the contact with id outright
func (b *ContactBook) Delete(id string) bool {
	before := len(b.contacts)
	b.contacts = lo.Reject(b.contacts, func(c store.Contact, _ int) bool { return c.ID == id })
	if b.editingID == id {
		b.CloseForm()
	}
	return len(b.contacts) < before
}

// OpenAdd opens an empty form in add mode
func (b *ContactBook) OpenAdd() {
	b.editingID = ""
	b.form = emptyContactForm()
	b.formOpen = true
}

// OpenEdit pre-fills the form from the contact with id and enters edit mode
func (b *ContactBook) OpenEdit(id string) error {
	c, ok := lo.Find(b.contacts, func(c store.Contact) bool { return c.ID == id })
	if !ok {
		return ErrContactNotFound
	}
	b.editingID = id
	b.form = ContactForm{Name: c.Name, Username: c.Username, Phone: c.Phone, Avatar: c.Avatar}
	b.formOpen = true
	return nil
}

// CloseForm discards the form
func (b *ContactBook) CloseForm() {
	b.formOpen = false
	b.editingID = ""
	b.form = emptyContactForm()
}

// FormOpen reports whether the add/edit form is showing
func (b *ContactBook) FormOpen() bool {
	return b.formOpen
}

// Editing returns the id being edited, or "" in add mode
func (b *ContactBook) Editing() string {
	return b.editingID
}

// Form returns the current form values
func (b *ContactBook) Form() ContactForm {
	return b.form
}

// SetForm replaces the current form values
func (b *ContactBook) SetForm(form ContactForm) {
	b.form = form
}

// Save routes the form to Update in edit mode or Add otherwise and closes
// the form on success
func (b *ContactBook) Save() (store.Contact, error) {
	var (
		c   store.Contact
		err error
	)
	if b.editingID != "" {
		c, err = b.Update(b.editingID, b.form)
	} else {
		c, err = b.Add(b.form)
	}
	if err != nil {
		return store.Contact{}, err
	}
	b.CloseForm()
	return c, nil
}
