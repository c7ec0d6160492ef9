package messenger

// Toggle is a visual on/off switch. Switches start on and change nothing
// outside this struct.
type Toggle struct {
	ID     string
	Label  string
	On     bool
	Locked bool
}

// SettingsGroup is a titled block of switches or static entries
type SettingsGroup struct {
	Title   string
	Toggles []Toggle
	Note    string
	Entries []string
}

// Settings is the Settings section state
type Settings struct {
	groups []SettingsGroup
}

// NewSettings returns the default settings layout
func NewSettings() *Settings {
	return &Settings{groups: []SettingsGroup{
		{
			Title: "Notifications",
			Toggles: []Toggle{
				{ID: "notifications", Label: "Message notifications", On: true},
				{ID: "sound", Label: "Notification sound", On: true},
				{ID: "vibration", Label: "Vibration", On: true},
			},
		},
		{
			Title: "Privacy",
			Toggles: []Toggle{
				{ID: "lastseen", Label: "Show last seen", On: true},
				{ID: "readreceipts", Label: "Send read receipts", On: true},
				{ID: "profile-photo", Label: "Show profile photo", On: true},
			},
		},
		{
			Title: "Appearance",
			Toggles: []Toggle{
				{ID: "darkmode", Label: "Dark theme", On: true, Locked: true},
			},
			Note: "Dark theme is on by default for comfortable use",
		},
		{
			Title:   "Storage",
			Entries: []string{"Clear cache"},
		},
		{
			Title:   "Support",
			Entries: []string{"Privacy policy", "Contact support", "About"},
		},
	}}
}

// Groups returns the settings layout
func (s *Settings) Groups() []SettingsGroup {
	return s.groups
}

// Toggles returns every switch in display order
func (s *Settings) Toggles() []Toggle {
	var all []Toggle
	for _, g := range s.groups {
		all = append(all, g.Toggles...)
	}
	return all
}

// Flip inverts the switch with id. Locked or unknown switches report false.
func (s *Settings) Flip(id string) bool {
	for gi := range s.groups {
		for ti := range s.groups[gi].Toggles {
			t := &s.groups[gi].Toggles[ti]
			if t.ID != id {
				continue
			}
			if t.Locked {
				return false
			}
			t.On = !t.On
			return true
		}
	}
	return false
}
