package domain

// ============================================================
// User preferences (service-side, file-backed)
// ============================================================

// NotificationPrefs are the per-channel notification toggles.
type NotificationPrefs struct {
	Promocoes     bool `json:"promocoes"`
	Movimentacoes bool `json:"movimentacoes"`
	ResumoMensal  bool `json:"resumoMensal"`
}

// Preferences is the complete per-user UI preference blob. Loads always
// produce a complete object: missing keys are filled from DefaultPreferences
// before the value is handed out, and writes persist the whole object.
type Preferences struct {
	ReduceMotion  bool              `json:"reduceMotion"`
	HideValues    bool              `json:"hideValues"`
	Theme         string            `json:"theme"` // light, dark, system
	Notifications NotificationPrefs `json:"notifications"`
}

// DefaultPreferences returns the hard-coded defaults each load merges over.
func DefaultPreferences() Preferences {
	return Preferences{
		ReduceMotion: false,
		HideValues:   false,
		Theme:        "system",
		Notifications: NotificationPrefs{
			Promocoes:     true,
			Movimentacoes: true,
			ResumoMensal:  false,
		},
	}
}

// ValidTheme reports whether v is an accepted theme value.
func ValidTheme(v string) bool {
	return v == "light" || v == "dark" || v == "system"
}
