package prefs

import "fmt"

const (
	DefaultWindowWidth    = 740
	DefaultWindowHeight   = 600
	DefaultRosterFilePath = "data/roster.json"
)

// GUISettings stores the last window geometry of the desktop client.
type GUISettings struct {
	WindowWidth  float64
	WindowHeight float64
	// X and Y are nil until the window has been placed once.
	X *int
	Y *int
}

func DefaultGUISettings() GUISettings {
	return GUISettings{
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
	}
}

func (g GUISettings) Equal(other GUISettings) bool {
	return g.WindowWidth == other.WindowWidth &&
		g.WindowHeight == other.WindowHeight &&
		equalCoordinate(g.X, other.X) &&
		equalCoordinate(g.Y, other.Y)
}

// UserPrefs are per-user settings persisted next to the roster.
type UserPrefs struct {
	GUI            GUISettings
	RosterFilePath string
}

func Default() UserPrefs {
	return UserPrefs{
		GUI:            DefaultGUISettings(),
		RosterFilePath: DefaultRosterFilePath,
	}
}

func (p UserPrefs) Validate() error {
	if p.RosterFilePath == "" {
		return fmt.Errorf("roster file path is required")
	}
	if p.GUI.WindowWidth <= 0 || p.GUI.WindowHeight <= 0 {
		return fmt.Errorf("window size must be greater than zero")
	}

	return nil
}

func equalCoordinate(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
