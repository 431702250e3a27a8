package jsonfile

import (
	"context"
	"sync"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-roster/internal/domain/prefs"
)

type prefsDocument struct {
	GUI            guiRecord `json:"guiSettings"`
	RosterFilePath string    `json:"rosterFilePath"`
}

type guiRecord struct {
	WindowWidth  float64 `json:"windowWidth"`
	WindowHeight float64 `json:"windowHeight"`
	X            *int    `json:"x,omitempty"`
	Y            *int    `json:"y,omitempty"`
}

type PrefsStore struct {
	mu   sync.Mutex
	path string
}

func NewPrefsStore(path string) *PrefsStore {
	return &PrefsStore{path: path}
}

func (s *PrefsStore) Load(_ context.Context) (prefs.UserPrefs, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, found, err := readFile(s.path)
	if err != nil || !found {
		return prefs.UserPrefs{}, false, err
	}

	var doc prefsDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return prefs.UserPrefs{}, true, crerr.Wrapf(err, "decode %s", s.path)
	}
	return prefs.UserPrefs{
		GUI: prefs.GUISettings{
			WindowWidth:  doc.GUI.WindowWidth,
			WindowHeight: doc.GUI.WindowHeight,
			X:            doc.GUI.X,
			Y:            doc.GUI.Y,
		},
		RosterFilePath: doc.RosterFilePath,
	}, true, nil
}

func (s *PrefsStore) Save(_ context.Context, userPrefs prefs.UserPrefs) error {
	doc := prefsDocument{
		GUI: guiRecord{
			WindowWidth:  userPrefs.GUI.WindowWidth,
			WindowHeight: userPrefs.GUI.WindowHeight,
			X:            userPrefs.GUI.X,
			Y:            userPrefs.GUI.Y,
		},
		RosterFilePath: userPrefs.RosterFilePath,
	}
	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode user prefs")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFile(s.path, data)
}
