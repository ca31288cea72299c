package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/AkashQuad/trackqfrontend/core/task"
)

// Store persists session state between runs: the auth token and the per-task
// "hours last logged" day map that drives the logging reminder. It is the
// local counterpart of what the browser front-end kept in localStorage.
type Store struct {
	mu   sync.Mutex
	path string

	state storeState
}

type storeState struct {
	Token           string         `json:"token,omitempty"`
	LastHoursUpdate map[int]string `json:"lastHoursUpdate"` // task ID -> yyyy-mm-dd
}

// NewStore loads the store at path, tolerating a missing file.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, state: storeState{LastHoursUpdate: make(map[int]string)}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading session store")
	}
	if err = json.Unmarshal(data, &s.state); err != nil {
		return nil, errors.Wrap(err, "decoding session store")
	}
	if s.state.LastHoursUpdate == nil {
		s.state.LastHoursUpdate = make(map[int]string)
	}
	return s, nil
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	return s.save()
}

// Clear drops the token and the hours map; used on logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = storeState{LastHoursUpdate: make(map[int]string)}
	return s.save()
}

// MarkHoursLogged records that hours were logged for taskID today.
func (s *Store) MarkHoursLogged(taskID int, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastHoursUpdate[taskID] = task.DayKey(now)
	return s.save()
}

// ForgetTask drops a task's hours marker; used after the task is deleted.
func (s *Store) ForgetTask(taskID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.LastHoursUpdate[taskID]; !ok {
		return nil
	}
	delete(s.state.LastHoursUpdate, taskID)
	return s.save()
}

// LastHoursUpdate returns a copy of the map, pruned of entries not dated
// today. The pruned map is persisted when anything was dropped.
func (s *Store) LastHoursUpdate(now time.Time) map[int]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := task.DayKey(now)
	pruned := false
	for id, day := range s.state.LastHoursUpdate {
		if day != today {
			delete(s.state.LastHoursUpdate, id)
			pruned = true
		}
	}
	if pruned {
		_ = s.save() // best effort; stale entries are re-pruned next pass
	}

	out := make(map[int]string, len(s.state.LastHoursUpdate))
	for id, day := range s.state.LastHoursUpdate {
		out[id] = day
	}
	return out
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "creating session store dir")
	}
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding session store")
	}
	return errors.Wrap(os.WriteFile(s.path, data, 0o600), "writing session store")
}
