// Package state persists small pieces of UI state between runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/avitaltamir/vibechat/internal/errors"
)

const (
	configDirName = ".config"
	appDirName    = "vchat"
	stateFileName = "state.json"
)

// State represents the persisted application state.
type State struct {
	// ContactsPercent is the width percentage of the contacts pane (15-50)
	ContactsPercent int `json:"contacts_percent,omitempty"`
	// LastAccount is the account that was open on exit
	LastAccount string `json:"last_account,omitempty"`
	// LastRecipient is the id of the conversation that was open on exit
	LastRecipient string `json:"last_recipient,omitempty"`
	// Theme is the theme name or file used last
	Theme string `json:"theme,omitempty"`
}

// DefaultState returns the default state for first run.
func DefaultState() State {
	return State{}
}

// DefaultDir returns the state directory (~/.config/vchat).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, appDirName), nil
}

// Path returns the state file inside dir.
func Path(dir string) string {
	return filepath.Join(dir, stateFileName)
}

// LoadFrom reads the state in dir.
// Returns default state if the file doesn't exist or can't be read.
func LoadFrom(dir string) State {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return DefaultState()
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		// Invalid JSON - return defaults
		return DefaultState()
	}
	return s
}

// SaveTo writes the state into dir, creating it if needed.
func SaveTo(dir string, s State) error {
	const op errors.Op = "state.SaveTo"

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.E(op, errors.KindIO, err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.E(op, errors.KindInvalid, err)
	}
	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return errors.E(op, errors.KindIO, err)
	}
	return nil
}

// CheckWritable verifies that dir exists or can be created and that files
// can be written in it.
func CheckWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WorkDirNotWritable(dir, err)
	}
	f, err := os.CreateTemp(dir, ".vchat-check-*")
	if err != nil {
		return errors.WorkDirNotWritable(dir, err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}
