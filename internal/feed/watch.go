package feed

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/avitaltamir/vibechat/internal/logger"
)

// ChangedMsg is sent when the watched file changes on disk.
type ChangedMsg struct {
	Path string
	Op   fsnotify.Op
}

// Watcher reports changes to one file. It watches the containing directory
// so that editors which replace the file are noticed.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// Watch starts watching path.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &Watcher{path: abs, watcher: w}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Wait returns a command that blocks until the file changes.
func (w *Watcher) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				return ChangedMsg{Path: event.Name, Op: event.Op}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("feed watch error: %v", err)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
