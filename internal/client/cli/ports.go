package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/recipes/internal/client/stores"
)

// syncWriter serializes writes; alerts arrive from timer goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// navigator records where the stores asked to go. The REPL acts on it after
// the command that triggered it returns.
type navigator struct {
	mu     sync.Mutex
	path   string
	moved  bool
	editor bool
}

var _ stores.Navigator = (*navigator)(nil)

func (n *navigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
	n.moved = true
}

// Replace updates the current path without asking for a reload.
func (n *navigator) Replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
}

func (n *navigator) OpenEditor() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.editor = true
}

func (n *navigator) Path() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

// take returns and clears the pending navigation.
func (n *navigator) take() (path string, moved, editor bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	path, moved, editor = n.path, n.moved, n.editor
	n.moved, n.editor = false, false
	return path, moved, editor
}

// loginFromPath extracts the login from a /user/<login> path.
func loginFromPath(path string) (string, bool) {
	login, ok := strings.CutPrefix(path, stores.UserPath(""))
	return login, ok && login != ""
}

type notifier struct {
	w io.Writer
}

var _ stores.Notifier = notifier{}

func (n notifier) Alert(msg string) {
	fmt.Fprintf(n.w, "\n! %s\n", msg)
}
