package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harborview-io/harborview/internal/api"
	"github.com/harborview-io/harborview/internal/session"
	"github.com/harborview-io/harborview/internal/store"
)

// programRef lets background goroutines (stream callbacks, session
// subscribers) deliver messages into the running program once it exists.
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) set(p *tea.Program) {
	r.mu.Lock()
	r.p = p
	r.mu.Unlock()
}

func (r *programRef) send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Run starts the interactive interface and blocks until the user quits.
func Run(sessions *session.Manager, client *api.Client, endpoints *store.EndpointStore) error {
	ref := &programRef{}
	m := newModel(sessions, client, endpoints, ref)

	p := tea.NewProgram(m, tea.WithAltScreen())
	ref.set(p)

	_, err := p.Run()
	return err
}
