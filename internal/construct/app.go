package construct

import (
	"fmt"
	"sync"
)

// App is the root of the deployment-definition tree.
type App struct {
	mu     sync.RWMutex
	stacks []*Stack
}

// NewApp creates an empty app.
func NewApp() *App {
	return &App{}
}

// Stacks returns the stacks in the order they were created.
func (a *App) Stacks() []*Stack {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*Stack, len(a.stacks))
	copy(out, a.stacks)
	return out
}

// Stack returns the stack with the given ID.
func (a *App) Stack(id string) (*Stack, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, s := range a.stacks {
		if s.id == id {
			return s, true
		}
	}
	return nil, false
}

func (a *App) addStack(s *Stack) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, existing := range a.stacks {
		if existing.id == s.id {
			return fmt.Errorf("stack %q already exists", s.id)
		}
	}
	a.stacks = append(a.stacks, s)
	return nil
}
