package reconcile

import (
	"sync"

	"github.com/matsen/citegraph/internal/record"
)

// ProjectRegistry accumulates funding projects across the whole batch.
// Projects are merged by normalized name, and each keeps the set of
// papers that resolved to it. Appends are mutex-guarded so per-paper
// reconciliation may run concurrently.
type ProjectRegistry struct {
	mu       sync.Mutex
	projects map[string]*record.Project
	order    []string
}

// NewProjectRegistry creates an empty registry.
func NewProjectRegistry() *ProjectRegistry {
	return &ProjectRegistry{projects: make(map[string]*record.Project)}
}

// Attach records that the paper resolved to the project. If a project
// with the same identity key is already registered, the candidate's
// fields complement it and the existing record wins; otherwise the
// candidate is registered as-is. Returns the canonical project.
func (r *ProjectRegistry) Attach(proj *record.Project, paper *record.Paper) *record.Project {
	if proj == nil || proj.Key() == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.projects[proj.Key()]
	if !ok {
		r.projects[proj.Key()] = proj
		r.order = append(r.order, proj.Key())
		existing = proj
	} else {
		mergeProject(existing, proj)
	}

	existing.AttachPaper(paper)
	return existing
}

// Projects returns all registered projects in first-seen order.
func (r *ProjectRegistry) Projects() []*record.Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*record.Project, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.projects[key])
	}
	return out
}

// Len returns the number of registered projects.
func (r *ProjectRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.projects)
}
