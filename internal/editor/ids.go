package editor

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces entry ids that are unique within a resume
type IDGenerator interface {
	ExperienceID() string
	EducationID() string
}

// UUIDGenerator produces random ids, unique across sessions
type UUIDGenerator struct{}

// ExperienceID returns a new experience id, e.g. "exp-3b7c..."
func (UUIDGenerator) ExperienceID() string {
	return "exp-" + uuid.NewString()
}

// EducationID returns a new education id
func (UUIDGenerator) EducationID() string {
	return "edu-" + uuid.NewString()
}

// SequenceGenerator produces exp-1, exp-2, ... and edu-1, edu-2, ...
// It is deterministic and safe for concurrent use.
type SequenceGenerator struct {
	mu  sync.Mutex
	exp int
	edu int
}

// ExperienceID returns the next experience id in sequence
func (g *SequenceGenerator) ExperienceID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.exp++
	return fmt.Sprintf("exp-%d", g.exp)
}

// EducationID returns the next education id in sequence
func (g *SequenceGenerator) EducationID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edu++
	return fmt.Sprintf("edu-%d", g.edu)
}
