package world

import (
	"fmt"

	"github.com/pixil98/go-console/internal/storage"
	"github.com/pixil98/go-errors"
)

// Actor is the read-only projection of a world actor the console needs:
// enough to confirm a switch and seed the location memo.
type Actor struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (a *Actor) Validate() error {
	el := errors.NewErrorList()

	if a.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if a.Location == "" {
		el.Add(fmt.Errorf("location is required"))
	}

	return el.Err()
}

// Projection exposes the actor table keyed by actor id.
type Projection struct {
	actors storage.Storer[*Actor]
}

func NewProjection(actors storage.Storer[*Actor]) *Projection {
	return &Projection{actors: actors}
}

// Actor looks up an actor by id. The second return is false when the id is
// absent from the world.
func (p *Projection) Actor(id string) (*Actor, bool) {
	a := p.actors.Get(id)
	if a == nil {
		return nil, false
	}
	return a, true
}
