package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-console/internal/narrative"
	"github.com/pixil98/go-console/internal/storage"
	"github.com/pixil98/go-console/internal/world"
	"github.com/pixil98/go-errors"
)

type StorageConfig struct {
	Actors     AssetConfig[*world.Actor]    `json:"actors"`
	Narratives AssetConfig[*narrative.Spec] `json:"narratives"`
}

func (c *StorageConfig) BuildWorld() (*world.Projection, error) {
	actors, err := c.Actors.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating actor store: %w", err)
	}
	return world.NewProjection(actors), nil
}

func (c *StorageConfig) BuildRenderer() (*narrative.Renderer, error) {
	specs, err := c.Narratives.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating narrative store: %w", err)
	}
	return narrative.NewRenderer(specs), nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Actors.Validate("actors"))
	el.Add(c.Narratives.Validate("narratives"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
