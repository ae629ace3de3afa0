package seeder

import (
	"context"
	"fmt"

	"brainswap/internal/docstore"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, store docstore.Store) error
}

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, store docstore.Store) error {
	if store == nil {
		return fmt.Errorf("nil store")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, store); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
