package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarryml/db2source"
	"github.com/quarryml/db2source/internal/config"
	"github.com/quarryml/db2source/internal/events"
	"github.com/quarryml/db2source/internal/idgen"
	"github.com/quarryml/db2source/internal/registry"
)

var registerCmd = &cobra.Command{
	Use:   "register [source-name...]",
	Short: "Register sources from the sources file into the registry",
	Long: `Register encodes each source into its wire form and upserts it into
the definition registry by name. With no arguments every source in the
file is registered; otherwise only the named ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := config.LoadSources(sourcesPath)
		if err != nil {
			return err
		}
		sources, err = filterSources(sources, args)
		if err != nil {
			return err
		}

		store, err := openRegistry()
		if err != nil {
			return err
		}
		defer store.Close()

		pub, closePub, err := openPublisher()
		if err != nil {
			return err
		}
		defer closePub()

		ctx := context.Background()
		for _, src := range sources {
			rec, updated, err := registerSource(ctx, store, src)
			if err != nil {
				return fmt.Errorf("register %s: %w", src.Name, err)
			}

			topic := events.TopicSourceRegistered
			var event any = events.SourceRegistered{ID: rec.ID, Name: rec.Name, ClassType: rec.ClassType}
			if updated {
				topic = events.TopicSourceUpdated
				event = events.SourceUpdated{ID: rec.ID, Name: rec.Name, ClassType: rec.ClassType}
			}
			if err := pub.Publish(ctx, topic, event); err != nil {
				logger.Warn("publish event failed", "topic", topic, "name", rec.Name, "error", err)
			}

			verb := "registered"
			if updated {
				verb = "updated"
			}
			fmt.Printf("%s %s (%s)\n", verb, rec.Name, rec.ID)
		}
		return nil
	},
}

// registerSource upserts one source and reports whether a definition
// with that name already existed.
func registerSource(ctx context.Context, store registry.Store, src *db2source.Source) (*registry.Record, bool, error) {
	proto, err := src.ToProto()
	if err != nil {
		return nil, false, err
	}

	updated := true
	if _, err := store.GetDefinition(ctx, src.Name); err != nil {
		if !errors.Is(err, registry.ErrNotFound) {
			return nil, false, err
		}
		updated = false
	}

	id, err := idgen.Generate()
	if err != nil {
		return nil, false, err
	}
	rec := &registry.Record{
		ID:        id,
		Name:      src.Name,
		ClassType: db2source.ClassType,
		Spec:      proto.Marshal(),
	}
	if err := store.PutDefinition(ctx, rec); err != nil {
		return nil, false, err
	}
	return rec, updated, nil
}

func filterSources(sources []*db2source.Source, names []string) ([]*db2source.Source, error) {
	if len(names) == 0 {
		return sources, nil
	}
	byName := make(map[string]*db2source.Source, len(sources))
	for _, src := range sources {
		byName[src.Name] = src
	}
	out := make([]*db2source.Source, 0, len(names))
	for _, name := range names {
		src, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("no source named %q in %s", name, sourcesPath)
		}
		out = append(out, src)
	}
	return out, nil
}
