package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/storage"
)

// maxLookupConcurrency caps the fan-out of per-user profile lookups.
const maxLookupConcurrency = 8

// resolveProfiles fetches display identities for the given user IDs in
// parallel. A user that no longer resolves gets a placeholder profile; a
// single missing profile never fails the computation.
func resolveProfiles(ctx context.Context, store storage.Store, ids []string) (map[string]ledger.Profile, error) {
	users := make([]*profileResult, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxLookupConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			user, err := store.GetUserByID(ctx, id)
			if err != nil {
				return err
			}
			if user == nil {
				slog.Debug("User no longer resolves, using placeholder", "user_id", id)
				users[i] = &profileResult{id: id, profile: ledger.Profile{Name: ledger.DeletedUserName}}
				return nil
			}
			users[i] = &profileResult{id: id, profile: ledger.Profile{Name: user.Name, ImageURL: user.ImageURL}}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profiles := make(map[string]ledger.Profile, len(ids))
	for _, r := range users {
		if r != nil {
			profiles[r.id] = r.profile
		}
	}
	return profiles, nil
}

type profileResult struct {
	id      string
	profile ledger.Profile
}
