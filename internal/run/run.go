package run

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Monika-msk/vtu-watcher/internal/diff"
	"github.com/Monika-msk/vtu-watcher/internal/domain"
)

// Step sentinels: the top level maps any of these to a non-zero exit.
var (
	ErrFetch   = errors.New("fetch failed")
	ErrNotify  = errors.New("notify failed")
	ErrPersist = errors.New("persist failed")
)

type Fetcher interface {
	FetchAll(ctx context.Context) ([]domain.Listing, error)
}

type Notifier interface {
	Notify(ctx context.Context, listings []domain.Listing) error
}

type SeenStore interface {
	Load(ctx context.Context) (map[string]struct{}, error)
	MarkSeen(ctx context.Context, ids []string) error
}

type Hydrator interface {
	Hydrate(ctx context.Context, l *domain.Listing) error
}

type Runner struct {
	Fetcher  Fetcher
	Store    SeenStore
	Notifier Notifier
	Hydrator Hydrator // optional
	DryRun   bool
}

type Summary struct {
	Fetched  int
	New      int
	Notified int
}

// Run executes one watch cycle: load seen-set, fetch, diff, notify,
// persist. The seen-set is written only after a successful notification
// (or when there was nothing new), so a failed email means the same
// listings come back next run instead of vanishing untold.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var s Summary

	seen, err := r.Store.Load(ctx)
	if err != nil {
		log.Printf("[persist] load error: %v", err)
		return s, step(ErrPersist, err)
	}

	all, err := r.Fetcher.FetchAll(ctx)
	if err != nil {
		log.Printf("[fetch] error: %v", err)
		return s, step(ErrFetch, err)
	}
	s.Fetched = len(all)

	fresh := diff.New(all, seen)
	s.New = len(fresh)
	log.Printf("[run] fetched %d listings; new: %d", s.Fetched, s.New)

	if len(fresh) == 0 {
		return s, nil
	}

	if r.Hydrator != nil {
		for i := range fresh {
			if err := r.Hydrator.Hydrate(ctx, &fresh[i]); err != nil {
				log.Printf("[hydrate] %s: %v", fresh[i].ID, err)
			}
		}
	}

	if err := r.Notifier.Notify(ctx, fresh); err != nil {
		log.Printf("[notify] error: %v", err)
		return s, step(ErrNotify, err)
	}
	s.Notified = len(fresh)

	if r.DryRun {
		log.Printf("[persist] dry run; seen-set not updated")
		return s, nil
	}
	if err := r.Store.MarkSeen(ctx, diff.IDs(fresh)); err != nil {
		// accepted risk: next run re-notifies these listings, which
		// beats losing them
		log.Printf("[persist] error: %v", err)
		return s, step(ErrPersist, err)
	}

	return s, nil
}

func step(kind, err error) error {
	return fmt.Errorf("%w: %w", kind, err)
}
