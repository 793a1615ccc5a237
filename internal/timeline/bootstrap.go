package timeline

import (
	"context"

	"github.com/javiermolinar/timeblock/internal/item"
)

// BootResult is the initial item set and how it was obtained.
type BootResult struct {
	Items []item.Item

	// Seeded is set when the store was empty and the defaults were written.
	Seeded bool
	// Fallback is set when loading failed; the defaults are shown but not
	// persisted.
	Fallback bool

	LoadErr  error
	SaveErrs []error
}

// Bootstrap loads the saved items. An empty store is seeded with the
// default items; a store that cannot be read falls back to the defaults
// in memory only. Failures are reported in the result and never abort the
// session.
func Bootstrap(ctx context.Context, store item.Store) BootResult {
	saved, err := store.LoadAll(ctx)
	if err != nil {
		return BootResult{Items: item.Defaults(), Fallback: true, LoadErr: err}
	}
	if len(saved) > 0 {
		return BootResult{Items: saved}
	}

	res := BootResult{Items: item.Defaults(), Seeded: true}
	for _, it := range res.Items {
		if err := store.Save(ctx, it); err != nil {
			res.SaveErrs = append(res.SaveErrs, err)
		}
	}
	return res
}
