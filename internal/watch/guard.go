package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"wsd/internal/models"
	"wsd/internal/providers"
	"wsd/internal/structures"
)

// GuardInterface is the per-device daily idempotency flag: read before every
// record attempt, set at most once per day.
type GuardInterface interface {
	HasRecordedToday() bool
	MarkRecordedToday() error
}

// DailyGuard keeps the set of recorded day ordinals in a roaring bitmap
// persisted to a local file distinct from the synced ledger. Bits for past
// days go stale naturally and are never cleared.
type DailyGuard struct {
	mu     sync.Mutex
	days   *roaring.Bitmap
	path   string
	logger providers.Logger
}

func NewDailyGuard(conf *structures.Config, logger providers.Logger) GuardInterface {
	g := &DailyGuard{
		days:   roaring.New(),
		path:   conf.LocalStore.FilePath,
		logger: logger,
	}
	g.load()
	return g
}

// load reads the persisted bitmap. Any failure resolves to "nothing
// recorded yet"; the guard only gates an operation that is already
// idempotent at the ledger level.
func (g *DailyGuard) load() {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if !os.IsNotExist(err) {
			g.logger.Errorf(providers.TypeApp, "Failed to read local day store %s: %s", g.path, err)
		}
		return
	}
	if err := g.days.UnmarshalBinary(data); err != nil {
		g.logger.Errorf(providers.TypeApp, "Failed to parse local day store %s: %s", g.path, err)
		g.days = roaring.New()
	}
}

func (g *DailyGuard) HasRecordedToday() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.days.Contains(models.OrdinalOf(time.Now()))
}

func (g *DailyGuard) MarkRecordedToday() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.days.Add(models.OrdinalOf(time.Now()))
	if err := g.persist(); err != nil {
		g.logger.Errorf(providers.TypeApp, "Failed to persist local day store %s: %s", g.path, err)
		return err
	}
	return nil
}

func (g *DailyGuard) persist() error {
	data, err := g.days.ToBytes()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(g.path), 0755); err != nil {
		return err
	}

	tmpFile := g.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, g.path)
}
