package category_cache

import (
	"sync"
	"time"

	"github.com/online-bazar/bazar-backend/models"
)

const TTL = 5 * time.Minute

// ── Storefront category tree ─────────────────────────────────────────────────
// Active categories nested by parent, with active-item counts rolled up.

type treeEntry struct {
	roots     []models.CategoryNode
	fetchedAt time.Time
}

var (
	treeMu    sync.RWMutex
	treeCache *treeEntry
)

func GetTree() ([]models.CategoryNode, bool) {
	treeMu.RLock()
	defer treeMu.RUnlock()
	if treeCache != nil && time.Since(treeCache.fetchedAt) < TTL {
		return treeCache.roots, true
	}
	return nil, false
}

func SetTree(roots []models.CategoryNode) {
	treeMu.Lock()
	defer treeMu.Unlock()
	treeCache = &treeEntry{roots: roots, fetchedAt: time.Now()}
}

// ── Flat active list (slug lookups and descendant expansion) ─────────────────

type flatEntry struct {
	data      []models.Category
	fetchedAt time.Time
}

var (
	flatMu    sync.RWMutex
	flatCache *flatEntry
)

func GetFlat() ([]models.Category, bool) {
	flatMu.RLock()
	defer flatMu.RUnlock()
	if flatCache != nil && time.Since(flatCache.fetchedAt) < TTL {
		return flatCache.data, true
	}
	return nil, false
}

func SetFlat(data []models.Category) {
	flatMu.Lock()
	defer flatMu.Unlock()
	flatCache = &flatEntry{data: data, fetchedAt: time.Now()}
}

// ── Invalidate everything (call on any category or item write) ───────────────

func Invalidate() {
	treeMu.Lock()
	treeCache = nil
	treeMu.Unlock()

	flatMu.Lock()
	flatCache = nil
	flatMu.Unlock()
}
