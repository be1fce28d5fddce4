package category_cache

import (
	"testing"

	"github.com/online-bazar/bazar-backend/models"
)

func TestTreeCacheInvalidate(t *testing.T) {
	Invalidate()
	if _, ok := GetTree(); ok {
		t.Fatal("expected empty cache")
	}

	SetTree([]models.CategoryNode{{Name: "Sarees", Slug: "sarees"}})
	SetFlat([]models.Category{{Name: "Sarees", Slug: "sarees"}})

	roots, ok := GetTree()
	if !ok || len(roots) != 1 || roots[0].Slug != "sarees" {
		t.Fatalf("unexpected tree: %+v ok=%v", roots, ok)
	}
	if flat, ok := GetFlat(); !ok || len(flat) != 1 {
		t.Fatalf("unexpected flat list: %+v ok=%v", flat, ok)
	}

	Invalidate()
	if _, ok := GetTree(); ok {
		t.Error("tree still cached after Invalidate")
	}
	if _, ok := GetFlat(); ok {
		t.Error("flat list still cached after Invalidate")
	}
}
