// Package view holds the list/view-state logic the pages share: client-side
// filtering, the batch-image sort, gallery pagination state and the joined
// batch-detail load.
package view

import (
	"sort"
	"strings"

	"mayagen-web/internal/model"
)

// ImageFilter is the filter bar state. Empty search and "all" selections
// match everything.
type ImageFilter struct {
	Search   string
	Category string
	Model    string
}

// Filterer narrows an already-loaded image list. It is an interface so the
// current page-local filtering can later be swapped for server-side filtered
// queries without touching the handlers.
type Filterer interface {
	Apply(images []model.GalleryImage, f ImageFilter) []model.GalleryImage
}

// LocalFilter filters only the currently loaded page. It never issues
// network requests and never changes pagination counts.
type LocalFilter struct{}

// Apply keeps images matching search AND category AND model. Search matches
// case-insensitively against prompt or filename (substring, OR between the
// two fields).
func (LocalFilter) Apply(images []model.GalleryImage, f ImageFilter) []model.GalleryImage {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]model.GalleryImage, 0, len(images))
	for _, img := range images {
		if search != "" &&
			!strings.Contains(strings.ToLower(img.Prompt), search) &&
			!strings.Contains(strings.ToLower(img.Filename), search) {
			continue
		}
		if f.Category != "" && f.Category != "all" && img.Category != f.Category {
			continue
		}
		if f.Model != "" && f.Model != "all" && img.Model != f.Model {
			continue
		}
		out = append(out, img)
	}
	return out
}

// Categories extracts the distinct categories of the loaded list, sorted,
// for the filter dropdown
func Categories(images []model.GalleryImage) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, img := range images {
		if img.Category != "" && !seen[img.Category] {
			seen[img.Category] = true
			cats = append(cats, img.Category)
		}
	}
	sort.Strings(cats)
	return cats
}
