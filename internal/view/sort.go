package view

import (
	"sort"
	"time"

	"mayagen-web/internal/model"
	"mayagen-web/internal/status"
)

// SortBatchImages orders a batch's images for display: completed images
// first, then everything else, newest first within each tier. The sort is
// stable so equal-timestamp entries keep their server order.
func SortBatchImages(images []model.BatchImage) {
	sort.SliceStable(images, func(i, j int) bool {
		a, b := images[i], images[j]
		aDone := status.Project(a.Status) == status.Completed
		bDone := status.Project(b.Status) == status.Completed
		if aDone != bDone {
			return aDone
		}
		return parseCreated(a.CreatedAt).After(parseCreated(b.CreatedAt))
	})
}

// parseCreated parses the backend timestamp. Unparseable values sort to the
// end of their tier via the zero time.
func parseCreated(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
