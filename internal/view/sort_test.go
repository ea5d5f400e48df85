package view

import (
	"testing"

	"mayagen-web/internal/model"
)

func img(id int64, st, created string) model.BatchImage {
	return model.BatchImage{ID: model.FlexID(id), Status: st, CreatedAt: created}
}

func TestSortBatchImagesTwoTier(t *testing.T) {
	// completed entries first (newest-first between them), then the rest
	// newest-first, regardless of input order
	inputs := [][]model.BatchImage{
		{
			img(1, "failed", "2024-06-01T10:00:00Z"),
			img(2, "completed", "2024-06-01T09:00:00Z"),
			img(3, "completed", "2024-06-01T11:00:00Z"),
			img(4, "pending", "2024-06-01T12:00:00Z"),
		},
		{
			img(4, "pending", "2024-06-01T12:00:00Z"),
			img(3, "completed", "2024-06-01T11:00:00Z"),
			img(2, "completed", "2024-06-01T09:00:00Z"),
			img(1, "failed", "2024-06-01T10:00:00Z"),
		},
	}
	want := []model.FlexID{3, 2, 4, 1}

	for _, in := range inputs {
		SortBatchImages(in)
		for i, w := range want {
			if in[i].ID != w {
				t.Fatalf("order = %v..., want %v at position %d", in[i].ID, w, i)
			}
		}
	}
}

func TestSortBatchImagesCaseInsensitiveStatus(t *testing.T) {
	list := []model.BatchImage{
		img(1, "PENDING", "2024-06-01T10:00:00Z"),
		img(2, "COMPLETED", "2024-06-01T09:00:00Z"),
	}
	SortBatchImages(list)
	if list[0].ID != 2 {
		t.Errorf("COMPLETED (uppercase) must sort first, got id %v", list[0].ID)
	}
}

func TestSortBatchImagesStable(t *testing.T) {
	// equal timestamps keep server order
	list := []model.BatchImage{
		img(10, "completed", "2024-06-01T10:00:00Z"),
		img(11, "completed", "2024-06-01T10:00:00Z"),
		img(12, "completed", "2024-06-01T10:00:00Z"),
	}
	SortBatchImages(list)
	for i, want := range []model.FlexID{10, 11, 12} {
		if list[i].ID != want {
			t.Fatalf("stability broken: got %v at %d", list[i].ID, i)
		}
	}
}

func TestParseCreatedFallback(t *testing.T) {
	if !parseCreated("not-a-time").IsZero() {
		t.Error("unparseable timestamp should yield zero time")
	}
	if parseCreated("2024-06-01T10:00:00").IsZero() {
		t.Error("backend emits naive ISO timestamps without zone, must parse")
	}
}
