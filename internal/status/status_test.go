package status

import "testing"

func TestProjectCaseInsensitive(t *testing.T) {
	cases := []struct {
		variants []string
		want     Bucket
	}{
		{[]string{"queued", "QUEUED", "Queued", "pending", "PENDING", "Pending"}, Queued},
		{[]string{"processing", "PROCESSING", "generating", "GENERATING", "Generating"}, Processing},
		{[]string{"completed", "COMPLETED", "Completed"}, Completed},
		{[]string{"failed", "FAILED"}, Failed},
		{[]string{"cancelled", "CANCELLED", "Cancelled"}, Cancelled},
	}

	for _, tc := range cases {
		for _, raw := range tc.variants {
			if got := Project(raw); got != tc.want {
				t.Errorf("Project(%q) = %v, want %v", raw, got, tc.want)
			}
		}
	}
}

func TestProjectUnknownFallback(t *testing.T) {
	for _, raw := range []string{"", "  ", "banana", "COMPLETE", "errored"} {
		if got := Project(raw); got != Unknown {
			t.Errorf("Project(%q) = %v, want Unknown", raw, got)
		}
	}
}

func TestProjectImageCancellationOverlay(t *testing.T) {
	// Queued/pending images under a cancelled batch display as cancelled
	for _, raw := range []string{"QUEUED", "queued", "PENDING", "pending"} {
		if got := ProjectImage(raw, "cancelled"); got != Cancelled {
			t.Errorf("ProjectImage(%q, cancelled) = %v, want Cancelled", raw, got)
		}
		if got := ProjectImage(raw, "CANCELLED"); got != Cancelled {
			t.Errorf("ProjectImage(%q, CANCELLED) = %v, want Cancelled", raw, got)
		}
	}

	// Same image under a non-cancelled batch keeps its own mapping
	for _, batch := range []string{"queued", "generating", "completed", "failed", ""} {
		if got := ProjectImage("PENDING", batch); got != Queued {
			t.Errorf("ProjectImage(PENDING, %q) = %v, want Queued", batch, got)
		}
	}

	// The overlay never rewrites non-queued statuses
	if got := ProjectImage("COMPLETED", "cancelled"); got != Completed {
		t.Errorf("ProjectImage(COMPLETED, cancelled) = %v, want Completed", got)
	}
	if got := ProjectImage("FAILED", "cancelled"); got != Failed {
		t.Errorf("ProjectImage(FAILED, cancelled) = %v, want Failed", got)
	}
	if got := ProjectImage("PROCESSING", "cancelled"); got != Processing {
		t.Errorf("ProjectImage(PROCESSING, cancelled) = %v, want Processing", got)
	}
}

func TestBadgeTotal(t *testing.T) {
	for _, b := range []Bucket{Unknown, Queued, Processing, Completed, Failed, Cancelled, Bucket(99)} {
		p := Badge(b)
		if p.Icon == "" || p.Color == "" || p.Label == "" {
			t.Errorf("Badge(%v) returned incomplete presentation %+v", b, p)
		}
	}
	if Badge(Completed).Color != "green" {
		t.Errorf("completed badge should be green, got %q", Badge(Completed).Color)
	}
}
