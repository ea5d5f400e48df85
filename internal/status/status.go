// Package status maps the raw status strings coming off the wire onto the
// display buckets the pages render. The backend is not consistent about
// casing or vocabulary (batches say queued/generating, images say
// PENDING/PROCESSING), so everything funnels through here.
package status

import "strings"

// Bucket is the effective display status. Exactly one bucket applies to any
// input string.
type Bucket int

const (
	Unknown Bucket = iota
	Queued
	Processing
	Completed
	Failed
	Cancelled
)

func (b Bucket) String() string {
	switch b {
	case Queued:
		return "queued"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Project maps a raw status string to its bucket. Comparison is
// case-insensitive and near-synonyms collapse: PENDING counts as queued,
// generating counts as processing. Unrecognized input (including empty)
// lands in Unknown rather than failing.
func Project(raw string) Bucket {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "QUEUED", "PENDING":
		return Queued
	case "PROCESSING", "GENERATING":
		return Processing
	case "COMPLETED":
		return Completed
	case "FAILED":
		return Failed
	case "CANCELLED":
		return Cancelled
	default:
		return Unknown
	}
}

// ProjectImage projects an image status in the context of its enclosing
// batch. When the batch itself is cancelled, images still waiting in the
// queue display as cancelled even though their stored status says queued.
// This is a derived overlay recomputed on every render, never persisted.
func ProjectImage(raw, batchStatus string) Bucket {
	b := Project(raw)
	if b == Queued && Project(batchStatus) == Cancelled {
		return Cancelled
	}
	return b
}

// Presentation is the icon/color/label triple a badge renders for a bucket
type Presentation struct {
	Icon  string
	Color string
	Label string
}

var badges = map[Bucket]Presentation{
	Queued:     {Icon: "clock", Color: "amber", Label: "Queued"},
	Processing: {Icon: "loader", Color: "indigo", Label: "Generating"},
	Completed:  {Icon: "check-circle", Color: "green", Label: "Completed"},
	Failed:     {Icon: "alert-circle", Color: "red", Label: "Failed"},
	Cancelled:  {Icon: "clock", Color: "neutral", Label: "Cancelled"},
}

// Badge returns the presentation for a bucket. Unknown gets the generic
// neutral badge.
func Badge(b Bucket) Presentation {
	if p, ok := badges[b]; ok {
		return p
	}
	return Presentation{Icon: "clock", Color: "neutral", Label: "Unknown"}
}
