package model

import (
	"errors"
	"strings"
)

// Preset vocabulary for the variation axes. The backend combines selected
// tags into distinct prompts; the client only picks from these lists.
var Presets = Variations{
	Colors:       []string{"red", "blue", "green", "orange", "black", "white", "brown", "gray", "golden", "silver"},
	Environments: []string{"indoor", "outdoor", "studio", "nature", "urban", "forest", "beach", "mountain"},
	Actions:      []string{"sitting", "standing", "running", "sleeping", "eating", "playing", "walking", "jumping"},
	Styles:       []string{"photorealistic", "cinematic", "artistic", "professional", "detailed", "studio lit"},
	Lighting:     []string{"natural", "studio", "golden hour", "dramatic", "soft", "backlit"},
	Camera:       []string{"close-up", "portrait", "full body", "wide angle", "macro", "eye-level"},
}

// Display names for the model identifiers used by the backend
var ModelNames = map[string]string{
	"sd15": "DreamShaper 8",
	"lcm":  "SD 1.5 Base",
	"flux": "Flux",
}

// Batch quantity bounds, enforced before any request is issued
const (
	MinBatchImages = 1
	MaxBatchImages = 10000
)

var (
	ErrCategoryRequired = errors.New("category is required")
	ErrSubjectRequired  = errors.New("subject prompt is required")
	ErrPromptRequired   = errors.New("prompt is required")
	ErrQuantityOutOfRange = errors.New("total_images must be between 1 and 10000")
)

// Validate rejects a batch spec locally so an out-of-range quantity or a
// missing field never reaches the network
func (r *CreateBatchRequest) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return ErrCategoryRequired
	}
	if strings.TrimSpace(r.TargetSubject) == "" {
		return ErrSubjectRequired
	}
	if r.TotalImages < MinBatchImages || r.TotalImages > MaxBatchImages {
		return ErrQuantityOutOfRange
	}
	return nil
}

func (r *GenerateRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrPromptRequired
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrCategoryRequired
	}
	return nil
}

// DisplayModel maps a model identifier to its display name, falling back to
// the raw identifier
func DisplayModel(model string) string {
	if name, ok := ModelNames[model]; ok {
		return name
	}
	return model
}
