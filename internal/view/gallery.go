package view

import (
	"context"

	"mayagen-web/internal/backend"
	"mayagen-web/internal/model"
)

// Gallery is the paginated public feed state. Page and TotalPages are only
// advanced after a successful response; a failed fetch leaves the previous
// list and counters in place.
type Gallery struct {
	client   *backend.Client
	pageSize int

	Images     []model.GalleryImage
	Page       int
	TotalPages int
}

func NewGallery(client *backend.Client, pageSize int) *Gallery {
	if pageSize <= 0 {
		pageSize = 24
	}
	return &Gallery{client: client, pageSize: pageSize, Page: 1, TotalPages: 1}
}

// Fetch loads the requested page and replaces the list wholesale
func (g *Gallery) Fetch(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	res, err := g.client.ListImages(ctx, page, g.pageSize)
	if err != nil {
		return err
	}
	g.Images = res.Images
	g.Page = res.Meta.Page
	g.TotalPages = res.Meta.TotalPages
	return nil
}
