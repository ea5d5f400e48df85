package view

import (
	"context"
	"errors"
	"sync/atomic"

	"mayagen-web/internal/backend"
	"mayagen-web/internal/model"
)

// ErrStaleLoad reports that a newer load started while this one was in
// flight; the caller drops the result instead of overwriting fresher state.
var ErrStaleLoad = errors.New("stale batch load")

// BatchView joins a batch's metadata with its sorted image list
type BatchView struct {
	Batch  *model.BatchJob
	Images []model.BatchImage
}

// BatchLoader fetches a batch's detail and image list concurrently. Both
// requests must succeed before the view renders; either failure fails the
// whole load. A generation counter sequences overlapping refreshes so a
// slow stale response never replaces a newer one.
type BatchLoader struct {
	client *backend.Client
	gen    atomic.Uint64
}

func NewBatchLoader(client *backend.Client) *BatchLoader {
	return &BatchLoader{client: client}
}

func (l *BatchLoader) Load(ctx context.Context, id model.FlexID) (*BatchView, error) {
	gen := l.gen.Add(1)

	type batchResult struct {
		batch *model.BatchJob
		err   error
	}
	type imagesResult struct {
		images []model.BatchImage
		err    error
	}

	batchCh := make(chan batchResult, 1)
	imagesCh := make(chan imagesResult, 1)

	go func() {
		b, err := l.client.GetBatch(ctx, id)
		batchCh <- batchResult{batch: b, err: err}
	}()
	go func() {
		imgs, err := l.client.BatchImages(ctx, id)
		imagesCh <- imagesResult{images: imgs, err: err}
	}()

	// Join: both must complete, in any order, before rendering
	br := <-batchCh
	ir := <-imagesCh

	if br.err != nil {
		return nil, br.err
	}
	if ir.err != nil {
		return nil, ir.err
	}

	if l.gen.Load() != gen {
		return nil, ErrStaleLoad
	}

	SortBatchImages(ir.images)
	return &BatchView{Batch: br.batch, Images: ir.images}, nil
}
