package view

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"mayagen-web/internal/backend"
)

func TestGalleryFetchAdvancesStateOnlyOnSuccess(t *testing.T) {
	fail := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"message":"boom"}`))
			return
		}
		page := r.URL.Query().Get("page")
		w.Write([]byte(`{"success":true,"data":{"images":[{"id":1}],"meta":{"page":` + page + `,"total_pages":3}}}`))
	}))
	defer srv.Close()

	g := NewGallery(backend.NewClient(srv.URL, func() string { return "" }), 24)
	if g.Page != 1 {
		t.Fatalf("initial page = %d, want 1", g.Page)
	}

	// 50 items at limit 24 -> 3 pages; requesting page 2 reflects page=2
	// only after the response
	if err := g.Fetch(context.Background(), 2); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if g.Page != 2 || g.TotalPages != 3 {
		t.Errorf("page state = %d/%d, want 2/3", g.Page, g.TotalPages)
	}
	if len(g.Images) != 1 {
		t.Errorf("images = %d, want 1", len(g.Images))
	}

	// a failed fetch leaves the previous list and counters in place
	fail = true
	if err := g.Fetch(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}
	if g.Page != 2 || len(g.Images) != 1 {
		t.Errorf("failed fetch must not change state, got page %d with %d images", g.Page, len(g.Images))
	}
}

func TestBatchLoaderJoinsAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/batch/7":
			w.Write([]byte(`{"success":true,"data":{"id":7,"name":"cats","status":"generating","total_images":4}}`))
		case "/batch/7/images":
			w.Write([]byte(`{"success":true,"data":{"images":[
				{"id":1,"status":"PENDING","created_at":"2024-06-01T12:00:00Z"},
				{"id":2,"status":"COMPLETED","created_at":"2024-06-01T09:00:00Z"},
				{"id":3,"status":"COMPLETED","created_at":"2024-06-01T11:00:00Z"}
			]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	l := NewBatchLoader(backend.NewClient(srv.URL, func() string { return "t" }))
	bv, err := l.Load(context.Background(), 7)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if bv.Batch.Name != "cats" {
		t.Errorf("batch = %+v", bv.Batch)
	}
	want := []int64{3, 2, 1}
	for i, w := range want {
		if int64(bv.Images[i].ID) != w {
			t.Fatalf("sorted ids wrong at %d: got %v want %v", i, bv.Images[i].ID, w)
		}
	}
}

func TestBatchLoaderFailsWhole(t *testing.T) {
	// If either half of the join fails, the whole load is a failure
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/batch/7" {
			w.Write([]byte(`{"success":true,"data":{"id":7}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"boom"}`))
	}))
	defer srv.Close()

	l := NewBatchLoader(backend.NewClient(srv.URL, func() string { return "t" }))
	if _, err := l.Load(context.Background(), 7); err == nil {
		t.Fatal("expected error when the images fetch fails")
	}
}

func TestBatchLoaderDropsStaleResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		first := false
		once.Do(func() {
			first = true
			close(started)
		})
		if first {
			<-release // hold the first load's request until a newer load finishes
		}
		switch r.URL.Path {
		case "/batch/7":
			w.Write([]byte(`{"success":true,"data":{"id":7}}`))
		case "/batch/7/images":
			w.Write([]byte(`{"success":true,"data":{"images":[]}}`))
		}
	}))
	defer srv.Close()

	l := NewBatchLoader(backend.NewClient(srv.URL, func() string { return "t" }))

	errCh := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background(), 7)
		errCh <- err
	}()
	<-started // the slow load has claimed its generation

	// the newer load completes first and wins
	if _, err := l.Load(context.Background(), 7); err != nil {
		t.Fatalf("second load: %v", err)
	}
	close(release)

	if err := <-errCh; !errors.Is(err, ErrStaleLoad) {
		t.Fatalf("first (stale) load err = %v, want ErrStaleLoad", err)
	}
}
