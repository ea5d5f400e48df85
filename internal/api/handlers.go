package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"mayagen-web/config"
	"mayagen-web/internal/backend"
	"mayagen-web/internal/model"
	"mayagen-web/internal/notify"
	"mayagen-web/internal/pkg/logger"
	"mayagen-web/internal/session"
	"mayagen-web/internal/status"
	"mayagen-web/internal/view"

	"github.com/gin-gonic/gin"
)

// Deps wires the handlers to the backend client, the session and the
// notification store. Everything is injected so tests can point at a fake
// backend.
type Deps struct {
	API     *backend.Client
	Session *session.Session
	Notices *notify.Center
	Log     *logger.DiagLogger
	Filter  view.Filterer
	Batches *view.BatchLoader
}

// fail logs a request failure and converts it into a transient notice. The
// server-provided message wins over the generic fallback when there is one.
func (d *Deps) fail(fallback string, err error) {
	if d.Log != nil {
		d.Log.Error("%s: %v", fallback, err)
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		d.Notices.Errorf(apiErr.Message)
		return
	}
	d.Notices.Errorf(fallback)
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseID(c *gin.Context) (model.FlexID, bool) {
	n, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return model.FlexID(n), true
}

func filterFromQuery(c *gin.Context) view.ImageFilter {
	return view.ImageFilter{
		Search:   c.Query("search"),
		Category: c.DefaultQuery("category", "all"),
		Model:    c.DefaultQuery("model", "all"),
	}
}

// galleryCard pairs an image with its projected display status
type galleryCard struct {
	model.GalleryImage
	Bucket status.Bucket
	Badge  status.Presentation
}

func toGalleryCards(images []model.GalleryImage) []galleryCard {
	cards := make([]galleryCard, len(images))
	for i, img := range images {
		b := status.Project(img.Status)
		cards[i] = galleryCard{GalleryImage: img, Bucket: b, Badge: status.Badge(b)}
	}
	return cards
}

// IndexHandler renders the home page: generate form plus recent showcase
func (d *Deps) IndexHandler(c *gin.Context) {
	images, err := d.API.RecentImages(c.Request.Context(), 8)
	if err != nil {
		d.fail("Failed to load recent images", err)
		images = nil
	}
	renderPage(c, indexPageTmpl, gin.H{
		"User":    d.Session.User(),
		"Notices": d.Notices.Drain(),
		"Recent":  toGalleryCards(images),
		"Models":  model.ModelNames,
	})
}

// GalleryHandler renders one page of the public feed with the filter bar
// applied to the loaded page only
func (d *Deps) GalleryHandler(c *gin.Context) {
	g := view.NewGallery(d.API, config.GlobalConfig.PageSize)
	if err := g.Fetch(c.Request.Context(), atoiDefault(c.Query("page"), 1)); err != nil {
		d.fail("Failed to load gallery", err)
	}

	filter := filterFromQuery(c)
	filtered := d.Filter.Apply(g.Images, filter)

	renderPage(c, galleryPageTmpl, gin.H{
		"User":       d.Session.User(),
		"Notices":    d.Notices.Drain(),
		"Images":     toGalleryCards(filtered),
		"Total":      len(filtered),
		"Categories": view.Categories(g.Images),
		"Models":     model.ModelNames,
		"Filter":     filter,
		"Page":       g.Page,
		"TotalPages": g.TotalPages,
		"PrevPage":   g.Page - 1,
		"NextPage":   g.Page + 1,
	})
}

// CollectionsHandler renders the personal collection; anonymous visitors go
// to the login flow instead of seeing an error
func (d *Deps) CollectionsHandler(c *gin.Context) {
	if !d.Session.LoggedIn() {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	images, err := d.API.MyCollection(c.Request.Context())
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			d.Session.Logout()
			c.Redirect(http.StatusFound, "/login")
			return
		}
		d.fail("Failed to load your collection", err)
	}

	filter := filterFromQuery(c)
	filtered := d.Filter.Apply(images, filter)

	renderPage(c, collectionsPageTmpl, gin.H{
		"User":       d.Session.User(),
		"Notices":    d.Notices.Drain(),
		"Images":     toGalleryCards(filtered),
		"Total":      len(filtered),
		"Categories": view.Categories(images),
		"Models":     model.ModelNames,
		"Filter":     filter,
	})
}

// ImageHandler renders the single-image detail view. 403 gets a dedicated
// access-denied state and 404 a not-found state, never a generic failure.
func (d *Deps) ImageHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		renderNotFound(c, d.Session.User(), "Image Not Found")
		return
	}

	img, err := d.API.GetImage(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrForbidden):
			renderAccessDenied(c, d.Session.User())
		case errors.Is(err, backend.ErrNotFound):
			renderNotFound(c, d.Session.User(), "Image Not Found")
		default:
			d.fail("Failed to load image details", err)
			renderNotFound(c, d.Session.User(), "Image Unavailable")
		}
		return
	}

	b := status.Project(img.Status)
	renderPage(c, imagePageTmpl, gin.H{
		"User":     d.Session.User(),
		"Notices":  d.Notices.Drain(),
		"Image":    img,
		"ImageURL": derefURL(img.URL),
		"Bucket":   b,
		"Badge":    status.Badge(b),
		"Model":    model.DisplayModel(img.Model),
		"IsOwner":  isOwner(d.Session.User(), img),
	})
}

// isOwner compares identities numerically: the two ids may arrive as "5"
// and 5 and must still match
func isOwner(u *model.User, img *model.ImageDetail) bool {
	return u != nil && int64(u.ID) == int64(img.UserID)
}

// ToggleVisibilityHandler flips an image between public and private. The
// request is rejected locally when the viewer is not the owner; no backend
// call is issued in that case.
func (d *Deps) ToggleVisibilityHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		renderNotFound(c, d.Session.User(), "Image Not Found")
		return
	}
	back := "/image/" + id.String()

	if !d.Session.LoggedIn() {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	img, err := d.API.GetImage(c.Request.Context(), id)
	if err != nil {
		d.fail("Failed to load image", err)
		c.Redirect(http.StatusFound, back)
		return
	}

	if !isOwner(d.Session.User(), img) {
		d.Notices.Errorf("Only the owner can change visibility")
		c.Redirect(http.StatusFound, back)
		return
	}

	public := c.PostForm("public") == "true"
	updated, err := d.API.ToggleVisibility(c.Request.Context(), id, public)
	if err != nil {
		d.fail("Failed to update visibility", err)
		c.Redirect(http.StatusFound, back)
		return
	}

	if updated.IsPublic {
		d.Notices.Successf("Image is now Public")
	} else {
		d.Notices.Successf("Image is now Private")
	}
	c.Redirect(http.StatusFound, back)
}

// GenerateHandler queues a single image and sends the user to the gallery
// rather than displaying the result inline
func (d *Deps) GenerateHandler(c *gin.Context) {
	if !d.Session.LoggedIn() {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	req := &model.GenerateRequest{
		Prompt:   c.PostForm("prompt"),
		Width:    atoiDefault(c.PostForm("width"), 512),
		Height:   atoiDefault(c.PostForm("height"), 768),
		Provider: c.DefaultPostForm("provider", "comfyui"),
		Model:    c.DefaultPostForm("model", "sd15"),
		Category: c.PostForm("category"),
	}
	if err := req.Validate(); err != nil {
		d.Notices.Errorf(err.Error())
		c.Redirect(http.StatusFound, "/")
		return
	}

	if _, err := d.API.Generate(c.Request.Context(), req); err != nil {
		d.fail("Generation failed", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	d.Notices.Successf("Generation started")
	c.Redirect(http.StatusFound, "/gallery")
}

// BulkHandler renders the batch creation form with the preset vocabulary
func (d *Deps) BulkHandler(c *gin.Context) {
	if !d.Session.LoggedIn() {
		renderLoginRequired(c, "Please sign in to create batches")
		return
	}
	renderPage(c, bulkPageTmpl, gin.H{
		"User":    d.Session.User(),
		"Notices": d.Notices.Drain(),
		"Presets": model.Presets,
		"Models":  model.ModelNames,
	})
}

// CreateBatchHandler validates the spec locally (bounds, required fields)
// before any request goes out
func (d *Deps) CreateBatchHandler(c *gin.Context) {
	if !d.Session.LoggedIn() {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	req := &model.CreateBatchRequest{
		Name:          c.PostForm("name"),
		Category:      c.PostForm("category"),
		TargetSubject: c.PostForm("target_subject"),
		TotalImages:   atoiDefault(c.PostForm("total_images"), 100),
		Variations: model.Variations{
			Colors:       c.PostFormArray("colors"),
			Environments: c.PostFormArray("environments"),
			Actions:      c.PostFormArray("actions"),
			Styles:       c.PostFormArray("styles"),
			Lighting:     c.PostFormArray("lighting"),
			Camera:       c.PostFormArray("camera"),
		},
		Model:    c.DefaultPostForm("model", "sd15"),
		Provider: c.DefaultPostForm("provider", "comfyui"),
		Width:    atoiDefault(c.PostForm("width"), 512),
		Height:   atoiDefault(c.PostForm("height"), 512),
	}
	if req.Name == "" {
		req.Name = req.TargetSubject + " batch"
	}

	if err := req.Validate(); err != nil {
		d.Notices.Errorf(err.Error())
		c.Redirect(http.StatusFound, "/bulk")
		return
	}

	res, err := d.API.CreateBatch(c.Request.Context(), req)
	if err != nil {
		d.fail("Failed to create batch", err)
		c.Redirect(http.StatusFound, "/bulk")
		return
	}

	d.Notices.Successf(fmt.Sprintf("Batch created! ID: %s", res.ID))
	c.Redirect(http.StatusFound, "/bulk/history")
}

// PreviewBatchHandler proxies the non-mutating preview call for the bulk
// page. The combination count comes from the server; the client never
// reimplements the combinatorics.
func (d *Deps) PreviewBatchHandler(c *gin.Context) {
	var req model.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Enter a target subject"})
		return
	}
	if req.Count <= 0 {
		req.Count = 3
	}

	res, err := d.API.PreviewBatch(c.Request.Context(), &req)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": apiErr.Message})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Preview failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":                 true,
		"prompts":                 res.Prompts,
		"max_unique_combinations": res.MaxUniqueCombinations,
	})
}

// batchCard pairs a batch with its projected display status
type batchCard struct {
	model.BatchJob
	Bucket    status.Bucket
	Badge     status.Presentation
	CanCancel bool
}

// BatchHistoryHandler lists the user's batch jobs, newest first
// (server-ordered)
func (d *Deps) BatchHistoryHandler(c *gin.Context) {
	if !d.Session.LoggedIn() {
		renderLoginRequired(c, "Please sign in to view your batch history")
		return
	}

	batches, err := d.API.ListBatches(c.Request.Context())
	if err != nil {
		d.fail("Failed to load batches", err)
	}

	cards := make([]batchCard, len(batches))
	for i, b := range batches {
		bucket := status.Project(b.Status)
		cards[i] = batchCard{
			BatchJob:  b,
			Bucket:    bucket,
			Badge:     status.Badge(bucket),
			CanCancel: bucket == status.Queued || bucket == status.Processing,
		}
	}

	renderPage(c, historyPageTmpl, gin.H{
		"User":    d.Session.User(),
		"Notices": d.Notices.Drain(),
		"Batches": cards,
		"Total":   len(cards),
	})
}

// batchImageCard carries the effective status after the cancellation
// overlay, recomputed on every render
type batchImageCard struct {
	model.BatchImage
	ImageURL string // dereferenced URL, empty until generation completes
	Bucket   status.Bucket
	Badge    status.Presentation
}

func derefURL(u *string) string {
	if u == nil {
		return ""
	}
	return *u
}

// BatchViewHandler renders one batch with its sorted image list. Metadata
// and images are fetched concurrently and joined before rendering.
func (d *Deps) BatchViewHandler(c *gin.Context) {
	if !d.Session.LoggedIn() {
		renderLoginRequired(c, "Please sign in to view batch details")
		return
	}

	id, ok := parseID(c)
	if !ok {
		renderNotFound(c, d.Session.User(), "Batch Not Found")
		return
	}

	bv, err := d.Batches.Load(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, view.ErrStaleLoad) {
			c.Redirect(http.StatusFound, "/bulk/view/"+id.String())
			return
		}
		if errors.Is(err, backend.ErrNotFound) {
			renderNotFound(c, d.Session.User(), "Batch Not Found")
			return
		}
		d.fail("Failed to load batch", err)
		renderNotFound(c, d.Session.User(), "Batch Unavailable")
		return
	}

	cards := make([]batchImageCard, len(bv.Images))
	var completed, processing, failed int
	for i, img := range bv.Images {
		bucket := status.ProjectImage(img.Status, bv.Batch.Status)
		cards[i] = batchImageCard{BatchImage: img, ImageURL: derefURL(img.URL), Bucket: bucket, Badge: status.Badge(bucket)}
		switch bucket {
		case status.Completed:
			completed++
		case status.Queued, status.Processing:
			processing++
		case status.Failed:
			failed++
		}
	}

	bucket := status.Project(bv.Batch.Status)
	renderPage(c, batchViewPageTmpl, gin.H{
		"User":       d.Session.User(),
		"Notices":    d.Notices.Drain(),
		"Batch":      bv.Batch,
		"Bucket":     bucket,
		"Badge":      status.Badge(bucket),
		"Model":      model.DisplayModel(bv.Batch.Model),
		"Images":     cards,
		"Completed":  completed,
		"Processing": processing,
		"Failed":     failed,
	})
}

// CancelConfirmHandler is step one of the two-step cancel: show the
// confirmation, issue nothing
func (d *Deps) CancelConfirmHandler(c *gin.Context) {
	if !d.Session.LoggedIn() {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	id, ok := parseID(c)
	if !ok {
		renderNotFound(c, d.Session.User(), "Batch Not Found")
		return
	}
	renderPage(c, confirmCancelTmpl, gin.H{
		"User":    d.Session.User(),
		"Notices": d.Notices.Drain(),
		"ID":      id,
	})
}

// CancelBatchHandler is step two: the explicit confirm issues the DELETE.
// On success the history view re-fetches instead of patching locally.
func (d *Deps) CancelBatchHandler(c *gin.Context) {
	if !d.Session.LoggedIn() {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	id, ok := parseID(c)
	if !ok {
		renderNotFound(c, d.Session.User(), "Batch Not Found")
		return
	}

	if err := d.API.CancelBatch(c.Request.Context(), id); err != nil {
		d.fail("Failed to cancel batch", err)
		c.Redirect(http.StatusFound, "/bulk/history")
		return
	}

	d.Notices.Successf("Batch cancelled")
	c.Redirect(http.StatusFound, "/bulk/history")
}

// LoginPageHandler renders the sign-in form
func (d *Deps) LoginPageHandler(c *gin.Context) {
	renderPage(c, loginPageTmpl, gin.H{
		"Notices": d.Notices.Drain(),
	})
}

// LoginSubmitHandler exchanges credentials for a session token and lands on
// the home page
func (d *Deps) LoginSubmitHandler(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		d.Notices.Errorf("Username and password are required")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := d.Session.Login(c.Request.Context(), d.API, req.Username, req.Password); err != nil {
		d.fail("Login failed", err)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// RegisterPageHandler renders the account creation form
func (d *Deps) RegisterPageHandler(c *gin.Context) {
	renderPage(c, registerPageTmpl, gin.H{
		"Notices": d.Notices.Drain(),
	})
}

// RegisterSubmitHandler creates the account and redirects to login
func (d *Deps) RegisterSubmitHandler(c *gin.Context) {
	req := &model.RegisterRequest{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		d.Notices.Errorf("All fields are required")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	if err := d.API.Register(c.Request.Context(), req); err != nil {
		d.fail("Registration failed", err)
		c.Redirect(http.StatusFound, "/register")
		return
	}

	d.Notices.Successf("Account created, please sign in")
	c.Redirect(http.StatusFound, "/login")
}

// LogoutHandler clears the stored token and the in-memory user
func (d *Deps) LogoutHandler(c *gin.Context) {
	d.Session.Logout()
	d.Notices.Infof("Logged out successfully")
	c.Redirect(http.StatusFound, "/login")
}

// HealthHandler reports liveness plus a diagnostic log tail
func (d *Deps) HealthHandler(c *gin.Context) {
	logs := []string{}
	if d.Log != nil {
		logs, _ = d.Log.GetLogs(50)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"backend":   config.GlobalConfig.BackendURL,
		"logged_in": d.Session.LoggedIn(),
		"logs":      logs,
	})
}
