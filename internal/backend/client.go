// Package backend is the typed client for the MayaGen REST API. Every
// endpoint returns the {success, message, data} envelope; this package
// unwraps it and converts HTTP statuses into the sentinel errors the pages
// branch on.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"mayagen-web/internal/model"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http *resty.Client
	// token returns the current session token, empty when logged out.
	// Injected so the client never owns session state.
	token func() string
}

func NewClient(baseURL string, token func() string) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)

	return &Client{http: r, token: token}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if t := c.token(); t != "" {
		req.SetHeader("Authorization", "Bearer "+t)
	}
	return req
}

// unwrap decodes the response envelope and maps error statuses. out may be
// nil for operations whose data payload is irrelevant.
func unwrap(resp *resty.Response, err error, out any) error {
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}

	var env model.Envelope
	// Some error paths return bare bodies; tolerate an undecodable envelope
	// and fall back to the status code alone.
	decodeErr := json.Unmarshal(resp.Body(), &env)

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}

	if resp.IsError() || (decodeErr == nil && !env.Success) {
		msg := env.Message
		if env.Error != "" {
			msg = env.Error
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}

	if decodeErr != nil {
		return fmt.Errorf("invalid backend response: %w", decodeErr)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("invalid backend payload: %w", err)
		}
	}
	return nil
}

// ImagePage 图片列表分页结果
type ImagePage struct {
	Images []model.GalleryImage `json:"images"`
	Meta   model.PageMeta       `json:"meta"`
}

// ListImages fetches one page of the public gallery feed
func (c *Client) ListImages(ctx context.Context, page, limit int) (*ImagePage, error) {
	var out ImagePage
	resp, err := c.request(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get("/images")
	if err := unwrap(resp, err, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyCollection fetches the authenticated user's own images (unpaginated)
func (c *Client) MyCollection(ctx context.Context) ([]model.GalleryImage, error) {
	var out struct {
		Images []model.GalleryImage `json:"images"`
	}
	resp, err := c.request(ctx).Get("/images/me")
	if err := unwrap(resp, err, &out); err != nil {
		return nil, err
	}
	return out.Images, nil
}

// RecentImages fetches the latest completed images for the home showcase
func (c *Client) RecentImages(ctx context.Context, limit int) ([]model.GalleryImage, error) {
	var out struct {
		Images []model.GalleryImage `json:"images"`
	}
	resp, err := c.request(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get("/images/recent")
	if err := unwrap(resp, err, &out); err != nil {
		return nil, err
	}
	return out.Images, nil
}

// GetImage fetches a single image. Returns ErrForbidden for a private image
// viewed by a non-owner.
func (c *Client) GetImage(ctx context.Context, id model.FlexID) (*model.ImageDetail, error) {
	var out model.ImageDetail
	resp, err := c.request(ctx).Get("/images/" + id.String())
	if err := unwrap(resp, err, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleVisibility flips is_public and returns the updated image
func (c *Client) ToggleVisibility(ctx context.Context, id model.FlexID, public bool) (*model.ImageDetail, error) {
	var out model.ImageDetail
	resp, err := c.request(ctx).
		SetBody(map[string]bool{"is_public": public}).
		Patch("/images/" + id.String())
	if err := unwrap(resp, err, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateResult 生成任务引用
type GenerateResult struct {
	ID       model.FlexID `json:"id"`
	Filename string       `json:"filename"`
	Status   string       `json:"status"`
}

// Generate queues a single image generation job
func (c *Client) Generate(ctx context.Context, req *model.GenerateRequest) (*GenerateResult, error) {
	var out GenerateResult
	resp, err := c.request(ctx).SetBody(req).Post("/generate")
	if err := unwrap(resp, err, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBatches fetches the user's batch jobs, newest first (server-ordered)
func (c *Client) ListBatches(ctx context.Context) ([]model.BatchJob, error) {
	var out struct {
		Batches []model.BatchJob `json:"batches"`
	}
	resp, err := c.request(ctx).Get("/batch")
	if err := unwrap(resp, err, &out); err != nil {
		return nil, err
	}
	return out.Batches, nil
}

// GetBatch fetches one batch job's detail
func (c *Client) GetBatch(ctx context.Context, id model.FlexID) (*model.BatchJob, error) {
	var out model.BatchJob
	resp, err := c.request(ctx).Get("/batch/" + id.String())
	if err := unwrap(resp, err, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BatchImages fetches the images belonging to a batch
func (c *Client) BatchImages(ctx context.Context, id model.FlexID) ([]model.BatchImage, error) {
	var out struct {
		Images []model.BatchImage `json:"images"`
	}
	resp, err := c.request(ctx).Get("/batch/" + id.String() + "/images")
	if err := unwrap(resp, err, &out); err != nil {
		return nil, err
	}
	return out.Images, nil
}

// CreateBatchResult 新建批量任务返回
type CreateBatchResult struct {
	ID     model.FlexID `json:"id"`
	Name   string       `json:"name"`
	Status string       `json:"status"`
}

// CreateBatch submits a batch job spec. The caller validates bounds first;
// the backend enforces them again.
func (c *Client) CreateBatch(ctx context.Context, req *model.CreateBatchRequest) (*CreateBatchResult, error) {
	var out CreateBatchResult
	resp, err := c.request(ctx).SetBody(req).Post("/batch")
	if err := unwrap(resp, err, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PreviewBatch is non-mutating: sample prompts plus the server-computed
// maximum unique combination count
func (c *Client) PreviewBatch(ctx context.Context, req *model.PreviewRequest) (*model.PreviewResult, error) {
	var out model.PreviewResult
	resp, err := c.request(ctx).SetBody(req).Post("/batch/preview")
	if err := unwrap(resp, err, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelBatch cancels a queued or generating batch
func (c *Client) CancelBatch(ctx context.Context, id model.FlexID) error {
	resp, err := c.request(ctx).Delete("/batch/" + id.String())
	return unwrap(resp, err, nil)
}

// Register creates an account. The backend takes the fields as query
// parameters.
func (c *Client) Register(ctx context.Context, req *model.RegisterRequest) error {
	resp, err := c.request(ctx).
		SetQueryParam("username", req.Username).
		SetQueryParam("email", req.Email).
		SetQueryParam("password", req.Password).
		Post("/auth/register")
	return unwrap(resp, err, nil)
}

// Login exchanges credentials for a session token. The backend implements
// the OAuth2 password flow, so this goes form-encoded.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	resp, err := c.request(ctx).
		SetFormData(map[string]string{
			"username": username,
			"password": password,
		}).
		Post("/auth/token")
	if err := unwrap(resp, err, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Me fetches the user behind the current token
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	resp, err := c.request(ctx).Get("/auth/me")
	if err := unwrap(resp, err, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
