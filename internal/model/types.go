package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexID is an entity identifier that the backend serializes inconsistently:
// sometimes as a JSON number, sometimes as a string ("5" vs 5). Ownership
// checks compare the numeric value, so both forms decode to the same int64.
type FlexID int64

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = FlexID(n)
	return nil
}

func (id FlexID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(id), 10)), nil
}

func (id FlexID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Envelope is the response wrapper every backend endpoint returns
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// User 当前登录用户
type User struct {
	ID       FlexID `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// GalleryImage is one entry of the public feed or the personal collection
type GalleryImage struct {
	ID        FlexID `json:"id"`
	URL       string `json:"url"`
	Filename  string `json:"filename"`
	Category  string `json:"category"`
	CreatedBy string `json:"created_by"`
	IsPublic  bool   `json:"is_public"`
	Status    string `json:"status"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Prompt    string `json:"prompt"`
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
}

// ImageDetail is the full single-image payload, including the owner id
// needed for the visibility toggle
type ImageDetail struct {
	ID        FlexID  `json:"id"`
	UserID    FlexID  `json:"user_id"`
	Filename  string  `json:"filename"`
	URL       *string `json:"url"` // null until generation completes
	Prompt    string  `json:"prompt"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Model     string  `json:"model"`
	Provider  string  `json:"provider"`
	Category  string  `json:"category"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	CreatedBy string  `json:"created_by"`
	Status    string  `json:"status"`
	IsPublic  bool    `json:"is_public"`
}

// BatchJob 批量任务摘要
type BatchJob struct {
	ID             FlexID  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	TargetSubject  string  `json:"target_subject"`
	Status         string  `json:"status"`
	TotalImages    int     `json:"total_images"`
	GeneratedCount int     `json:"generated_count"`
	FailedCount    int     `json:"failed_count"`
	Progress       float64 `json:"progress"`
	Model          string  `json:"model"`
	Provider       string  `json:"provider"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	CreatedAt      string  `json:"created_at"`
}

// BatchImage belongs to one BatchJob (foreign reference only)
type BatchImage struct {
	ID        FlexID  `json:"id"`
	URL       *string `json:"url"`
	Filename  string  `json:"filename"`
	Category  string  `json:"category"`
	Prompt    string  `json:"prompt"`
	Model     string  `json:"model"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

// Variations is one selected tag set per variation axis.
// An empty axis means "no variation" for that axis.
type Variations struct {
	Colors       []string `json:"colors"`
	Environments []string `json:"environments"`
	Actions      []string `json:"actions"`
	Styles       []string `json:"styles"`
	Lighting     []string `json:"lighting"`
	Camera       []string `json:"camera"`
}

// PageMeta 分页元数据
type PageMeta struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// CreateBatchRequest 创建批量任务请求
type CreateBatchRequest struct {
	Name          string     `json:"name"`
	Category      string     `json:"category" binding:"required"`
	TargetSubject string     `json:"target_subject" binding:"required"`
	TotalImages   int        `json:"total_images"`
	Variations    Variations `json:"variations"`
	Model         string     `json:"model"`
	Provider      string     `json:"provider"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
}

// PreviewRequest asks the backend for sample prompts; the combination count
// is computed server-side
type PreviewRequest struct {
	TargetSubject string     `json:"target_subject" binding:"required"`
	Variations    Variations `json:"variations"`
	Count         int        `json:"count"`
}

// PreviewResult 预览结果
type PreviewResult struct {
	Prompts               []string `json:"prompts"`
	MaxUniqueCombinations int      `json:"max_unique_combinations"`
}

// GenerateRequest 单张图片生成请求
type GenerateRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Category string `json:"category" binding:"required"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is submitted form-encoded (OAuth2 password flow on the backend)
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}
