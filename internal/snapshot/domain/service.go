package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
)

// Sort keys accepted by List.
const (
	SortByName    = "name"
	SortByCreated = "created"
	SortByUpdated = "updated"
	SortByValue   = "value"
)

type CreateRequest struct {
	CustomerID  string      `json:"customer_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Lines       []cart.Line `json:"lines"`
	Tags        []string    `json:"tags"`
	Occasion    string      `json:"occasion"`
	IsPublic    bool        `json:"is_public"`
}

type ListRequest struct {
	CustomerID string   `form:"customer_id"`
	Tags       []string `form:"tags"`
	Occasion   string   `form:"occasion"`
	IsPublic   *bool    `form:"is_public"`
	SortBy     string   `form:"sort_by"`
	Order      string   `form:"order"`
	Limit      int      `form:"limit"`
}

type UpdateRequest struct {
	ID          string       `json:"id"`
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Lines       *[]cart.Line `json:"lines"`
	Tags        *[]string    `json:"tags"`
	Occasion    *string      `json:"occasion"`
	IsPublic    *bool        `json:"is_public"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CartSnapshot, error)
	List(ctx context.Context, req ListRequest) ([]CartSnapshot, error)
	GetByID(ctx context.Context, id string) (*CartSnapshot, error)
	Update(ctx context.Context, req UpdateRequest) (*CartSnapshot, error)
	Delete(ctx context.Context, id string) (bool, error)
	Touch(ctx context.Context, id snowflake.ID) error
	AppendLines(ctx context.Context, id snowflake.ID, lines []cart.Line) error
}

func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

var (
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidLine     = errors.New("invalid_line")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
