package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
)

const DefaultNotificationCap = 3

type CreateRequest struct {
	CustomerID   string   `json:"customer_id"`
	ProductID    string   `json:"product_id"`
	TargetPrice  float64  `json:"target_price"`
	CurrentPrice float64  `json:"current_price"`
	Channels     []string `json:"channels"`
	Cap          int      `json:"cap"`
}

type UpdateRequest struct {
	ID          string   `json:"id"`
	TargetPrice *float64 `json:"target_price"`
	Active      *bool    `json:"active"`
	Channels    []string `json:"channels"`
	Cap         *int     `json:"cap"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*PriceWatch, error)
	List(ctx context.Context, customerID string, activeOnly bool) ([]PriceWatch, error)
	Update(ctx context.Context, req UpdateRequest) (*PriceWatch, error)
	Delete(ctx context.Context, id string) (bool, error)
}

func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

var (
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidProduct  = errors.New("invalid_product")
	ErrInvalidTarget   = errors.New("invalid_target_price")
	ErrInvalidChannel  = errors.New("invalid_channel")
	ErrInvalidCap      = errors.New("invalid_cap")
	ErrInvalidID       = errors.New("invalid_id")
	ErrWatchCapped     = errors.New("watch_capped")
	ErrNotFound        = errors.New("not_found")
)
