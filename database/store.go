package database

import (
	"context"
	"errors"

	"axelmotors/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicatePayment  = errors.New("transaction already recorded")
	ErrOrderIDConflict   = errors.New("order id already used for a different order")
	ErrAlreadyPaid       = errors.New("tool is already paid")
)

// UpsertResult reports what an upsert did, in the shape document-store clients expect.
type UpsertResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// Store is the data access used by the HTTP layer. Single-record lookups
// return ErrNotFound instead of an empty record.
type Store interface {
	UpsertUser(ctx context.Context, email string, profile models.Profile) (UpsertResult, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetUserRole(ctx context.Context, email, role string) (UpsertResult, error)

	ListTools(ctx context.Context) ([]models.Tool, error)
	FindTool(ctx context.Context, id string) (*models.Tool, error)
	CreateTool(ctx context.Context, tool *models.Tool) error
	DeleteTool(ctx context.Context, id string) (int64, error)
	MarkToolPaid(ctx context.Context, id string, payment *models.Payment) (*models.Tool, error)

	PlaceOrder(ctx context.Context, order *models.Order) (bool, error)
	ListOrders(ctx context.Context, email string) ([]models.Order, error)
	DeleteOrdersByEmail(ctx context.Context, email string) (int64, error)

	CreateReview(ctx context.Context, review *models.Review) error
	ListReviews(ctx context.Context) ([]models.Review, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
