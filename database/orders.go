package database

import (
	"context"
	"errors"
	"fmt"

	"axelmotors/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

const tracerName = "axelmotors.database"

// PlaceOrder records the order and takes its quantity out of the tool's stock
// in one transaction. The decrement only applies while enough stock remains.
// When the order carries an id that is already stored for the same owner, tool
// and quantity, the stored order is copied into order and created is false;
// stock is not touched again. Any other reuse of the id is ErrOrderIDConflict.
func (s *GormStore) PlaceOrder(ctx context.Context, order *models.Order) (created bool, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PlaceOrder")
	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.String("tool.id", order.ToolsID),
		attribute.Int("order.quantity", order.Quantity),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if order.Quantity <= 0 {
		return false, ErrInvalidQuantity
	}

	requestedID := order.ID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if requestedID != "" {
			var existing models.Order
			err := tx.Where("id = ?", order.ID).First(&existing).Error
			if err == nil {
				if !isReplay(&existing, order) {
					return ErrOrderIDConflict
				}
				*order = existing
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		var tool models.Tool
		if err := tx.Select("id", "name", "price", "available_quantity").Where("id = ?", order.ToolsID).First(&tool).Error; err != nil {
			return notFound(err)
		}

		res := tx.Model(&models.Tool{}).
			Where("id = ? AND available_quantity >= ?", order.ToolsID, order.Quantity).
			Update("available_quantity", gorm.Expr("available_quantity - ?", order.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		if order.ToolName == "" {
			order.ToolName = tool.Name
		}
		if order.Price == 0 {
			order.Price = tool.Price
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil && requestedID != "" && isDuplicateKey(err) {
		// a concurrent request with the same id committed first
		var existing models.Order
		if findErr := s.db.WithContext(ctx).Where("id = ?", requestedID).First(&existing).Error; findErr == nil {
			if !isReplay(&existing, order) {
				return false, ErrOrderIDConflict
			}
			*order = existing
			return false, nil
		}
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrOrderIDConflict) {
			return false, err
		}
		return false, fmt.Errorf("place order: %w", err)
	}
	return created, nil
}

// isReplay reports whether order repeats stored, the same owner asking for the
// same tool and quantity.
func isReplay(stored, order *models.Order) bool {
	return stored.Email == order.Email &&
		stored.ToolsID == order.ToolsID &&
		stored.Quantity == order.Quantity
}

// ListOrders returns the orders placed with email, or every order when email is empty.
func (s *GormStore) ListOrders(ctx context.Context, email string) ([]models.Order, error) {
	orders := []models.Order{}
	query := s.db.WithContext(ctx).Order("created_at")
	if email != "" {
		query = query.Where("email = ?", email)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *GormStore) DeleteOrdersByEmail(ctx context.Context, email string) (int64, error) {
	res := s.db.WithContext(ctx).Where("email = ?", email).Delete(&models.Order{})
	return res.RowsAffected, res.Error
}
