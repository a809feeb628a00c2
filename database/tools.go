package database

import (
	"context"

	"axelmotors/models"

	"gorm.io/gorm"
)

func (s *GormStore) ListTools(ctx context.Context) ([]models.Tool, error) {
	tools := []models.Tool{}
	if err := s.db.WithContext(ctx).Order("created_at").Find(&tools).Error; err != nil {
		return nil, err
	}
	return tools, nil
}

func (s *GormStore) FindTool(ctx context.Context, id string) (*models.Tool, error) {
	var tool models.Tool
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&tool).Error; err != nil {
		return nil, notFound(err)
	}
	return &tool, nil
}

func (s *GormStore) CreateTool(ctx context.Context, tool *models.Tool) error {
	if tool.AvailableQuantity < 0 {
		return ErrInvalidQuantity
	}
	return s.db.WithContext(ctx).Create(tool).Error
}

func (s *GormStore) DeleteTool(ctx context.Context, id string) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Tool{})
	return res.RowsAffected, res.Error
}

// MarkToolPaid sets the paid flag and transaction id on an unpaid tool and
// records the payment in the same transaction. A tool that is already paid
// keeps its transaction id and the call fails with ErrAlreadyPaid.
func (s *GormStore) MarkToolPaid(ctx context.Context, id string, payment *models.Payment) (*models.Tool, error) {
	var tool models.Tool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&tool).Error; err != nil {
			return notFound(err)
		}
		var recorded int64
		if err := tx.Model(&models.Payment{}).Where("transaction_id = ?", payment.TransactionID).Count(&recorded).Error; err != nil {
			return err
		}
		if recorded > 0 {
			return ErrDuplicatePayment
		}
		res := tx.Model(&tool).Where("paid = ?", false).Updates(map[string]any{
			"paid":           true,
			"transaction_id": payment.TransactionID,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyPaid
		}
		tool.Paid = true
		tool.TransactionID = payment.TransactionID
		payment.ToolID = id
		if err := tx.Create(payment).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicatePayment
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tool, nil
}
