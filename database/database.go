package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"axelmotors/config"
	"axelmotors/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Open connects to postgres. The returned handle is shared by every request.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Tool{}, &models.Order{}, &models.Review{}, &models.Payment{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SeedTools inserts the tools listed in the JSON file at path. Tools that are
// already present are skipped; a missing file is not an error.
func SeedTools(db *gorm.DB, path string) (int, error) {
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		if errors.Is(readErr, os.ErrNotExist) {
			return 0, nil
		}
		return 0, readErr
	}
	var tools []models.Tool
	if err := json.Unmarshal(content, &tools); err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	inserted := 0
	for _, tool := range tools {
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tool)
		if res.Error != nil {
			return inserted, res.Error
		}
		inserted += int(res.RowsAffected)
	}
	return inserted, nil
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == "23505")
}
