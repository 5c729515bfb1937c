package utils

import (
	"fmt"

	"codelearn/config"
	"codelearn/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the database connection and migrates the schema. The returned
// handle is passed into every controller; nothing reads it through a global.
//
// TranslateError lets callers detect unique-key violations as
// gorm.ErrDuplicatedKey. Foreign-key constraint creation is disabled because
// course assembly persists slides before their level and levels before their
// course; ownership columns are stamped after the parent row exists.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	if err := MigrateModels(db); err != nil {
		return nil, err
	}

	return db, nil
}

// MigrateModels runs AutoMigrate for every persisted entity. Shared with the
// test setup, which runs the same schema on sqlite.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Level{},
		&models.LevelCompletion{},
		&models.Slide{},
		&models.Question{},
		&models.Comment{},
		&models.AnswerAttempt{},
	)
}
