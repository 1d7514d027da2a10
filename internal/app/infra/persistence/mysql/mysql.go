package mysql

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"retailos/common/entity"
)

// Open connects to MySQL and optionally migrates the schema
func Open(dsn string, autoMigrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if autoMigrate {
		if err := db.AutoMigrate(&entity.CatalogItem{}, &entity.Order{}, &entity.RestockAlert{}); err != nil {
			return nil, fmt.Errorf("auto migrate failed: %w", err)
		}
	}

	return db, nil
}

// Close closes the underlying pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
