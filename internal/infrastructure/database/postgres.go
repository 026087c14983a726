package database

import (
	"fmt"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"carwash-api/internal/config"
	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},

		&entity.VehicleCategory{},
		&entity.Vehicle{},
		&entity.WashService{},

		&entity.Order{},
		&entity.OrderItem{},
		&entity.Payment{},
		&entity.Earning{},

		&entity.Product{},
		&entity.Expense{},
		&entity.Notification{},
	)
}

// SeedDefaultData seeds vehicle categories and, when configured, the first
// admin user.
func SeedDefaultData(db *gorm.DB) error {
	categories := []entity.VehicleCategory{
		{Code: "AUTO", Name: "Automóvil"},
		{Code: "SUV", Name: "Camioneta"},
		{Code: "PICKUP", Name: "Pickup"},
		{Code: "MOTO", Name: "Moto"},
	}

	for i := range categories {
		var existing entity.VehicleCategory
		if err := db.Where("code = ?", categories[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&categories[i]).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", categories[i].Code, err)
			}
		}
	}

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.User{
		Name:     viper.GetString("ADMIN_NAME"),
		Email:    adminEmail,
		Password: string(hashed),
		Role:     enum.RoleAdmin,
		Active:   true,
	}
	if admin.Name == "" {
		admin.Name = "Administrator"
	}

	return db.Create(&admin).Error
}
