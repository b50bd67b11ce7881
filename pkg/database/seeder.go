package database

import (
	"errors"
	"log"

	"catalog-app/config"
	"catalog-app/internal/models"
	"catalog-app/internal/utils"

	"gorm.io/gorm"
)

// SeedAdminUser creates the configured admin account if it is missing.
func SeedAdminUser(db *gorm.DB, cfg config.DefaultsConfig) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Println("Admin credentials not configured, skipping seed")
		return
	}

	var user models.User
	err := db.Where("username = ?", cfg.AdminUsername).First(&user).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check admin user: %v", err)
		return
	}

	hashedPassword, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: hashedPassword,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Println("Admin user seeded successfully.")
}
