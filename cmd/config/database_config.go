package config

import (
	"Dish-Discovery/internal/database"
	"Dish-Discovery/internal/utils"
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens postgres by default; DB_DRIVER=sqlite opens the file at
// DB_PATH through the pure-Go sqlite driver.
func ConnectDB() (*gorm.DB, error) {
	switch utils.GetConfig("DB_DRIVER") {
	case "sqlite":
		path := utils.GetConfig("DB_PATH")
		if path == "" {
			path = "dish_discovery.db"
		}
		return database.OpenSQLite(path)
	default:
		return connectPostgres()
	}
}

func connectPostgres() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Jakarta",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Errorf("Database connection failed: %v", err)
		return nil, err
	}
	return db, nil
}
