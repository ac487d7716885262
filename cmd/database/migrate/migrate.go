package migration

import (
	"Dish-Discovery/entities"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	}

	if err := db.AutoMigrate(&entities.Restaurant{}); err != nil {
		log.Errorf("Error migrating restaurant database: %v", err)
		return err
	}
	// Provisioning relies on this index to collapse concurrent inserts of the
	// same listing.
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_restaurants_name_city ON restaurants (LOWER(name), LOWER(city))").Error; err != nil {
		log.Errorf("Error creating restaurant name index: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Dish{}); err != nil {
		log.Errorf("Error migrating dish database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DishSave{}, &entities.DishLike{}); err != nil {
		log.Errorf("Error migrating dish edge database: %v", err)
		return err
	}

	log.Info("Database migration complete")
	return nil
}
