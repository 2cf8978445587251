package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fichaje.app/fichaje/core/models"
	"fichaje.app/fichaje/utils"
)

// Creates the schema and, when the employees table is empty, a handful of
// demo employees for local development.
func main() {
	dsn := os.Getenv("DSN") //"root:development@tcp(localhost:3306)/fichaje?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	tables := []interface{}{
		&models.Employee{},
		&models.TimeEntry{},
		&models.ClockLog{},
	}
	for _, m := range tables {
		if !db.Migrator().HasTable(m) {
			if err := db.Migrator().CreateTable(m); err != nil {
				log.Fatalf("failed to create table for %T: %v", m, err)
			}
		}
	}

	var count int64
	if err := db.Model(&models.Employee{}).Count(&count).Error; err != nil {
		log.Fatalf("count employees: %v", err)
	}
	if count > 0 {
		log.Printf("employees table already has %d rows, skipping demo data", count)
		return
	}

	companyID := os.Getenv("FICHAJE_COMPANY_ID")
	if companyID == "" {
		companyID = uuid.NewString()
		log.Printf("generated company id %s", companyID)
	}

	demo := []models.Employee{
		{ID: uuid.NewString(), CompanyID: companyID, FullName: "Ana García", HourlyRate: utils.Ptr(12.5), IsActive: true},
		{ID: uuid.NewString(), CompanyID: companyID, FullName: "Carlos Pérez", HourlyRate: utils.Ptr(11.0), IsActive: true},
		{ID: uuid.NewString(), CompanyID: companyID, FullName: "Lucía Martín", IsActive: true},
	}
	if err := db.Create(&demo).Error; err != nil {
		log.Fatalf("insert demo employees: %v", err)
	}
	log.Printf("inserted %d demo employees", len(demo))
}
