package database

import (
	"fmt"
	"log"
	"os"

	"learnsphere/models"
	courseModels "learnsphere/models/course"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	// Run database migrations
	if err := Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// Migrate performs database migrations. Exported so tests can run the same
// schema against their own connection.
func Migrate(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.CourseReview{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Topic{},
		&courseModels.TopicProgress{},
		&courseModels.Quiz{},
		&courseModels.Question{},
		&courseModels.QuestionOption{},
		&courseModels.QuizCompletion{},
		&courseModels.Enrollment{},
		&courseModels.Certificate{},
	)
	if err != nil {
		return err
	}

	log.Println("Migrations completed successfully.")
	return nil
}
