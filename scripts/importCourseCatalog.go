package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"learnsphere/config"
	"learnsphere/database"
	courseModels "learnsphere/models/course"
)

// Imports a course catalog from CourseCatalog.csv with columns:
// title, description, author, duration_hours, status
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("CourseCatalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	imported := 0
	skipped := 0

	// Skip header row
	for i, record := range records[1:] {
		if len(record) < 5 {
			log.Printf("Row %d: expected 5 columns, got %d; skipping", i+2, len(record))
			skipped++
			continue
		}

		title := strings.TrimSpace(record[0])
		if title == "" {
			log.Printf("Row %d: missing title; skipping", i+2)
			skipped++
			continue
		}

		duration, err := strconv.ParseInt(strings.TrimSpace(record[3]), 10, 64)
		if err != nil {
			duration = 0
		}

		status := strings.ToUpper(strings.TrimSpace(record[4]))
		if status == "" {
			status = "DRAFT"
		}

		// Skip courses that already exist by title
		var existing courseModels.Course
		if err := database.Database.Db.Where("title = ? AND is_deleted = ?", title, false).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		course := courseModels.Course{
			Title:       title,
			Description: strings.TrimSpace(record[1]),
			Author:      strings.TrimSpace(record[2]),
			Duration:    duration,
			Status:      status,
			IsPublished: status == "ACTIVE",
		}

		if err := database.Database.Db.Create(&course).Error; err != nil {
			log.Printf("Row %d: failed to insert course %q: %v", i+2, title, err)
			skipped++
			continue
		}
		imported++
	}

	log.Printf("Course catalog import finished: %d imported, %d skipped", imported, skipped)
}
