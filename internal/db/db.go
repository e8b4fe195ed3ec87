package db

import (
	"log"
	"os"

	"forumx/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=forumx port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	err = DB.AutoMigrate(
		&models.User{},
		&models.Currency{},
		&models.Forum{},
		&models.Post{},
		&models.PostImage{},
		&models.PostCategory{},
		&models.Comment{},
		&models.PostVote{},
		&models.Notification{},
		&models.Playlist{},
		&models.PlaylistItem{},
		&models.ContentRequest{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedForums()
}

func seedForums() {
	var count int64
	DB.Model(&models.Forum{}).Count(&count)
	if count > 0 {
		log.Println("Forums already seeded, skipping")
		return
	}

	forums := []models.Forum{
		{Title: "Announcements", Header: "General", Bio: "Site news and updates", OrderBy: 1},
		{Title: "Introductions", Header: "General", Bio: "Say hello", OrderBy: 2},
		{Title: "Discussion", Header: "Community", Bio: "Open-ended threads", OrderBy: 1},
		{Title: "Showcase", Header: "Community", Bio: "Show what you made", OrderBy: 2},
		{Title: "Requests", Header: "Community", Bio: "Looking-for threads", OrderBy: 3},
	}

	for _, forum := range forums {
		if err := DB.Create(&forum).Error; err != nil {
			log.Printf("Failed to create forum %s: %v", forum.Title, err)
		}
	}
	log.Println("Initial forums created successfully")
}
