package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bandbook/internal/config"
	"bandbook/internal/db"
	"bandbook/internal/model"
	"bandbook/internal/repository"
)

const (
	adminEmail    = "admin@bandbook.com"
	adminPassword = "admin123"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Band{}, &model.Review{}, &model.Favorite{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	bandRepo := repository.NewBandRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, skipped, err := seedBands(ctx, bandRepo)
	if err != nil {
		log.Fatalf("Failed to seed bands: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New bands created: %d", created)
	log.Printf("  - Existing bands skipped: %d", skipped)
}

// seedAdmin ensures the bootstrap ADMIN account exists.
func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	existing, err := users.FindByEmail(ctx, adminEmail)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		log.Printf("Admin user %s already exists, skipping", adminEmail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin user %s", adminEmail)
	return nil
}

// seedBands inserts a few well-known bands so a fresh install has
// something to browse.
func seedBands(ctx context.Context, bands repository.BandRepository) (created int, skipped int, err error) {
	rock := "Rock"
	metal := "Metal"
	samples := []model.Band{
		{
			Name:        "Radiohead",
			Description: "English rock band formed in Abingdon in 1985.",
			Members:     model.StringList{"Thom Yorke", "Jonny Greenwood", "Colin Greenwood", "Ed O'Brien", "Philip Selway"},
			ChannelID:   "UCq19-LqvG35A-30oyAiPiqA",
			Category:    &rock,
		},
		{
			Name:        "Metallica",
			Description: "American heavy metal band formed in Los Angeles in 1981.",
			Members:     model.StringList{"James Hetfield", "Lars Ulrich", "Kirk Hammett", "Robert Trujillo"},
			ChannelID:   "UCbulh9WdLtEXiooRcYK7SWw",
			Category:    &metal,
		},
		{
			Name:        "Khruangbin",
			Description: "American musical trio from Houston, Texas, blending global influences.",
			Members:     model.StringList{"Laura Lee", "Mark Speer", "Donald Johnson"},
			ChannelID:   "UCCt2ev-h3xBcmZCkhbSmtcA",
		},
	}

	for i := range samples {
		band := samples[i]
		existing, err := bands.FindByChannelID(ctx, band.ChannelID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, err
		}
		if existing != nil {
			skipped++
			continue
		}
		if err := bands.Create(ctx, &band); err != nil {
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}
