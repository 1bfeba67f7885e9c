package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/khudyi/premium-steli/internal/auth"
	"github.com/khudyi/premium-steli/internal/config"
	"github.com/khudyi/premium-steli/internal/db"
	"github.com/khudyi/premium-steli/internal/models"
	"github.com/khudyi/premium-steli/internal/projects"
)

type seedProject struct {
	Title       string
	Description string
	Category    string
	Date        string
	ImageURL    string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	samples := []seedProject{
		{
			Title:       "Глянцева стеля у вітальні",
			Description: "Дворівнева глянцева стеля з точковим підсвічуванням по периметру.",
			Category:    projects.CategoryMSDClassic,
			Date:        "2025-05-12",
			ImageURL:    "/uploads/seed/living-room-gloss.jpg",
		},
		{
			Title:       "Матова стеля у спальні",
			Description: "Спокійна матова фактура з прихованим карнизом для штор.",
			Category:    projects.CategoryMSDPremium,
			Date:        "2025-06-03",
			ImageURL:    "/uploads/seed/bedroom-matte.jpg",
		},
		{
			Title:       "Сатинова стеля на кухні",
			Description: "Вологостійке полотно Bauf із вбудованими світильниками над робочою зоною.",
			Category:    projects.CategoryBaufRenolit,
			Date:        "2025-07-21",
			ImageURL:    "/uploads/seed/kitchen-satin.jpg",
		},
		{
			Title:       "Парящі лінії в коридорі",
			Description: "Світлові лінії по всій довжині коридору з теплим спектром.",
			Category:    projects.CategoryOther,
			Date:        "2025-08-02",
			ImageURL:    "/uploads/seed/hallway-lines.jpg",
		},
	}

	now := time.Now().In(cfg.Timezone)
	for _, p := range samples {
		filter := bson.M{"title": p.Title}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":         primitive.NewObjectID().Hex(),
				"title":       p.Title,
				"description": p.Description,
				"category":    p.Category,
				"date":        p.Date,
				"image_url":   p.ImageURL,
				"images":      []string{},
				"created_at":  now,
				"updated_at":  now,
			},
		}
		if _, err := cols.Projects.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed error for %s: %v", p.Title, err)
		}
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("seed admin: ADMIN_EMAIL/ADMIN_PASSWORD missing, skipping")
	} else if err := seedAdminUser(ctx, cols, email, password, cfg.Timezone); err != nil {
		log.Fatalf("seed admin error: %v", err)
	}

	log.Println("seed completed")
}

func seedAdminUser(ctx context.Context, cols *db.Collections, email, password string, loc *time.Location) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now().In(loc)
	filter := bson.M{"email": email}
	update := bson.M{
		"$set": bson.M{
			"passwordHash": hash,
			"role":         models.UserRoleAdmin,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"email":     email,
			"createdAt": now,
		},
	}
	_, err = cols.Users.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
