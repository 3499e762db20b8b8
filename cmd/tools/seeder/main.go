// Command seeder writes a demo state blob into the configured store so a
// fresh deployment starts with a few quotes to look at.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/motiondevis/internal/config"
	"github.com/noah-isme/motiondevis/internal/devis"
	"github.com/noah-isme/motiondevis/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var blobStore devis.Store
	switch cfg.StoreDriver {
	case config.StoreDriverRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse redis url: %v", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to ping redis: %v", err)
		}
		blobStore = &store.RedisStore{Client: client}
	default:
		blobStore = store.NewFileStore(cfg.StorePath)
	}

	svc, err := devis.NewService(ctx, blobStore, zerolog.Nop())
	if err != nil {
		log.Fatalf("Failed to initialise service: %v", err)
	}
	if existing := svc.Quotes(0); len(existing) > 0 {
		log.Printf("Store already holds %d quote(s), leaving it untouched", len(existing))
		return
	}

	seeds := []struct {
		client  devis.Client
		project devis.Project
		video   devis.Video
		lines   []string
		urgency float64
	}{
		{
			client:  devis.Client{Name: "Aina Rakoto", Company: "Baobab Studio", Email: "aina@baobab.example"},
			project: devis.Project{Title: "Vidéo explicative produit", VideoType: "Explicative", Deadline: "2026-10-15"},
			video:   devis.Video{Duration: 90, Complexity: "standard", Style: "flat", FeedbackRounds: 2},
			lines:   []string{"Storyboard", "Animation 2D", "Voix off"},
		},
		{
			client:  devis.Client{Name: "Claire Fontaine", Company: "Atelier Lumière", Email: "claire@lumiere.example"},
			project: devis.Project{Title: "Spot réseaux sociaux", VideoType: "Réseaux sociaux", Deadline: "2026-09-20"},
			video:   devis.Video{Duration: 30, Complexity: "simple", Style: "isometrique", FeedbackRounds: 1},
			lines:   []string{"Storyboard", "Adaptations formats"},
			urgency: 0.15,
		},
		{
			client:  devis.Client{Name: "Marc Olivier", Company: "Nord Corporate", Email: "marc@nordcorp.example"},
			project: devis.Project{Title: "Film institutionnel", VideoType: "Corporate", Deadline: "2026-12-01"},
			video:   devis.Video{Duration: 150, Complexity: "avancee", Style: "illustration", FeedbackRounds: 3},
			lines:   []string{"Storyboard", "Direction artistique / moodboard", "Illustration / character design", "Animation 2D", "Sound design / musique"},
		},
	}

	created := 0
	for _, seed := range seeds {
		for _, title := range seed.lines {
			if _, err := svc.AddLine(title); err != nil {
				log.Fatalf("Failed to add line %q: %v", title, err)
			}
		}
		svc.UpdateDetails(devis.Details{
			Client:  seed.client,
			Project: seed.project,
			Video:   seed.video,
			Urgency: seed.urgency,
		})
		saved, err := svc.Save(ctx)
		if err != nil {
			log.Fatalf("Failed to save quote for %s: %v", seed.client.Name, err)
		}
		log.Printf("Seeded quote %s for %s (%.2f TTC)", saved.ID, seed.client.Name, saved.Totals.TTC)
		created++
	}

	log.Printf("Seeding completed: %d quote(s) under key %s", created, store.Key)
}
