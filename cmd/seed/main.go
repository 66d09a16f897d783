package main

import (
	"context"
	"log"
	"log/slog"

	"bookclub-service/internal/book"
	"bookclub-service/internal/category"
	"bookclub-service/internal/club"
	"bookclub-service/internal/config"
	"bookclub-service/internal/database"
	"bookclub-service/internal/member"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database seeding...")

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	slog.Info("Database connection established")

	clubRepo := club.NewClubRepository(db)
	bookRepo := book.NewBookRepository(db)
	categoryRepo := category.NewCategoryRepository(db)
	memberRepo := member.NewMemberRepository(db)

	ctx := context.Background()

	demo := &club.Club{Name: "Demo Book Club", Slug: "demo", VotingOpen: true}
	if err := clubRepo.Create(ctx, demo); err != nil {
		slog.Warn("Demo club might already exist", "error", err)
		existing, lookupErr := clubRepo.FindBySlug(ctx, "demo")
		if lookupErr != nil {
			log.Fatal("Failed to load demo club:", lookupErr)
		}
		demo = existing
	} else {
		slog.Info("Created demo club", "id", demo.ID)
	}

	author := func(name string) *string { return &name }
	books := []book.Book{
		{ClubID: demo.ID, Title: "The Dispossessed", Author: author("Ursula K. Le Guin"), ReadersCount: 10},
		{ClubID: demo.ID, Title: "Piranesi", Author: author("Susanna Clarke"), ReadersCount: 20},
		{ClubID: demo.ID, Title: "Stoner", Author: author("John Williams"), ReadersCount: 5},
	}
	for i := range books {
		if err := bookRepo.Create(ctx, &books[i]); err != nil {
			slog.Warn("Failed to create book", "title", books[i].Title, "error", err)
		} else {
			slog.Info("Created book", "title", books[i].Title, "id", books[i].ID)
		}
	}

	categories := []category.Category{
		{ClubID: demo.ID, Name: "Best Fiction", SortOrder: 1, Active: true},
		{ClubID: demo.ID, Name: "Best Discussion", SortOrder: 2, Active: true},
	}
	for i := range categories {
		if err := categoryRepo.Create(ctx, &categories[i]); err != nil {
			slog.Warn("Failed to create category", "name", categories[i].Name, "error", err)
		} else {
			slog.Info("Created category", "name", categories[i].Name, "id", categories[i].ID)
		}
	}

	for _, name := range []string{"Alice", "Bob"} {
		nominee := &member.MemberNominee{ClubID: demo.ID, Name: name}
		if err := memberRepo.CreateNominee(ctx, nominee); err != nil {
			slog.Warn("Nominee might already exist", "name", name, "error", err)
		} else {
			slog.Info("Created nominee", "name", name, "id", nominee.ID)
		}
	}

	slog.Info("Database seeding completed!")
}
