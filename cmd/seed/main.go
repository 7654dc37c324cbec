// Command main runs the database seeder for DevConnector.
package main

import (
	"flag"
	"log"

	"devconnector/internal/bootstrap"
	"devconnector/internal/config"
	"devconnector/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fast := flag.Bool("fast", false, "Store the default password unhashed (local use only)")
	dryRun := flag.Bool("dry-run", false, "Build data without writing it")
	maxDays := flag.Int("max-days", 90, "Spread post dates over this many days")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("❌ Refusing to seed a production database")
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
		SkipBcrypt:  *fast,
		DryRun:      *dryRun,
		MaxDays:     *maxDays,
	})

	sum, err := s.Seed()
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ Seeded %d users, %d profiles, %d posts, %d likes, %d comments",
		sum.Users, sum.Profiles, sum.Posts, sum.Likes, sum.Comments)
	log.Printf("📧 All seeded users have the password: %s (demo account: demo@example.com)", seed.DefaultPassword)
}
