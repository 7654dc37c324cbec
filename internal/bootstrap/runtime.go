// Package bootstrap connects the runtime dependencies shared by the commands.
package bootstrap

import (
	"fmt"
	"log"

	"devconnector/internal/cache"
	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/models"
	"devconnector/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData fills an empty database with demo accounts and posts.
	// It is ignored in production.
	SeedDemoData bool
	DemoUsers    int
	DemoPosts    int
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
// The returned Redis client is nil when Redis is unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seedIfEmpty(cfg, db, opts); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

func seedIfEmpty(cfg *config.Config, db *gorm.DB, opts Options) error {
	if cfg.IsProduction() {
		log.Println("demo seeding skipped in production")
		return nil
	}

	var users int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	numUsers, numPosts := opts.DemoUsers, opts.DemoPosts
	if numUsers <= 0 {
		numUsers = 10
	}
	if numPosts <= 0 {
		numPosts = 30
	}

	_, err := seed.NewSeeder(db, seed.Options{NumUsers: numUsers, NumPosts: numPosts, MaxDays: 30}).Seed()
	return err
}
