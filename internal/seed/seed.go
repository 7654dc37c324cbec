package seed

import (
	"fmt"
	"log"

	"devconnector/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// SkipBcrypt stores the plain default password; only for fast local runs.
	SkipBcrypt bool
	DryRun     bool
	MaxDays    int
	BatchSize  int
}

// Summary reports how many rows a run created.
type Summary struct {
	Users    int
	Profiles int
	Posts    int
	Likes    int
	Comments int
}

// Seeder fills the database with a connected set of demo data.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
}

// NewSeeder creates a seeder writing to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, opts: opts, factory: NewFactory(db, opts)}
}

// Factory exposes the underlying entity factory.
func (s *Seeder) Factory() *Factory {
	return s.factory
}

// Seed populates the database with users, profiles, posts, likes and comments.
func (s *Seeder) Seed() (Summary, error) {
	var sum Summary
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", s.opts.NumUsers, s.opts.NumPosts)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return sum, fmt.Errorf("failed to clear data: %w", err)
		}
	}

	users, err := s.seedUsers(s.opts.NumUsers)
	if err != nil {
		return sum, fmt.Errorf("failed to create users: %w", err)
	}
	sum.Users = len(users)
	log.Printf("✓ %d users created", sum.Users)

	for _, u := range users {
		if _, err := s.factory.CreateProfile(u); err != nil {
			return sum, fmt.Errorf("failed to create profile for %s: %w", u.Email, err)
		}
		sum.Profiles++
	}
	log.Printf("✓ %d profiles created", sum.Profiles)

	posts, err := s.seedPosts(users, s.opts.NumPosts)
	if err != nil {
		return sum, fmt.Errorf("failed to create posts: %w", err)
	}
	sum.Posts = len(posts)
	log.Printf("✓ %d posts created", sum.Posts)

	likes, comments, err := s.seedEngagement(users, posts)
	if err != nil {
		return sum, fmt.Errorf("failed to create engagement: %w", err)
	}
	sum.Likes, sum.Comments = likes, comments
	log.Printf("✓ %d likes and %d comments created", likes, comments)

	log.Println("🎉 Database seeding completed successfully!")
	return sum, nil
}

// ClearAll removes every row the application owns, children first.
func (s *Seeder) ClearAll() error {
	if s.opts.DryRun {
		return nil
	}
	log.Println("🗑️  Clearing existing data...")

	if s.db.Dialector.Name() == "postgres" {
		return s.db.Exec(`TRUNCATE TABLE likes, comments, posts, experiences, educations, profiles, users CASCADE`).Error
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{
			&models.Like{}, &models.Comment{}, &models.Post{},
			&models.Experience{}, &models.Education{}, &models.Profile{}, &models.User{},
		} {
			if err := all.Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// seedUsers always includes a known demo account so there is something to log in with.
func (s *Seeder) seedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	if count <= 0 {
		return users, nil
	}

	demo, err := s.factory.CreateUser(func(u *models.User) {
		u.Name = "Demo Developer"
		u.Email = "demo@example.com"
	})
	if err != nil {
		return nil, err
	}
	users = append(users, demo)

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}
	return users, nil
}

func (s *Seeder) seedPosts(users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 || count <= 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// seedEngagement gives each post likes from a random subset of users and a
// few comments.
func (s *Seeder) seedEngagement(users []*models.User, posts []*models.Post) (likes, comments int, err error) {
	if len(users) == 0 {
		return 0, 0, nil
	}
	rng := s.factory.rng

	for _, post := range posts {
		for _, i := range rng.Perm(len(users))[:rng.Intn(len(users)+1)] {
			if err := s.factory.CreateLike(users[i], post); err != nil {
				return likes, comments, err
			}
			likes++
		}

		for j := 0; j < rng.Intn(4); j++ {
			author := users[rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(author, post); err != nil {
				return likes, comments, err
			}
			comments++
		}
	}
	return likes, comments, nil
}
