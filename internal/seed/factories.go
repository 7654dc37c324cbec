// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"devconnector/internal/models"
	"devconnector/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password every seeded account logs in with.
const DefaultPassword = "password123"

var (
	statuses = []string{
		"Developer", "Junior Developer", "Senior Developer", "Manager",
		"Student or Learning", "Instructor or Teacher", "Intern", "Other",
	}
	skills = []string{
		"Go", "Rust", "TypeScript", "JavaScript", "Python", "SQL", "PostgreSQL",
		"Redis", "Docker", "Kubernetes", "React", "Vue", "HTML", "CSS", "Linux",
		"AWS", "GCP", "Terraform", "GraphQL", "gRPC",
	}
	degrees = []string{"BSc", "BA", "MSc", "MA", "PhD", "Bootcamp Certificate"}
	fields  = []string{
		"Computer Science", "Software Engineering", "Mathematics", "Physics",
		"Information Systems", "Electrical Engineering",
	}
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	hash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (f *Factory) passwordHash() string {
	if f.hash != "" {
		return f.hash
	}
	if f.opts.SkipBcrypt {
		f.hash = DefaultPassword
		return f.hash
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bcrypt failed, storing plain seed password: %v", err)
		f.hash = DefaultPassword
		return f.hash
	}
	f.hash = string(hashed)
	return f.hash
}

// pastTime returns a timestamp spread over the last MaxDays days.
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

func (f *Factory) persist(v any) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] create %T", v)
		return nil
	}
	return f.db.Create(v).Error
}

// BuildUser constructs a sample user without persisting it.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	name := gofakeit.Name()
	email := fmt.Sprintf("%s.%d@example.com",
		strings.ToLower(strings.ReplaceAll(name, " ", ".")), gofakeit.Number(100, 999))

	user := &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: f.passwordHash(),
	}
	for _, override := range overrides {
		override(user)
	}
	if user.Avatar == "" {
		user.Avatar = validation.GravatarURL(user.Email)
	}
	return user
}

// CreateUser constructs and persists a sample user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if err := f.persist(user); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildProfile constructs a profile for user with a few experience and
// education entries, without persisting it.
func (f *Factory) BuildProfile(user *models.User, overrides ...func(*models.Profile)) *models.Profile {
	handle := strings.ToLower(strings.ReplaceAll(user.Name, " ", ""))
	profile := &models.Profile{
		ID:             uuid.New(),
		UserID:         user.ID,
		User:           models.UserSummary{ID: user.ID, Name: user.Name, Avatar: user.Avatar},
		Company:        gofakeit.Company(),
		Website:        validation.NormalizeURL(gofakeit.DomainName()),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Bio:            gofakeit.Sentence(12),
		Status:         statuses[f.rng.Intn(len(statuses))],
		Skills:         f.pickSkills(),
		GithubUsername: handle,
		Social: models.Social{
			Twitter:  validation.NormalizeURL("twitter.com/" + handle),
			Linkedin: validation.NormalizeURL("linkedin.com/in/" + handle),
		},
	}

	for i := 0; i < 1+f.rng.Intn(3); i++ {
		from := gofakeit.DateRange(time.Now().AddDate(-10, 0, 0), time.Now().AddDate(-1, 0, 0))
		exp := models.Experience{
			ID:          uuid.New(),
			ProfileID:   profile.ID,
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Description: gofakeit.Sentence(10),
		}
		if i == 0 {
			exp.Current = true
		} else {
			to := from.AddDate(1+f.rng.Intn(3), 0, 0)
			exp.To = &to
		}
		profile.Experience = append(profile.Experience, exp)
	}

	from := gofakeit.DateRange(time.Now().AddDate(-15, 0, 0), time.Now().AddDate(-5, 0, 0))
	to := from.AddDate(4, 0, 0)
	profile.Education = append(profile.Education, models.Education{
		ID:           uuid.New(),
		ProfileID:    profile.ID,
		School:       fmt.Sprintf("University of %s", gofakeit.City()),
		Degree:       degrees[f.rng.Intn(len(degrees))],
		FieldOfStudy: fields[f.rng.Intn(len(fields))],
		From:         from,
		To:           &to,
	})

	for _, override := range overrides {
		override(profile)
	}
	return profile
}

func (f *Factory) pickSkills() []string {
	n := 2 + f.rng.Intn(4)
	picked := make([]string, 0, n)
	for _, i := range f.rng.Perm(len(skills))[:n] {
		picked = append(picked, skills[i])
	}
	return picked
}

// CreateProfile constructs and persists a profile with its entries.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	profile := f.BuildProfile(user, overrides...)
	if err := f.persist(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// BuildPost constructs a post authored by user without persisting it.
// Name and avatar are snapshotted from the author.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		ID:        uuid.New(),
		UserID:    user.ID,
		Text:      gofakeit.Paragraph(1, 3, 12, " "),
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: f.pastTime(),
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	return f.db.Omit(clause.Associations).CreateInBatches(&posts, f.batchSize()).Error
}

// CreatePost constructs and persists a sample post for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)
	if f.opts.DryRun {
		log.Printf("[dry-run] CreatePost: user=%s", post.UserID)
		return post, nil
	}
	if err := f.db.Omit(clause.Associations).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment by user on post, dated after the post.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	created := post.CreatedAt.Add(time.Duration(1+f.rng.Intn(48*60)) * time.Minute)
	if created.After(time.Now()) {
		created = time.Now()
	}
	comment := &models.Comment{
		ID:        uuid.New(),
		PostID:    post.ID,
		UserID:    user.ID,
		Text:      gofakeit.Sentence(8),
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: created,
	}
	for _, override := range overrides {
		override(comment)
	}
	if err := f.persist(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on post. Repeats are ignored.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	if f.opts.DryRun {
		return nil
	}
	like := &models.Like{PostID: post.ID, UserID: user.ID}
	return f.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(like).Error
}

func (f *Factory) batchSize() int {
	if f.opts.BatchSize > 0 {
		return f.opts.BatchSize
	}
	return 100
}
