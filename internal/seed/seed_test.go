package seed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.ApplySchema(context.Background(), db, &config.Config{Env: "test", DBDriver: "sqlite"}))
	return db
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeed_PopulatesConnectedData(t *testing.T) {
	db := setupSQLiteDB(t)
	s := NewSeeder(db, Options{NumUsers: 5, NumPosts: 12, SkipBcrypt: true, MaxDays: 30})

	sum, err := s.Seed()
	require.NoError(t, err)

	assert.Equal(t, 5, sum.Users)
	assert.Equal(t, 5, sum.Profiles)
	assert.Equal(t, 12, sum.Posts)
	assert.EqualValues(t, 5, count(t, db, &models.User{}))
	assert.EqualValues(t, 5, count(t, db, &models.Profile{}))
	assert.EqualValues(t, 12, count(t, db, &models.Post{}))
	assert.EqualValues(t, sum.Likes, count(t, db, &models.Like{}))
	assert.EqualValues(t, sum.Comments, count(t, db, &models.Comment{}))
	assert.GreaterOrEqual(t, count(t, db, &models.Experience{}), int64(5))
	assert.EqualValues(t, 5, count(t, db, &models.Education{}))

	var demo models.User
	require.NoError(t, db.Where("email = ?", "demo@example.com").First(&demo).Error)
	assert.Equal(t, "Demo Developer", demo.Name)
	assert.Contains(t, demo.Avatar, "gravatar.com/avatar/")

	var post models.Post
	require.NoError(t, db.First(&post).Error)
	var author models.User
	require.NoError(t, db.First(&author, "id = ?", post.UserID).Error)
	assert.Equal(t, author.Name, post.Name, "posts carry the author snapshot")
}

func TestSeed_CleanIsRepeatable(t *testing.T) {
	db := setupSQLiteDB(t)
	opts := Options{NumUsers: 3, NumPosts: 4, SkipBcrypt: true, ShouldClean: true}

	_, err := NewSeeder(db, opts).Seed()
	require.NoError(t, err)
	_, err = NewSeeder(db, opts).Seed()
	require.NoError(t, err)

	assert.EqualValues(t, 3, count(t, db, &models.User{}))
	assert.EqualValues(t, 4, count(t, db, &models.Post{}))
}

func TestSeed_DryRunWritesNothing(t *testing.T) {
	db := setupSQLiteDB(t)

	sum, err := NewSeeder(db, Options{NumUsers: 2, NumPosts: 3, SkipBcrypt: true, DryRun: true}).Seed()
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Users)
	assert.EqualValues(t, 0, count(t, db, &models.User{}))
	assert.EqualValues(t, 0, count(t, db, &models.Post{}))
}

func TestFactory_BuildPostWithinMaxDays(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, MaxDays: 30})
	user := f.BuildUser()

	for i := 0; i < 20; i++ {
		p := f.BuildPost(user)
		assert.NotEmpty(t, p.Text)
		assert.Equal(t, user.ID, p.UserID)
		assert.Less(t, time.Since(p.CreatedAt), 31*24*time.Hour)
	}
}

func TestFactory_PasswordIsHashed(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true})
	user := f.BuildUser()

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DefaultPassword)))
}

func TestFactory_ProfileEntriesBelongToProfile(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true})
	user := f.BuildUser()
	profile := f.BuildProfile(user)

	assert.Equal(t, user.ID, profile.UserID)
	assert.NotEmpty(t, profile.Skills)
	require.NotEmpty(t, profile.Experience)
	for _, exp := range profile.Experience {
		assert.Equal(t, profile.ID, exp.ProfileID)
	}
	assert.True(t, profile.Experience[0].Current)
}
