package repository

import (
	"context"
	"errors"

	"devconnector/internal/cache"
	"devconnector/internal/models"
	"devconnector/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines persistence operations for profiles and their
// experience and education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile, optionalColumns []string) (*models.Profile, error)
	AddExperience(ctx context.Context, exp *models.Experience) error
	RemoveExperience(ctx context.Context, profileID, expID uuid.UUID) error
	AddEducation(ctx context.Context, edu *models.Education) error
	RemoveEducation(ctx context.Context, profileID, eduID uuid.UUID) error
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// Columns always written by an upsert. Optional columns are only written when
// the caller supplied them.
var profileUpsertColumns = []string{
	"status",
	"skills",
	"social_youtube",
	"social_twitter",
	"social_instagram",
	"social_linkedin",
	"social_facebook",
	"updated_at",
}

// ProfileOptionalColumns lists the columns an upsert may leave untouched.
var ProfileOptionalColumns = map[string]struct{}{
	"company":         {},
	"website":         {},
	"location":        {},
	"bio":             {},
	"github_username": {},
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) withEntries(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})
}

// GetByUserID returns (nil, nil) when the user has no profile.
func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	defer observability.TrackQuery("select", "profiles")()

	var profile models.Profile
	err := r.withEntries(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}

	profiles := []*models.Profile{&profile}
	if err := r.attachUsers(ctx, profiles); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	defer observability.TrackQuery("select", "profiles")()

	var profiles []models.Profile
	if err := r.withEntries(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	ptrs := make([]*models.Profile, len(profiles))
	for i := range profiles {
		ptrs[i] = &profiles[i]
	}
	if err := r.attachUsers(ctx, ptrs); err != nil {
		return nil, err
	}
	return profiles, nil
}

// attachUsers fills the {id,name,avatar} summary of each profile owner.
func (r *profileRepository) attachUsers(ctx context.Context, profiles []*models.Profile) error {
	if len(profiles) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(profiles))
	seen := make(map[uuid.UUID]struct{}, len(profiles))
	for _, p := range profiles {
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		ids = append(ids, p.UserID)
	}

	var users []models.UserSummary
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "name", "avatar").
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return models.NewInternalError(err)
	}

	byID := make(map[uuid.UUID]models.UserSummary, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, p := range profiles {
		if u, ok := byID[p.UserID]; ok {
			p.User = u
		} else {
			p.User = models.UserSummary{ID: p.UserID}
		}
	}
	return nil
}

// Upsert creates or updates the profile for profile.UserID in one statement.
// optionalColumns names the optional fields the caller supplied; the rest keep
// their stored values on update.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile, optionalColumns []string) (*models.Profile, error) {
	defer observability.TrackQuery("upsert", "profiles")()

	columns := append([]string{}, profileUpsertColumns...)
	for _, col := range optionalColumns {
		if _, ok := ProfileOptionalColumns[col]; ok {
			columns = append(columns, col)
		}
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Omit(clause.Associations).
		Create(profile).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	reloaded, err := r.GetByUserID(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	if reloaded == nil {
		return nil, models.NewInternalError(errors.New("profile missing after upsert"))
	}
	return reloaded, nil
}

func (r *profileRepository) AddExperience(ctx context.Context, exp *models.Experience) error {
	defer observability.TrackQuery("insert", "experiences")()

	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// RemoveExperience deletes the entry only if it belongs to profileID.
// A miss is not an error.
func (r *profileRepository) RemoveExperience(ctx context.Context, profileID, expID uuid.UUID) error {
	defer observability.TrackQuery("delete", "experiences")()

	if err := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profileID).
		Delete(&models.Experience{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, edu *models.Education) error {
	defer observability.TrackQuery("insert", "educations")()

	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// RemoveEducation deletes the entry only if it belongs to profileID.
// A miss is not an error.
func (r *profileRepository) RemoveEducation(ctx context.Context, profileID, eduID uuid.UUID) error {
	defer observability.TrackQuery("delete", "educations")()

	if err := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", eduID, profileID).
		Delete(&models.Education{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteAccount removes the user's posts (with their likes and comments), the
// profile (with its entries) and the user in a single transaction.
func (r *profileRepository) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	defer observability.TrackQuery("delete", "users")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownPosts := func() *gorm.DB {
			return tx.Model(&models.Post{}).Select("id").Where("user_id = ?", userID)
		}
		if err := tx.Where("post_id IN (?)", ownPosts()).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)", ownPosts()).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}

		ownProfile := func() *gorm.DB {
			return tx.Model(&models.Profile{}).Select("id").Where("user_id = ?", userID)
		}
		if err := tx.Where("profile_id IN (?)", ownProfile()).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id IN (?)", ownProfile()).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", userID).Delete(&models.User{}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, userID)
	return nil
}
