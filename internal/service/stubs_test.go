package service

import (
	"context"
	"errors"
	"testing"

	"devconnector/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uuid.UUID) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id, Name: "Test User", Avatar: "//avatar"}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = uuid.New()
			return nil
		},
	}
}

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByUserIDFn      func(context.Context, uuid.UUID) (*models.Profile, error)
	listFn             func(context.Context) ([]models.Profile, error)
	upsertFn           func(context.Context, *models.Profile, []string) (*models.Profile, error)
	addExperienceFn    func(context.Context, *models.Experience) error
	removeExperienceFn func(context.Context, uuid.UUID, uuid.UUID) error
	addEducationFn     func(context.Context, *models.Education) error
	removeEducationFn  func(context.Context, uuid.UUID, uuid.UUID) error
	deleteAccountFn    func(context.Context, uuid.UUID) error
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) List(ctx context.Context) ([]models.Profile, error) {
	return s.listFn(ctx)
}
func (s *profileRepoStub) Upsert(ctx context.Context, p *models.Profile, cols []string) (*models.Profile, error) {
	return s.upsertFn(ctx, p, cols)
}
func (s *profileRepoStub) AddExperience(ctx context.Context, exp *models.Experience) error {
	return s.addExperienceFn(ctx, exp)
}
func (s *profileRepoStub) RemoveExperience(ctx context.Context, profileID, expID uuid.UUID) error {
	return s.removeExperienceFn(ctx, profileID, expID)
}
func (s *profileRepoStub) AddEducation(ctx context.Context, edu *models.Education) error {
	return s.addEducationFn(ctx, edu)
}
func (s *profileRepoStub) RemoveEducation(ctx context.Context, profileID, eduID uuid.UUID) error {
	return s.removeEducationFn(ctx, profileID, eduID)
}
func (s *profileRepoStub) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.deleteAccountFn(ctx, userID)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
			return &models.Profile{ID: uuid.New(), UserID: userID}, nil
		},
		listFn: func(_ context.Context) ([]models.Profile, error) { return nil, nil },
		upsertFn: func(_ context.Context, p *models.Profile, _ []string) (*models.Profile, error) {
			return p, nil
		},
		addExperienceFn:    func(_ context.Context, _ *models.Experience) error { return nil },
		removeExperienceFn: func(_ context.Context, _, _ uuid.UUID) error { return nil },
		addEducationFn:     func(_ context.Context, _ *models.Education) error { return nil },
		removeEducationFn:  func(_ context.Context, _, _ uuid.UUID) error { return nil },
		deleteAccountFn:    func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	listFn          func(context.Context) ([]models.Post, error)
	getByIDFn       func(context.Context, uuid.UUID) (*models.Post, error)
	deleteFn        func(context.Context, uuid.UUID) error
	likeFn          func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	unlikeFn        func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	likesFn         func(context.Context, uuid.UUID) ([]models.Like, error)
	addCommentFn    func(context.Context, *models.Comment) error
	getCommentFn    func(context.Context, uuid.UUID, uuid.UUID) (*models.Comment, error)
	deleteCommentFn func(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (bool, error)
	commentsFn      func(context.Context, uuid.UUID) ([]models.Comment, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) List(ctx context.Context) ([]models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	return s.likeFn(ctx, postID, userID)
}
func (s *postRepoStub) Unlike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	return s.unlikeFn(ctx, postID, userID)
}
func (s *postRepoStub) Likes(ctx context.Context, postID uuid.UUID) ([]models.Like, error) {
	return s.likesFn(ctx, postID)
}
func (s *postRepoStub) AddComment(ctx context.Context, c *models.Comment) error {
	return s.addCommentFn(ctx, c)
}
func (s *postRepoStub) GetComment(ctx context.Context, postID, commentID uuid.UUID) (*models.Comment, error) {
	return s.getCommentFn(ctx, postID, commentID)
}
func (s *postRepoStub) DeleteComment(ctx context.Context, postID, commentID, userID uuid.UUID) (bool, error) {
	return s.deleteCommentFn(ctx, postID, commentID, userID)
}
func (s *postRepoStub) Comments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	return s.commentsFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = uuid.New()
			return nil
		},
		listFn: func(_ context.Context) ([]models.Post, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Post, error) {
			return &models.Post{ID: id, UserID: uuid.New()}, nil
		},
		deleteFn:     func(_ context.Context, _ uuid.UUID) error { return nil },
		likeFn:       func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil },
		unlikeFn:     func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil },
		likesFn:      func(_ context.Context, _ uuid.UUID) ([]models.Like, error) { return []models.Like{}, nil },
		addCommentFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getCommentFn: func(_ context.Context, postID, commentID uuid.UUID) (*models.Comment, error) {
			return &models.Comment{ID: commentID, PostID: postID, UserID: uuid.New()}, nil
		},
		deleteCommentFn: func(_ context.Context, _, _, _ uuid.UUID) (bool, error) { return true, nil },
		commentsFn:      func(_ context.Context, _ uuid.UUID) ([]models.Comment, error) { return []models.Comment{}, nil },
	}
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

// assertValidationMessages asserts the exact list of field messages.
func assertValidationMessages(t *testing.T, err error, msgs ...string) {
	t.Helper()
	appErr := assertAppError(t, err, models.CodeValidation)
	got := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		got = append(got, f.Msg)
	}
	assert.Equal(t, msgs, got)
}
