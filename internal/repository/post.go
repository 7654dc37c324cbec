package repository

import (
	"context"

	"devconnector/internal/models"
	"devconnector/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post, like and comment data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	Unlike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	Likes(ctx context.Context, postID uuid.UUID) ([]models.Like, error)
	AddComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, postID, commentID uuid.UUID) (*models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID, userID uuid.UUID) (bool, error)
	Comments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func (r *postRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Likes", newestFirst).Preload("Comments", newestFirst)
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("insert", "posts")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	var posts []models.Post
	if err := r.withDetails(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	var post models.Post
	if err := r.withDetails(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, lookupError(err, models.NewNotFoundMessage("Post not found"))
	}
	return &post, nil
}

// Delete removes the post with its likes and comments in one transaction.
func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer observability.TrackQuery("delete", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Post{}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Like inserts a like and reports whether a row was written. The unique
// (post_id, user_id) index turns a repeated like into a no-op.
func (r *postRepository) Like(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	defer observability.TrackQuery("insert", "likes")()

	like := models.Like{PostID: postID, UserID: userID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Unlike deletes the caller's like and reports whether one existed.
func (r *postRepository) Unlike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	defer observability.TrackQuery("delete", "likes")()

	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) Likes(ctx context.Context, postID uuid.UUID) ([]models.Like, error) {
	defer observability.TrackQuery("select", "likes")()

	likes := []models.Like{}
	if err := newestFirst(r.db.WithContext(ctx)).
		Where("post_id = ?", postID).
		Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("insert", "comments")()

	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetComment(ctx context.Context, postID, commentID uuid.UUID) (*models.Comment, error) {
	defer observability.TrackQuery("select", "comments")()

	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error; err != nil {
		return nil, lookupError(err, models.NewNotFoundMessage("Comment does not exist"))
	}
	return &comment, nil
}

// DeleteComment removes the comment only when it is on postID and written by
// userID, and reports whether a row was removed.
func (r *postRepository) DeleteComment(ctx context.Context, postID, commentID, userID uuid.UUID) (bool, error) {
	defer observability.TrackQuery("delete", "comments")()

	res := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ? AND user_id = ?", commentID, postID, userID).
		Delete(&models.Comment{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) Comments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	defer observability.TrackQuery("select", "comments")()

	comments := []models.Comment{}
	if err := newestFirst(r.db.WithContext(ctx)).
		Where("post_id = ?", postID).
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
