package service

import (
	"context"

	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
	"devconnector/internal/validation"

	"github.com/google/uuid"
)

const commentNotFoundMsg = "Comment does not exist"

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	UserID uuid.UUID `json:"-"`
	Text   string    `json:"text" validate:"notblank" msg:"Text is required"`
}

type DeletePostInput struct {
	UserID uuid.UUID
	PostID uuid.UUID
}

type AddCommentInput struct {
	UserID uuid.UUID `json:"-"`
	PostID uuid.UUID `json:"-"`
	Text   string    `json:"text" validate:"notblank" msg:"Text is required"`
}

type DeleteCommentInput struct {
	UserID    uuid.UUID
	PostID    uuid.UUID
	CommentID uuid.UUID
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// Create stores a post carrying a snapshot of the author's name and avatar.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "Create")
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post = &models.Post{
		UserID: in.UserID,
		Text:   in.Text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	post.Likes = []models.Like{}
	post.Comments = []models.Comment{}

	observability.FeedMutations.WithLabelValues("post").Inc()
	return post, nil
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// Delete removes a post owned by the caller.
func (s *PostService) Delete(ctx context.Context, in DeletePostInput) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "Delete")
	defer func() { observability.EndSpan(span, err) }()

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if err := requireOwner(post.UserID, in.UserID); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}

	observability.FeedMutations.WithLabelValues("delete").Inc()
	return nil
}

// Like records the caller's like once and returns the post's likes.
func (s *PostService) Like(ctx context.Context, userID, postID uuid.UUID) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	inserted, err := s.postRepo.Like(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, models.NewConflictError("Post already liked")
	}

	observability.FeedMutations.WithLabelValues("like").Inc()
	return s.postRepo.Likes(ctx, postID)
}

// Unlike removes the caller's like and returns the post's likes.
func (s *PostService) Unlike(ctx context.Context, userID, postID uuid.UUID) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	removed, err := s.postRepo.Unlike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, models.NewConflictError("Post has not yet been liked")
	}

	observability.FeedMutations.WithLabelValues("unlike").Inc()
	return s.postRepo.Likes(ctx, postID)
}

// AddComment appends a comment signed with the caller's name and avatar.
func (s *PostService) AddComment(ctx context.Context, in AddCommentInput) ([]models.Comment, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: in.PostID,
		UserID: in.UserID,
		Text:   in.Text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	observability.FeedMutations.WithLabelValues("comment").Inc()
	return s.postRepo.Comments(ctx, in.PostID)
}

// DeleteComment removes the caller's own comment, matched by id.
func (s *PostService) DeleteComment(ctx context.Context, in DeleteCommentInput) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment, err := s.postRepo.GetComment(ctx, in.PostID, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(comment.UserID, in.UserID); err != nil {
		return nil, err
	}

	removed, err := s.postRepo.DeleteComment(ctx, in.PostID, in.CommentID, in.UserID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, models.NewNotFoundMessage(commentNotFoundMsg)
	}

	observability.FeedMutations.WithLabelValues("uncomment").Inc()
	return s.postRepo.Comments(ctx, in.PostID)
}
