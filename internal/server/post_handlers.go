package server

import (
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var in service.CreatePostInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, fiber.StatusNotFound)
	}
	in.UserID = currentUserID(c)

	post, err := s.postService.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(post)
}

// ListPosts handles GET /api/posts.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.UserContext())
	if err != nil {
		return respondError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.Get(c.UserContext(), paramUUID(c, "id"))
	if err != nil {
		return respondError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	err := s.postService.Delete(c.UserContext(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: paramUUID(c, "id"),
	})
	if err != nil {
		return respondError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(fiber.Map{"msg": "Post is removed"})
}

// LikePost handles PUT /api/posts/like/:id.
func (s *Server) LikePost(c *fiber.Ctx) error {
	likes, err := s.postService.Like(c.UserContext(), currentUserID(c), paramUUID(c, "id"))
	if err != nil {
		return respondError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	likes, err := s.postService.Unlike(c.UserContext(), currentUserID(c), paramUUID(c, "id"))
	if err != nil {
		return respondError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(likes)
}

// AddComment handles POST /api/posts/comment/:id.
func (s *Server) AddComment(c *fiber.Ctx) error {
	var in service.AddCommentInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, fiber.StatusNotFound)
	}
	in.UserID = currentUserID(c)
	in.PostID = paramUUID(c, "id")

	comments, err := s.postService.AddComment(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:comment_id.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	comments, err := s.postService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		PostID:    paramUUID(c, "id"),
		CommentID: paramUUID(c, "comment_id"),
	})
	if err != nil {
		return respondError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(comments)
}
