package server

import (
	"forumapi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PostComment adds a comment to a thread (protected)
func (s *Server) PostComment(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return respondError(c, err)
	}

	added, err := s.commentService.AddComment(c.UserContext(), service.AddCommentInput{
		ThreadID: c.Params("threadId"),
		Owner:    currentUserID(c),
		Payload:  payload,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusCreated, fiber.Map{"addedComment": added})
}

// DeleteComment soft-deletes the caller's comment (protected, owner only)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		ThreadID:  c.Params("threadId"),
		CommentID: c.Params("commentId"),
		Owner:     currentUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, nil)
}

// PutLike toggles the caller's like on a comment (protected)
func (s *Server) PutLike(c *fiber.Ctx) error {
	_, err := s.likeService.ToggleLike(c.UserContext(), service.ToggleLikeInput{
		ThreadID:  c.Params("threadId"),
		CommentID: c.Params("commentId"),
		Owner:     currentUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, nil)
}
