package server

import (
	"forumapi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PostReply adds a reply to a comment (protected)
func (s *Server) PostReply(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return respondError(c, err)
	}

	added, err := s.replyService.AddReply(c.UserContext(), service.AddReplyInput{
		ThreadID:  c.Params("threadId"),
		CommentID: c.Params("commentId"),
		Owner:     currentUserID(c),
		Payload:   payload,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusCreated, fiber.Map{"addedReply": added})
}

// DeleteReply soft-deletes the caller's reply (protected, owner only)
func (s *Server) DeleteReply(c *fiber.Ctx) error {
	err := s.replyService.DeleteReply(c.UserContext(), service.DeleteReplyInput{
		ThreadID:  c.Params("threadId"),
		CommentID: c.Params("commentId"),
		ReplyID:   c.Params("replyId"),
		Owner:     currentUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, nil)
}
