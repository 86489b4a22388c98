package service

import "forumapi/internal/models"

// maskContent returns placeholder for deleted content and content otherwise.
func maskContent(content string, isDelete bool, placeholder string) string {
	if isDelete {
		return placeholder
	}
	return content
}

// groupReplies buckets replies by parent comment, keeping their input order
// inside each bucket.
func groupReplies(replies []*models.Reply) map[string][]models.ReplyDetail {
	grouped := make(map[string][]models.ReplyDetail)
	for _, r := range replies {
		grouped[r.CommentID] = append(grouped[r.CommentID], models.ReplyDetail{
			ID:       r.ID,
			Content:  maskContent(r.Content, r.IsDelete, models.DeletedReplyPlaceholder),
			Date:     r.Date,
			Username: r.Username,
		})
	}
	return grouped
}

// assembleThreadDetail nests replies and like counts under the comments in
// the order storage returned them. Replies whose comment is not in comments
// are dropped.
func assembleThreadDetail(
	thread *models.Thread,
	comments []*models.Comment,
	replies []*models.Reply,
	likeCounts map[string]int64,
) *models.ThreadDetail {
	byComment := groupReplies(replies)

	details := make([]models.CommentDetail, 0, len(comments))
	for _, c := range comments {
		commentReplies := byComment[c.ID]
		if commentReplies == nil {
			commentReplies = []models.ReplyDetail{}
		}
		details = append(details, models.CommentDetail{
			ID:        c.ID,
			Username:  c.Username,
			Date:      c.Date,
			Content:   maskContent(c.Content, c.IsDelete, models.DeletedCommentPlaceholder),
			LikeCount: likeCounts[c.ID],
			Replies:   commentReplies,
		})
	}

	return &models.ThreadDetail{
		ID:       thread.ID,
		Title:    thread.Title,
		Body:     thread.Body,
		Date:     thread.Date,
		Username: thread.Username,
		Comments: details,
	}
}
