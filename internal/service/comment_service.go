package service

import (
	"context"
	"strings"

	"github.com/paperly/paperly/internal/hub"
	"github.com/paperly/paperly/internal/model"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
	"github.com/paperly/paperly/internal/pkg/timeutil"
	"github.com/paperly/paperly/internal/repo"
)

type CommentService struct {
	comments *repo.CommentRepo
	hub      *hub.CommentHub
}

func NewCommentService(comments *repo.CommentRepo, commentHub *hub.CommentHub) *CommentService {
	return &CommentService{comments: comments, hub: commentHub}
}

// Create persists the comment, joins the author display fields and only then
// publishes to the hub, so every streamed frame carries the same shape as the
// list endpoint and stream order equals creation order. Publish never fails
// the request: a dead listener is the hub's problem, not the commenter's.
func (s *CommentService) Create(ctx context.Context, userID, paperID, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, appErr.ErrInvalid
	}
	comment := &model.Comment{
		ID:      newID(),
		PaperID: paperID,
		UserID:  userID,
		Content: content,
		Ctime:   timeutil.NowUnix(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	created, err := s.comments.GetWithAuthor(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(ctx, paperID, *created)
	return created, nil
}

func (s *CommentService) ListByPaper(ctx context.Context, paperID string) ([]model.Comment, error) {
	return s.comments.ListByPaper(ctx, paperID)
}
