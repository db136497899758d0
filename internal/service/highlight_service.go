package service

import (
	"context"
	"strings"

	"github.com/paperly/paperly/internal/model"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
	"github.com/paperly/paperly/internal/pkg/timeutil"
	"github.com/paperly/paperly/internal/repo"
)

type HighlightService struct {
	highlights *repo.HighlightRepo
	papers     *repo.PaperRepo
}

func NewHighlightService(highlights *repo.HighlightRepo, papers *repo.PaperRepo) *HighlightService {
	return &HighlightService{highlights: highlights, papers: papers}
}

type HighlightCreateInput struct {
	PaperID string
	Page    int
	Content string
	Color   string
	Comment string
}

func (s *HighlightService) Create(ctx context.Context, userID string, input HighlightCreateInput) (*model.Highlight, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, appErr.ErrInvalid
	}
	if _, err := s.papers.GetByID(ctx, userID, input.PaperID); err != nil {
		return nil, err
	}
	highlight := &model.Highlight{
		ID:      newID(),
		PaperID: input.PaperID,
		UserID:  userID,
		Page:    input.Page,
		Content: input.Content,
		Color:   input.Color,
		Comment: input.Comment,
		Ctime:   timeutil.NowUnix(),
	}
	if err := s.highlights.Create(ctx, highlight); err != nil {
		return nil, err
	}
	return highlight, nil
}

func (s *HighlightService) Update(ctx context.Context, userID, highlightID, color, comment string) error {
	return s.highlights.Update(ctx, userID, highlightID, color, comment)
}

func (s *HighlightService) Delete(ctx context.Context, userID, highlightID string) error {
	return s.highlights.Delete(ctx, userID, highlightID)
}

func (s *HighlightService) ListByPaper(ctx context.Context, userID, paperID string) ([]model.Highlight, error) {
	if _, err := s.papers.GetByID(ctx, userID, paperID); err != nil {
		return nil, err
	}
	return s.highlights.ListByPaper(ctx, userID, paperID)
}
