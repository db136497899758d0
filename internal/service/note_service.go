package service

import (
	"context"
	"strings"

	"github.com/paperly/paperly/internal/model"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
	"github.com/paperly/paperly/internal/pkg/timeutil"
	"github.com/paperly/paperly/internal/repo"
)

type NoteService struct {
	notes  *repo.NoteRepo
	papers *repo.PaperRepo
}

func NewNoteService(notes *repo.NoteRepo, papers *repo.PaperRepo) *NoteService {
	return &NoteService{notes: notes, papers: papers}
}

func (s *NoteService) Create(ctx context.Context, userID, paperID, content string) (*model.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, appErr.ErrInvalid
	}
	if _, err := s.papers.GetByID(ctx, userID, paperID); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	note := &model.Note{
		ID:      newID(),
		PaperID: paperID,
		UserID:  userID,
		Content: content,
		Ctime:   now,
		Mtime:   now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, userID, noteID, content string) error {
	if strings.TrimSpace(content) == "" {
		return appErr.ErrInvalid
	}
	return s.notes.Update(ctx, userID, noteID, content, timeutil.NowUnix())
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	return s.notes.Delete(ctx, userID, noteID)
}

func (s *NoteService) ListByPaper(ctx context.Context, userID, paperID string) ([]model.Note, error) {
	if _, err := s.papers.GetByID(ctx, userID, paperID); err != nil {
		return nil, err
	}
	return s.notes.ListByPaper(ctx, userID, paperID)
}
