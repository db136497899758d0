package service

import (
	"context"
	"strings"

	"github.com/paperly/paperly/internal/model"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
	"github.com/paperly/paperly/internal/pkg/timeutil"
	"github.com/paperly/paperly/internal/repo"
)

type PaperService struct {
	papers      *repo.PaperRepo
	folders     *repo.FolderRepo
	labels      *repo.LabelRepo
	paperLabels *repo.PaperLabelRepo
	embeddings  *repo.EmbeddingRepo
}

func NewPaperService(papers *repo.PaperRepo, folders *repo.FolderRepo, labels *repo.LabelRepo, paperLabels *repo.PaperLabelRepo, embeddings *repo.EmbeddingRepo) *PaperService {
	return &PaperService{papers: papers, folders: folders, labels: labels, paperLabels: paperLabels, embeddings: embeddings}
}

type PaperCreateInput struct {
	Title           string
	Authors         []string
	Abstract        string
	PDFURL          string
	SourceURL       string
	PublicationDate string
}

type PaperUpdateInput struct {
	Title           string
	Authors         []string
	Abstract        string
	PDFURL          string
	SourceURL       string
	PublicationDate string
}

func (s *PaperService) Create(ctx context.Context, userID string, input PaperCreateInput) (*model.Paper, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, appErr.ErrInvalid
	}
	now := timeutil.NowUnix()
	paper := &model.Paper{
		ID:              newID(),
		UserID:          userID,
		Title:           input.Title,
		Authors:         input.Authors,
		Abstract:        input.Abstract,
		PDFURL:          input.PDFURL,
		SourceURL:       input.SourceURL,
		PublicationDate: input.PublicationDate,
		Ctime:           now,
		Mtime:           now,
	}
	if err := s.papers.Create(ctx, paper); err != nil {
		return nil, err
	}
	paper.Labels = []model.Label{}
	return paper, nil
}

func (s *PaperService) Get(ctx context.Context, userID, paperID string) (*model.Paper, error) {
	paper, err := s.papers.GetByID(ctx, userID, paperID)
	if err != nil {
		return nil, err
	}
	if err := s.attachLabels(ctx, userID, paper); err != nil {
		return nil, err
	}
	return paper, nil
}

// Search lists the user's papers newest first, optionally filtered by a
// case-insensitive title/abstract/author match.
func (s *PaperService) Search(ctx context.Context, userID, query string) ([]model.Paper, error) {
	var papers []model.Paper
	var err error
	if strings.TrimSpace(query) == "" {
		papers, err = s.papers.List(ctx, userID)
	} else {
		papers, err = s.papers.SearchLike(ctx, userID, query)
	}
	if err != nil {
		return nil, err
	}
	return s.attachLabelsBatch(ctx, papers)
}

func (s *PaperService) ListStarred(ctx context.Context, userID string) ([]model.Paper, error) {
	papers, err := s.papers.ListStarred(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachLabelsBatch(ctx, papers)
}

func (s *PaperService) Update(ctx context.Context, userID, paperID string, input PaperUpdateInput) (*model.Paper, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, appErr.ErrInvalid
	}
	paper := &model.Paper{
		ID:              paperID,
		UserID:          userID,
		Title:           input.Title,
		Authors:         input.Authors,
		Abstract:        input.Abstract,
		PDFURL:          input.PDFURL,
		SourceURL:       input.SourceURL,
		PublicationDate: input.PublicationDate,
		Mtime:           timeutil.NowUnix(),
	}
	if err := s.papers.Update(ctx, paper); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, paperID)
}

func (s *PaperService) UpdateStarred(ctx context.Context, userID, paperID string, starred int) error {
	return s.papers.UpdateStarred(ctx, userID, paperID, starred, timeutil.NowUnix())
}

// Move places the paper into folderID, or back to the root when folderID is
// empty. The target folder must belong to the same user.
func (s *PaperService) Move(ctx context.Context, userID, paperID, folderID string) error {
	if folderID != "" {
		if _, err := s.folders.GetByID(ctx, userID, folderID); err != nil {
			return err
		}
	}
	return s.papers.UpdateFolder(ctx, userID, paperID, folderID, timeutil.NowUnix())
}

func (s *PaperService) Delete(ctx context.Context, userID, paperID string) error {
	if err := s.papers.Delete(ctx, userID, paperID); err != nil {
		return err
	}
	if err := s.paperLabels.Replace(ctx, paperID, nil); err != nil {
		return err
	}
	return s.embeddings.Delete(ctx, paperID)
}

// ReplaceLabels swaps the paper's label set; all labels must belong to the
// caller.
func (s *PaperService) ReplaceLabels(ctx context.Context, userID, paperID string, labelIDs []string) error {
	if _, err := s.papers.GetByID(ctx, userID, paperID); err != nil {
		return err
	}
	if len(labelIDs) > 0 {
		owned, err := s.labels.ListByIDs(ctx, userID, labelIDs)
		if err != nil {
			return err
		}
		if len(owned) != len(labelIDs) {
			return appErr.ErrInvalid
		}
	}
	return s.paperLabels.Replace(ctx, paperID, labelIDs)
}

func (s *PaperService) ListByIDs(ctx context.Context, paperIDs []string) ([]model.Paper, error) {
	papers, err := s.papers.ListByIDs(ctx, paperIDs)
	if err != nil {
		return nil, err
	}
	return s.attachLabelsBatch(ctx, papers)
}

func (s *PaperService) attachLabels(ctx context.Context, userID string, paper *model.Paper) error {
	labelIDs, err := s.paperLabels.ListLabelIDs(ctx, paper.ID)
	if err != nil {
		return err
	}
	labels, err := s.labels.ListByIDs(ctx, userID, labelIDs)
	if err != nil {
		return err
	}
	paper.Labels = labels
	return nil
}

func (s *PaperService) attachLabelsBatch(ctx context.Context, papers []model.Paper) ([]model.Paper, error) {
	if len(papers) == 0 {
		return papers, nil
	}
	ids := make([]string, 0, len(papers))
	for _, paper := range papers {
		ids = append(ids, paper.ID)
	}
	byPaper, err := s.paperLabels.ListByPaperIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range papers {
		labels := byPaper[papers[i].ID]
		if labels == nil {
			labels = []model.Label{}
		}
		papers[i].Labels = labels
	}
	return papers, nil
}
