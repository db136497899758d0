package service

import (
	"context"
	"strings"

	"github.com/paperly/paperly/internal/model"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
	"github.com/paperly/paperly/internal/pkg/timeutil"
	"github.com/paperly/paperly/internal/repo"
)

type FolderService struct {
	folders *repo.FolderRepo
	papers  *repo.PaperRepo
}

func NewFolderService(folders *repo.FolderRepo, papers *repo.PaperRepo) *FolderService {
	return &FolderService{folders: folders, papers: papers}
}

func (s *FolderService) Create(ctx context.Context, userID, name string) (*model.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, appErr.ErrInvalid
	}
	now := timeutil.NowUnix()
	folder := &model.Folder{
		ID:     newID(),
		UserID: userID,
		Name:   name,
		Ctime:  now,
		Mtime:  now,
	}
	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *FolderService) Get(ctx context.Context, userID, folderID string) (*model.Folder, error) {
	return s.folders.GetByID(ctx, userID, folderID)
}

func (s *FolderService) List(ctx context.Context, userID string) ([]model.Folder, error) {
	return s.folders.List(ctx, userID)
}

func (s *FolderService) Rename(ctx context.Context, userID, folderID, name string) error {
	if strings.TrimSpace(name) == "" {
		return appErr.ErrInvalid
	}
	return s.folders.Rename(ctx, userID, folderID, name, timeutil.NowUnix())
}

// Delete removes the folder; member papers fall back to the root rather than
// being deleted with it.
func (s *FolderService) Delete(ctx context.Context, userID, folderID string) error {
	papers, err := s.papers.ListByFolder(ctx, userID, folderID)
	if err != nil {
		return err
	}
	now := timeutil.NowUnix()
	for _, paper := range papers {
		if err := s.papers.UpdateFolder(ctx, userID, paper.ID, "", now); err != nil {
			return err
		}
	}
	return s.folders.Delete(ctx, userID, folderID)
}

func (s *FolderService) ListPapers(ctx context.Context, userID, folderID string) ([]model.Paper, error) {
	if _, err := s.folders.GetByID(ctx, userID, folderID); err != nil {
		return nil, err
	}
	return s.papers.ListByFolder(ctx, userID, folderID)
}
