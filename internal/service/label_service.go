package service

import (
	"context"
	"strings"

	"github.com/paperly/paperly/internal/model"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
	"github.com/paperly/paperly/internal/pkg/timeutil"
	"github.com/paperly/paperly/internal/repo"
)

type LabelService struct {
	labels      *repo.LabelRepo
	paperLabels *repo.PaperLabelRepo
}

func NewLabelService(labels *repo.LabelRepo, paperLabels *repo.PaperLabelRepo) *LabelService {
	return &LabelService{labels: labels, paperLabels: paperLabels}
}

func (s *LabelService) Create(ctx context.Context, userID, name, color string) (*model.Label, error) {
	if strings.TrimSpace(name) == "" {
		return nil, appErr.ErrInvalid
	}
	label := &model.Label{
		ID:     newID(),
		UserID: userID,
		Name:   name,
		Color:  color,
		Ctime:  timeutil.NowUnix(),
	}
	if err := s.labels.Create(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

func (s *LabelService) Update(ctx context.Context, userID, labelID, name, color string) error {
	if strings.TrimSpace(name) == "" {
		return appErr.ErrInvalid
	}
	return s.labels.Update(ctx, userID, labelID, name, color)
}

func (s *LabelService) Delete(ctx context.Context, userID, labelID string) error {
	return s.labels.Delete(ctx, userID, labelID)
}

func (s *LabelService) List(ctx context.Context, userID string) ([]model.Label, error) {
	return s.labels.List(ctx, userID)
}
