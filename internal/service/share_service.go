package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/paperly/paperly/internal/model"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
	"github.com/paperly/paperly/internal/pkg/timeutil"
	"github.com/paperly/paperly/internal/repo"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type ShareService struct {
	shares     *repo.SharedFolderRepo
	folders    *repo.FolderRepo
	papers     *PaperService
	mail       EmailSender
	appBaseURL string
}

func NewShareService(shares *repo.SharedFolderRepo, folders *repo.FolderRepo, papers *PaperService,
	mail EmailSender, appBaseURL string) *ShareService {
	return &ShareService{
		shares:     shares,
		folders:    folders,
		papers:     papers,
		mail:       mail,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

type SharedView struct {
	FolderName string        `json:"folder_name"`
	Papers     []model.Paper `json:"papers"`
}

// IssueShareLink returns the share for (ownerID, folder.name), creating it on
// first use. Matching runs on the folder name, so a folder that was shared,
// deleted and recreated under the same name resolves to the original share.
// The paper membership is snapshotted at creation time and never updated.
func (s *ShareService) IssueShareLink(ctx context.Context, requesterID, folderID string) (*model.SharedFolder, error) {
	folder, err := s.folders.GetByID(ctx, requesterID, folderID)
	if err != nil {
		return nil, err
	}
	existing, err := s.shares.GetByOwnerAndName(ctx, requesterID, folder.Name)
	if err == nil {
		return existing, nil
	}
	if !appErr.IsNotFound(err) {
		return nil, err
	}
	paperIDs, err := s.folders.ListPaperIDs(ctx, requesterID, folderID)
	if err != nil {
		return nil, err
	}
	shared := &model.SharedFolder{
		ID:        newID(),
		OwnerID:   requesterID,
		Name:      folder.Name,
		ShareLink: newShareToken(),
		PaperIDs:  paperIDs,
		Ctime:     timeutil.NowUnix(),
	}
	if err := s.shares.Create(ctx, shared); err != nil {
		if appErr.IsConflict(err) {
			// lost the first-share race, the winner's row is the share
			return s.shares.GetByOwnerAndName(ctx, requesterID, folder.Name)
		}
		return nil, err
	}
	return shared, nil
}

func (s *ShareService) ShareURL(shared *model.SharedFolder) string {
	return s.appBaseURL + "/shared/" + shared.ShareLink
}

const shareMailTemplate = `## %s shared a folder with you

The folder **%s** is now available for you to browse.

[Open the shared folder](%s)

If you were not expecting this email you can safely ignore it.
`

func (s *ShareService) ShareByEmail(ctx context.Context, requesterID, folderID, toEmail, senderName string) (*model.SharedFolder, error) {
	if strings.TrimSpace(toEmail) == "" {
		return nil, appErr.ErrInvalid
	}
	shared, err := s.IssueShareLink(ctx, requesterID, folderID)
	if err != nil {
		return nil, err
	}
	markdown := fmt.Sprintf(shareMailTemplate, senderName, shared.Name, s.ShareURL(shared))
	var html bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &html); err != nil {
		return nil, err
	}
	subject := fmt.Sprintf("%s shared \"%s\" with you", senderName, shared.Name)
	if err := s.mail.Send(toEmail, subject, html.String()); err != nil {
		logutil.GetLogger(ctx).Error("send share email failed",
			zap.String("to", toEmail), zap.String("share_id", shared.ID), zap.Error(err))
		return nil, err
	}
	return shared, nil
}

// ResolveByToken serves the public share page. Papers come from the snapshot
// membership table, so later changes to the live folder are invisible here.
func (s *ShareService) ResolveByToken(ctx context.Context, token string) (*SharedView, error) {
	shared, err := s.shares.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	paperIDs, err := s.shares.ListPaperIDs(ctx, shared.ID)
	if err != nil {
		return nil, err
	}
	papers, err := s.papers.ListByIDs(ctx, paperIDs)
	if err != nil {
		return nil, err
	}
	return &SharedView{FolderName: shared.Name, Papers: papers}, nil
}
