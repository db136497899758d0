package repo_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paperly/paperly/internal/model"
	"github.com/paperly/paperly/internal/pkg/timeutil"
	"github.com/paperly/paperly/internal/repo"
	"github.com/paperly/paperly/test/testutil"
)

func newTestID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func TestCommentAuthorJoinAndOrder(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	users := repo.NewUserRepo(db)
	papers := repo.NewPaperRepo(db)
	comments := repo.NewCommentRepo(db)

	now := timeutil.NowUnix()
	user := &model.User{
		ID:    newTestID(),
		Email: newTestID() + "@test.local",
		Name:  "Joined Author",
		Ctime: now,
		Mtime: now,
	}
	require.NoError(t, users.Create(ctx, user))

	paper := &model.Paper{
		ID:     newTestID(),
		UserID: user.ID,
		Title:  "comment ordering",
		Ctime:  now,
		Mtime:  now,
	}
	require.NoError(t, papers.Create(ctx, paper))

	// two comments in the same second, insertion order disambiguated by id
	ids := []string{newTestID(), newTestID()}
	for _, id := range ids {
		require.NoError(t, comments.Create(ctx, &model.Comment{
			ID:      id,
			PaperID: paper.ID,
			UserID:  user.ID,
			Content: "content " + id,
			Ctime:   now,
		}))
	}

	got, err := comments.GetWithAuthor(ctx, ids[0])
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	require.Equal(t, "Joined Author", got.Author.Name)
	require.Equal(t, user.Email, got.Author.Email)

	listed, err := comments.ListByPaper(ctx, paper.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, comment := range listed {
		require.NotNil(t, comment.Author)
		require.Equal(t, "Joined Author", comment.Author.Name)
	}
}

func TestCommentAuthorSurvivesUnknownUser(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	users := repo.NewUserRepo(db)
	papers := repo.NewPaperRepo(db)
	comments := repo.NewCommentRepo(db)

	now := timeutil.NowUnix()
	user := &model.User{ID: newTestID(), Email: newTestID() + "@test.local", Ctime: now, Mtime: now}
	require.NoError(t, users.Create(ctx, user))
	paper := &model.Paper{ID: newTestID(), UserID: user.ID, Title: "orphan comment", Ctime: now, Mtime: now}
	require.NoError(t, papers.Create(ctx, paper))

	commentID := newTestID()
	require.NoError(t, comments.Create(ctx, &model.Comment{
		ID:      commentID,
		PaperID: paper.ID,
		UserID:  newTestID(),
		Content: "posted by nobody",
		Ctime:   now,
	}))

	got, err := comments.GetWithAuthor(ctx, commentID)
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	require.Empty(t, got.Author.Name)
	require.Empty(t, got.Author.Email)
}
