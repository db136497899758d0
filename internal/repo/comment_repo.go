package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/paperly/paperly/internal/model"
	"github.com/paperly/paperly/internal/pkg/dbutil"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
)

type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	data := map[string]interface{}{
		"id":       comment.ID,
		"paper_id": comment.PaperID,
		"user_id":  comment.UserID,
		"content":  comment.Content,
		"ctime":    comment.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("comments", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// GetWithAuthor loads one comment with its author display fields joined.
func (r *CommentRepo) GetWithAuthor(ctx context.Context, commentID string) (*model.Comment, error) {
	sqlStr := commentAuthorSelect + " WHERE c.id = ?"
	args := []interface{}{commentID}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanCommentWithAuthor(rows)
}

// ListByPaper returns all comments of a paper, newest first, with author
// display fields joined.
func (r *CommentRepo) ListByPaper(ctx context.Context, paperID string) ([]model.Comment, error) {
	sqlStr := commentAuthorSelect + " WHERE c.paper_id = ? ORDER BY c.ctime DESC, c.id DESC"
	args := []interface{}{paperID}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Comment, 0)
	for rows.Next() {
		comment, err := scanCommentWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *comment)
	}
	return items, rows.Err()
}

const commentAuthorSelect = `
	SELECT c.id, c.paper_id, c.user_id, c.content, c.ctime,
	       COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.avatar_url, '')
	FROM comments c
	LEFT JOIN users u ON u.id = c.user_id
`

func scanCommentWithAuthor(rows *sql.Rows) (*model.Comment, error) {
	var comment model.Comment
	var author model.CommentAuthor
	if err := rows.Scan(
		&comment.ID, &comment.PaperID, &comment.UserID, &comment.Content, &comment.Ctime,
		&author.Name, &author.Email, &author.AvatarURL,
	); err != nil {
		return nil, err
	}
	comment.Author = &author
	return &comment, nil
}
