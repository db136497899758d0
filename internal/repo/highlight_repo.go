package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/paperly/paperly/internal/model"
	"github.com/paperly/paperly/internal/pkg/dbutil"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
)

type HighlightRepo struct {
	db *sql.DB
}

func NewHighlightRepo(db *sql.DB) *HighlightRepo {
	return &HighlightRepo{db: db}
}

var highlightFields = []string{"id", "paper_id", "user_id", "page", "content", "color", "comment", "ctime"}

func (r *HighlightRepo) Create(ctx context.Context, highlight *model.Highlight) error {
	data := map[string]interface{}{
		"id":       highlight.ID,
		"paper_id": highlight.PaperID,
		"user_id":  highlight.UserID,
		"page":     highlight.Page,
		"content":  highlight.Content,
		"color":    highlight.Color,
		"comment":  highlight.Comment,
		"ctime":    highlight.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("highlights", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *HighlightRepo) Update(ctx context.Context, userID, highlightID, color, comment string) error {
	where := map[string]interface{}{"id": highlightID, "user_id": userID}
	update := map[string]interface{}{"color": color, "comment": comment}
	sqlStr, args, err := builder.BuildUpdate("highlights", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *HighlightRepo) Delete(ctx context.Context, userID, highlightID string) error {
	where := map[string]interface{}{"id": highlightID, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("highlights", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *HighlightRepo) ListByPaper(ctx context.Context, userID, paperID string) ([]model.Highlight, error) {
	where := map[string]interface{}{
		"paper_id": paperID,
		"user_id":  userID,
		"_orderby": "page asc, ctime asc",
	}
	sqlStr, args, err := builder.BuildSelect("highlights", where, highlightFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Highlight, 0)
	for rows.Next() {
		var h model.Highlight
		if err := rows.Scan(&h.ID, &h.PaperID, &h.UserID, &h.Page, &h.Content, &h.Color, &h.Comment, &h.Ctime); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}
