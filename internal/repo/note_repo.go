package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/paperly/paperly/internal/model"
	"github.com/paperly/paperly/internal/pkg/dbutil"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
)

type NoteRepo struct {
	db *sql.DB
}

func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

var noteFields = []string{"id", "paper_id", "user_id", "content", "ctime", "mtime"}

func (r *NoteRepo) Create(ctx context.Context, note *model.Note) error {
	data := map[string]interface{}{
		"id":       note.ID,
		"paper_id": note.PaperID,
		"user_id":  note.UserID,
		"content":  note.Content,
		"ctime":    note.Ctime,
		"mtime":    note.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("notes", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *NoteRepo) Update(ctx context.Context, userID, noteID, content string, mtime int64) error {
	where := map[string]interface{}{"id": noteID, "user_id": userID}
	update := map[string]interface{}{"content": content, "mtime": mtime}
	sqlStr, args, err := builder.BuildUpdate("notes", where, update)
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

func (r *NoteRepo) Delete(ctx context.Context, userID, noteID string) error {
	where := map[string]interface{}{"id": noteID, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("notes", where)
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

func (r *NoteRepo) ListByPaper(ctx context.Context, userID, paperID string) ([]model.Note, error) {
	where := map[string]interface{}{
		"paper_id": paperID,
		"user_id":  userID,
		"_orderby": "ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("notes", where, noteFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Note, 0)
	for rows.Next() {
		var note model.Note
		if err := rows.Scan(&note.ID, &note.PaperID, &note.UserID, &note.Content, &note.Ctime, &note.Mtime); err != nil {
			return nil, err
		}
		items = append(items, note)
	}
	return items, rows.Err()
}
