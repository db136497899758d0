package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/paperly/paperly/internal/model"
	"github.com/paperly/paperly/internal/pkg/dbutil"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
)

type LabelRepo struct {
	db *sql.DB
}

func NewLabelRepo(db *sql.DB) *LabelRepo {
	return &LabelRepo{db: db}
}

var labelFields = []string{"id", "user_id", "name", "color", "ctime"}

func (r *LabelRepo) Create(ctx context.Context, label *model.Label) error {
	data := map[string]interface{}{
		"id":      label.ID,
		"user_id": label.UserID,
		"name":    label.Name,
		"color":   label.Color,
		"ctime":   label.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("labels", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *LabelRepo) Update(ctx context.Context, userID, labelID, name, color string) error {
	where := map[string]interface{}{"id": labelID, "user_id": userID}
	update := map[string]interface{}{"name": name, "color": color}
	sqlStr, args, err := builder.BuildUpdate("labels", where, update)
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

func (r *LabelRepo) Delete(ctx context.Context, userID, labelID string) error {
	where := map[string]interface{}{"id": labelID, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("labels", where)
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

func (r *LabelRepo) List(ctx context.Context, userID string) ([]model.Label, error) {
	where := map[string]interface{}{"user_id": userID, "_orderby": "ctime asc"}
	sqlStr, args, err := builder.BuildSelect("labels", where, labelFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLabels(rows)
}

func (r *LabelRepo) ListByIDs(ctx context.Context, userID string, labelIDs []string) ([]model.Label, error) {
	if len(labelIDs) == 0 {
		return []model.Label{}, nil
	}
	where := map[string]interface{}{"user_id": userID, "id in": labelIDs}
	sqlStr, args, err := builder.BuildSelect("labels", where, labelFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLabels(rows)
}

func collectLabels(rows *sql.Rows) ([]model.Label, error) {
	items := make([]model.Label, 0)
	for rows.Next() {
		var label model.Label
		if err := rows.Scan(&label.ID, &label.UserID, &label.Name, &label.Color, &label.Ctime); err != nil {
			return nil, err
		}
		items = append(items, label)
	}
	return items, rows.Err()
}
