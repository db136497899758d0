package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/paperly/paperly/internal/model"
	"github.com/paperly/paperly/internal/pkg/dbutil"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
)

type FolderRepo struct {
	db *sql.DB
}

func NewFolderRepo(db *sql.DB) *FolderRepo {
	return &FolderRepo{db: db}
}

func (r *FolderRepo) Create(ctx context.Context, folder *model.Folder) error {
	data := map[string]interface{}{
		"id":      folder.ID,
		"user_id": folder.UserID,
		"name":    folder.Name,
		"ctime":   folder.Ctime,
		"mtime":   folder.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("folders", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *FolderRepo) Rename(ctx context.Context, userID, folderID, name string, mtime int64) error {
	where := map[string]interface{}{"id": folderID, "user_id": userID}
	update := map[string]interface{}{"name": name, "mtime": mtime}
	sqlStr, args, err := builder.BuildUpdate("folders", where, update)
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

func (r *FolderRepo) Delete(ctx context.Context, userID, folderID string) error {
	where := map[string]interface{}{"id": folderID, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("folders", where)
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

func (r *FolderRepo) GetByID(ctx context.Context, userID, folderID string) (*model.Folder, error) {
	where := map[string]interface{}{"id": folderID, "user_id": userID}
	sqlStr, args, err := builder.BuildSelect("folders", where, []string{"id", "user_id", "name", "ctime", "mtime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var folder model.Folder
	if err := rows.Scan(&folder.ID, &folder.UserID, &folder.Name, &folder.Ctime, &folder.Mtime); err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *FolderRepo) List(ctx context.Context, userID string) ([]model.Folder, error) {
	sqlStr := `
		SELECT f.id, f.user_id, f.name, f.ctime, f.mtime, COUNT(p.id) AS paper_count
		FROM folders f
		LEFT JOIN papers p ON p.folder_id = f.id AND p.user_id = f.user_id
		WHERE f.user_id = ?
		GROUP BY f.id, f.user_id, f.name, f.ctime, f.mtime
		ORDER BY f.ctime DESC
	`
	args := []interface{}{userID}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Folder, 0)
	for rows.Next() {
		var folder model.Folder
		if err := rows.Scan(&folder.ID, &folder.UserID, &folder.Name, &folder.Ctime, &folder.Mtime, &folder.PaperCount); err != nil {
			return nil, err
		}
		items = append(items, folder)
	}
	return items, rows.Err()
}

func (r *FolderRepo) ListPaperIDs(ctx context.Context, userID, folderID string) ([]string, error) {
	where := map[string]interface{}{"user_id": userID, "folder_id": folderID}
	sqlStr, args, err := builder.BuildSelect("papers", where, []string{"id"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
