package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/paperly/paperly/internal/model"
	"github.com/paperly/paperly/internal/pkg/dbutil"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
)

type SharedFolderRepo struct {
	db *sql.DB
}

func NewSharedFolderRepo(db *sql.DB) *SharedFolderRepo {
	return &SharedFolderRepo{db: db}
}

var sharedFolderFields = []string{"id", "owner_id", "name", "share_link", "ctime"}

// Create inserts the share row and its paper-membership snapshot. The unique
// (owner_id, name) index turns a concurrent first-share race into ErrConflict.
func (r *SharedFolderRepo) Create(ctx context.Context, shared *model.SharedFolder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	data := map[string]interface{}{
		"id":         shared.ID,
		"owner_id":   shared.OwnerID,
		"name":       shared.Name,
		"share_link": shared.ShareLink,
		"ctime":      shared.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("shared_folders", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	if len(shared.PaperIDs) > 0 {
		members := make([]map[string]interface{}, 0, len(shared.PaperIDs))
		for _, paperID := range shared.PaperIDs {
			members = append(members, map[string]interface{}{
				"shared_folder_id": shared.ID,
				"paper_id":         paperID,
			})
		}
		sqlStr, args, err = builder.BuildInsert("shared_folder_papers", members)
		if err != nil {
			return err
		}
		sqlStr, args = dbutil.Finalize(sqlStr, args)
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SharedFolderRepo) GetByOwnerAndName(ctx context.Context, ownerID, name string) (*model.SharedFolder, error) {
	return r.getOne(ctx, map[string]interface{}{"owner_id": ownerID, "name": name})
}

func (r *SharedFolderRepo) GetByToken(ctx context.Context, token string) (*model.SharedFolder, error) {
	return r.getOne(ctx, map[string]interface{}{"share_link": token})
}

func (r *SharedFolderRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.SharedFolder, error) {
	sqlStr, args, err := builder.BuildSelect("shared_folders", where, sharedFolderFields)
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
	var shared model.SharedFolder
	if err := rows.Scan(&shared.ID, &shared.OwnerID, &shared.Name, &shared.ShareLink, &shared.Ctime); err != nil {
		return nil, err
	}
	return &shared, nil
}

// ListPaperIDs returns the snapshot membership of a share, never the live
// folder contents.
func (r *SharedFolderRepo) ListPaperIDs(ctx context.Context, sharedFolderID string) ([]string, error) {
	where := map[string]interface{}{"shared_folder_id": sharedFolderID}
	sqlStr, args, err := builder.BuildSelect("shared_folder_papers", where, []string{"paper_id"})
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

func (r *SharedFolderRepo) CountByOwnerAndName(ctx context.Context, ownerID, name string) (int, error) {
	sqlStr := `SELECT COUNT(1) FROM shared_folders WHERE owner_id = ? AND name = ?`
	args := []interface{}{ownerID, name}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
