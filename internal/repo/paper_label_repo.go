package repo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/didi/gendry/builder"

	"github.com/paperly/paperly/internal/model"
	"github.com/paperly/paperly/internal/pkg/dbutil"
)

type PaperLabelRepo struct {
	db *sql.DB
}

func NewPaperLabelRepo(db *sql.DB) *PaperLabelRepo {
	return &PaperLabelRepo{db: db}
}

// Replace swaps the full label set of a paper.
func (r *PaperLabelRepo) Replace(ctx context.Context, paperID string, labelIDs []string) error {
	where := map[string]interface{}{"paper_id": paperID}
	sqlStr, args, err := builder.BuildDelete("paper_labels", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}
	if len(labelIDs) == 0 {
		return nil
	}
	data := make([]map[string]interface{}, 0, len(labelIDs))
	for _, labelID := range labelIDs {
		data = append(data, map[string]interface{}{
			"paper_id": paperID,
			"label_id": labelID,
		})
	}
	sqlStr, args, err = builder.BuildInsert("paper_labels", data)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *PaperLabelRepo) ListLabelIDs(ctx context.Context, paperID string) ([]string, error) {
	where := map[string]interface{}{"paper_id": paperID}
	sqlStr, args, err := builder.BuildSelect("paper_labels", where, []string{"label_id"})
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

// ListByPaperIDs loads label rows for a batch of papers in one query.
func (r *PaperLabelRepo) ListByPaperIDs(ctx context.Context, paperIDs []string) (map[string][]model.Label, error) {
	result := make(map[string][]model.Label)
	if len(paperIDs) == 0 {
		return result, nil
	}
	sqlStr := `
		SELECT pl.paper_id, l.id, l.user_id, l.name, l.color, l.ctime
		FROM paper_labels pl
		JOIN labels l ON l.id = pl.label_id
		WHERE pl.paper_id IN (` + strings.TrimSuffix(strings.Repeat("?,", len(paperIDs)), ",") + `)
	`
	args := make([]interface{}, 0, len(paperIDs))
	for _, id := range paperIDs {
		args = append(args, id)
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var paperID string
		var label model.Label
		if err := rows.Scan(&paperID, &label.ID, &label.UserID, &label.Name, &label.Color, &label.Ctime); err != nil {
			return nil, err
		}
		result[paperID] = append(result[paperID], label)
	}
	return result, rows.Err()
}
