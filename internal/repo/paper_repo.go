package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/didi/gendry/builder"

	"github.com/paperly/paperly/internal/model"
	"github.com/paperly/paperly/internal/pkg/dbutil"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
)

type PaperRepo struct {
	db *sql.DB
}

func NewPaperRepo(db *sql.DB) *PaperRepo {
	return &PaperRepo{db: db}
}

var paperFields = []string{
	"id", "user_id", "folder_id", "title", "authors", "abstract",
	"pdf_url", "source_url", "publication_date", "starred",
	"ai_summary", "ai_key_findings", "ai_gaps", "analyzed_at",
	"ctime", "mtime",
}

func marshalList(values []string) string {
	if values == nil {
		values = []string{}
	}
	blob, _ := json.Marshal(values)
	return string(blob)
}

func scanPaper(rows *sql.Rows) (*model.Paper, error) {
	var paper model.Paper
	var authors, findings, gaps string
	if err := rows.Scan(
		&paper.ID, &paper.UserID, &paper.FolderID, &paper.Title, &authors, &paper.Abstract,
		&paper.PDFURL, &paper.SourceURL, &paper.PublicationDate, &paper.Starred,
		&paper.AISummary, &findings, &gaps, &paper.AnalyzedAt,
		&paper.Ctime, &paper.Mtime,
	); err != nil {
		return nil, err
	}
	_ = json.Unmarshal([]byte(authors), &paper.Authors)
	_ = json.Unmarshal([]byte(findings), &paper.AIKeyFindings)
	_ = json.Unmarshal([]byte(gaps), &paper.AIGaps)
	return &paper, nil
}

func (r *PaperRepo) Create(ctx context.Context, paper *model.Paper) error {
	data := map[string]interface{}{
		"id":               paper.ID,
		"user_id":          paper.UserID,
		"folder_id":        paper.FolderID,
		"title":            paper.Title,
		"authors":          marshalList(paper.Authors),
		"abstract":         paper.Abstract,
		"pdf_url":          paper.PDFURL,
		"source_url":       paper.SourceURL,
		"publication_date": paper.PublicationDate,
		"starred":          paper.Starred,
		"ai_summary":       paper.AISummary,
		"ai_key_findings":  marshalList(paper.AIKeyFindings),
		"ai_gaps":          marshalList(paper.AIGaps),
		"analyzed_at":      paper.AnalyzedAt,
		"ctime":            paper.Ctime,
		"mtime":            paper.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("papers", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *PaperRepo) Update(ctx context.Context, paper *model.Paper) error {
	where := map[string]interface{}{"id": paper.ID, "user_id": paper.UserID}
	update := map[string]interface{}{
		"title":            paper.Title,
		"authors":          marshalList(paper.Authors),
		"abstract":         paper.Abstract,
		"pdf_url":          paper.PDFURL,
		"source_url":       paper.SourceURL,
		"publication_date": paper.PublicationDate,
		"mtime":            paper.Mtime,
	}
	return r.update(ctx, where, update)
}

func (r *PaperRepo) UpdateStarred(ctx context.Context, userID, paperID string, starred int, mtime int64) error {
	where := map[string]interface{}{"id": paperID, "user_id": userID}
	update := map[string]interface{}{"starred": starred, "mtime": mtime}
	return r.update(ctx, where, update)
}

func (r *PaperRepo) UpdateFolder(ctx context.Context, userID, paperID, folderID string, mtime int64) error {
	where := map[string]interface{}{"id": paperID, "user_id": userID}
	update := map[string]interface{}{"folder_id": folderID, "mtime": mtime}
	return r.update(ctx, where, update)
}

func (r *PaperRepo) UpdateAnalysis(ctx context.Context, userID, paperID, summary string, findings, gaps []string, analyzedAt int64) error {
	where := map[string]interface{}{"id": paperID, "user_id": userID}
	update := map[string]interface{}{
		"ai_summary":      summary,
		"ai_key_findings": marshalList(findings),
		"ai_gaps":         marshalList(gaps),
		"analyzed_at":     analyzedAt,
		"mtime":           analyzedAt,
	}
	return r.update(ctx, where, update)
}

func (r *PaperRepo) update(ctx context.Context, where, update map[string]interface{}) error {
	sqlStr, args, err := builder.BuildUpdate("papers", where, update)
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

func (r *PaperRepo) Delete(ctx context.Context, userID, paperID string) error {
	where := map[string]interface{}{"id": paperID, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("papers", where)
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

func (r *PaperRepo) GetByID(ctx context.Context, userID, paperID string) (*model.Paper, error) {
	where := map[string]interface{}{"id": paperID, "user_id": userID}
	sqlStr, args, err := builder.BuildSelect("papers", where, paperFields)
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
	return scanPaper(rows)
}

func (r *PaperRepo) List(ctx context.Context, userID string) ([]model.Paper, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime desc",
	}
	return r.list(ctx, where)
}

// SearchLike matches query against title, abstract and the serialized author
// list, case-insensitively, newest first.
func (r *PaperRepo) SearchLike(ctx context.Context, userID, query string) ([]model.Paper, error) {
	sqlStr := `
		SELECT id, user_id, folder_id, title, authors, abstract,
		       pdf_url, source_url, publication_date, starred,
		       ai_summary, ai_key_findings, ai_gaps, analyzed_at,
		       ctime, mtime
		FROM papers
		WHERE user_id = ? AND (title ILIKE ? OR abstract ILIKE ? OR authors ILIKE ?)
		ORDER BY ctime DESC
	`
	like := "%" + query + "%"
	args := []interface{}{userID, like, like, like}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPapers(rows)
}

func (r *PaperRepo) ListByFolder(ctx context.Context, userID, folderID string) ([]model.Paper, error) {
	where := map[string]interface{}{
		"user_id":   userID,
		"folder_id": folderID,
		"_orderby":  "ctime desc",
	}
	return r.list(ctx, where)
}

func (r *PaperRepo) ListStarred(ctx context.Context, userID string) ([]model.Paper, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"starred":  1,
		"_orderby": "ctime desc",
	}
	return r.list(ctx, where)
}

// ListByIDs resolves papers by id without a user filter; used for shared
// folder snapshots, which are readable by anyone holding the link.
func (r *PaperRepo) ListByIDs(ctx context.Context, paperIDs []string) ([]model.Paper, error) {
	if len(paperIDs) == 0 {
		return []model.Paper{}, nil
	}
	where := map[string]interface{}{
		"id in":    paperIDs,
		"_orderby": "ctime desc",
	}
	return r.list(ctx, where)
}

func (r *PaperRepo) list(ctx context.Context, where map[string]interface{}) ([]model.Paper, error) {
	sqlStr, args, err := builder.BuildSelect("papers", where, paperFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPapers(rows)
}

func collectPapers(rows *sql.Rows) ([]model.Paper, error) {
	items := make([]model.Paper, 0)
	for rows.Next() {
		paper, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *paper)
	}
	return items, rows.Err()
}
