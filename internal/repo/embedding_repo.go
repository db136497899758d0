package repo

import (
	"context"
	"database/sql"

	"github.com/pgvector/pgvector-go"

	"github.com/paperly/paperly/internal/model"
)

type EmbeddingRepo struct {
	db *sql.DB
}

func NewEmbeddingRepo(db *sql.DB) *EmbeddingRepo {
	return &EmbeddingRepo{db: db}
}

func (r *EmbeddingRepo) Upsert(ctx context.Context, emb *model.PaperEmbedding) error {
	const query = `
		INSERT INTO paper_embeddings (paper_id, user_id, embedding, content_hash, mtime)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (paper_id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			content_hash = EXCLUDED.content_hash,
			mtime = EXCLUDED.mtime
	`
	_, err := r.db.ExecContext(ctx, query,
		emb.PaperID,
		emb.UserID,
		pgvector.NewVector(emb.Embedding),
		emb.ContentHash,
		emb.Mtime,
	)
	return err
}

func (r *EmbeddingRepo) GetHash(ctx context.Context, paperID string) (string, bool, error) {
	const query = `SELECT content_hash FROM paper_embeddings WHERE paper_id = $1`
	var hash string
	if err := r.db.QueryRowContext(ctx, query, paperID).Scan(&hash); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return hash, true, nil
}

func (r *EmbeddingRepo) Delete(ctx context.Context, paperID string) error {
	const query = `DELETE FROM paper_embeddings WHERE paper_id = $1`
	_, err := r.db.ExecContext(ctx, query, paperID)
	return err
}

type Neighbor struct {
	PaperID string
	Score   float32
}

// Nearest returns the user's closest papers to the query vector by cosine
// distance, excluding the source paper itself.
func (r *EmbeddingRepo) Nearest(ctx context.Context, userID string, query []float32, excludeID string, limit int) ([]Neighbor, error) {
	const sqlStr = `
		SELECT paper_id, 1 - (embedding <=> $1) AS score
		FROM paper_embeddings
		WHERE user_id = $2 AND paper_id <> $3
		ORDER BY embedding <=> $1
		LIMIT $4
	`
	rows, err := r.db.QueryContext(ctx, sqlStr, pgvector.NewVector(query), userID, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Neighbor, 0, limit)
	for rows.Next() {
		var n Neighbor
		if err := rows.Scan(&n.PaperID, &n.Score); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// ListStale returns papers whose abstract changed since their embedding was
// last computed (or that have no embedding yet).
func (r *EmbeddingRepo) ListStale(ctx context.Context, limit int) ([]model.Paper, error) {
	const query = `
		SELECT p.id, p.user_id, p.title, p.abstract, md5(p.title || p.abstract) AS hash
		FROM papers p
		LEFT JOIN paper_embeddings e ON e.paper_id = p.id
		WHERE p.abstract <> '' AND (e.paper_id IS NULL OR e.content_hash <> md5(p.title || p.abstract))
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Paper, 0)
	for rows.Next() {
		var paper model.Paper
		var hash string
		if err := rows.Scan(&paper.ID, &paper.UserID, &paper.Title, &paper.Abstract, &hash); err != nil {
			return nil, err
		}
		items = append(items, paper)
	}
	return items, rows.Err()
}
