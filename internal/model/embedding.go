package model

type PaperEmbedding struct {
	PaperID     string    `json:"paper_id"`
	UserID      string    `json:"user_id"`
	Embedding   []float32 `json:"-"`
	ContentHash string    `json:"content_hash"`
	Mtime       int64     `json:"mtime"`
}
