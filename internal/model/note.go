package model

type Note struct {
	ID      string `json:"id"`
	PaperID string `json:"paper_id"`
	UserID  string `json:"user_id"`
	Content string `json:"content"`
	Ctime   int64  `json:"ctime"`
	Mtime   int64  `json:"mtime"`
}
