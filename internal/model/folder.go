package model

type Folder struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	PaperCount int    `json:"paper_count"`
	Ctime      int64  `json:"ctime"`
	Mtime      int64  `json:"mtime"`
}
