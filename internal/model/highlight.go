package model

type Highlight struct {
	ID      string `json:"id"`
	PaperID string `json:"paper_id"`
	UserID  string `json:"user_id"`
	Page    int    `json:"page"`
	Content string `json:"content"`
	Color   string `json:"color"`
	Comment string `json:"comment"`
	Ctime   int64  `json:"ctime"`
}
