package model

// Comment is immutable once created. The Author block is joined from the
// users table at read/create time; the broadcast hub forwards the value as-is.
type Comment struct {
	ID      string         `json:"id"`
	PaperID string         `json:"paper_id"`
	UserID  string         `json:"user_id"`
	Content string         `json:"content"`
	Author  *CommentAuthor `json:"author,omitempty"`
	Ctime   int64          `json:"ctime"`
}

type CommentAuthor struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}
