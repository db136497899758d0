package model

type Paper struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	FolderID        string   `json:"folder_id,omitempty"`
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Abstract        string   `json:"abstract"`
	PDFURL          string   `json:"pdf_url"`
	SourceURL       string   `json:"source_url"`
	PublicationDate string   `json:"publication_date"`
	Starred         int      `json:"starred"`
	AISummary       string   `json:"ai_summary"`
	AIKeyFindings   []string `json:"ai_key_findings"`
	AIGaps          []string `json:"ai_gaps"`
	AnalyzedAt      int64    `json:"analyzed_at"`
	Labels          []Label  `json:"labels,omitempty"`
	Ctime           int64    `json:"ctime"`
	Mtime           int64    `json:"mtime"`
}
