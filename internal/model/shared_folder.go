package model

// SharedFolder is a membership snapshot: PaperIDs is fixed at share time and
// never refreshed when the source folder changes.
type SharedFolder struct {
	ID        string   `json:"id"`
	OwnerID   string   `json:"owner_id"`
	Name      string   `json:"name"`
	ShareLink string   `json:"share_link"`
	PaperIDs  []string `json:"paper_ids,omitempty"`
	Ctime     int64    `json:"ctime"`
}
