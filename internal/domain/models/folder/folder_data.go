package folder

// FolderData is the complete serializable state of a workspace folder.
// Its JSON encoding is the doc state exchanged with the cloud and the local store.
type FolderData struct {
	Workspace   *Workspace    `json:"workspace"`
	Views       []*View       `json:"views"`
	Favorites   []SectionItem `json:"favorites"`
	Recent      []SectionItem `json:"recent"`
	Trash       []SectionItem `json:"trash"`
	CurrentView string        `json:"current_view"`
}

// CollabType identifies the kind of replicated document requested from the cloud
type CollabType string

const (
	CollabTypeFolder CollabType = "folder"
)

// FolderSnapshot is a historical copy of a folder doc state
type FolderSnapshot struct {
	SnapshotID string `json:"snapshot_id"`
	Desc       string `json:"snapshot_desc"`
	CreatedAt  int64  `json:"created_at"`
	Data       []byte `json:"data"`
}
