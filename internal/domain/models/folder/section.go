package folder

// Section names the view-id lists kept by a folder
type Section string

const (
	SectionFavorite Section = "favorite"
	SectionRecent   Section = "recent"
	SectionTrash    Section = "trash"
)

// SectionItem is a view reference in a section
type SectionItem struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
}

// TrashInfo describes a trashed view
type TrashInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// FavoritesPayload is carried by DidFavoriteView / DidUnfavoriteView notifications:
// the views whose membership changed and the full visible favorites section
type FavoritesPayload struct {
	Items     []*View       `json:"items"`
	Favorites []SectionItem `json:"favorites"`
}
