package folder

// NotificationKind names a change event sent to the presentation layer
type NotificationKind string

const (
	DidCreateWorkspace        NotificationKind = "did_create_workspace"
	DidUpdateWorkspaceViews   NotificationKind = "did_update_workspace_views"
	DidUpdateWorkspaceSetting NotificationKind = "did_update_workspace_setting"
	DidUpdateView             NotificationKind = "did_update_view"
	DidUpdateChildViews       NotificationKind = "did_update_child_views"
	DidMoveViewToTrash        NotificationKind = "did_move_view_to_trash"
	DidFavoriteView           NotificationKind = "did_favorite_view"
	DidUnfavoriteView         NotificationKind = "did_unfavorite_view"
	DidUpdateRecentViews      NotificationKind = "did_update_recent_views"
	DidUpdateTrash            NotificationKind = "did_update_trash"
)

// Notification object ids for section-wide events
const (
	FavoriteObjectID = "favorite"
	RecentObjectID   = "recent_views"
	TrashObjectID    = "trash"
)

// Notification is a single change event. ID is the object the event is about
// (a view id, a workspace id, or one of the section object ids).
type Notification struct {
	ID      string           `json:"id"`
	Kind    NotificationKind `json:"kind"`
	Payload interface{}      `json:"payload"`
}

// RepeatedViewID is the payload of section-id broadcasts
type RepeatedViewID struct {
	Items []string `json:"items"`
}
