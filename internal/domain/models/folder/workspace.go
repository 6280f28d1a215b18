package folder

// Workspace is the root of a view tree
type Workspace struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ChildViews []string `json:"child_views"` // ordered top-level view ids, trashed ones included
	CreatedAt  int64    `json:"created_at"`
	CreatedBy  *int64   `json:"created_by,omitempty"`
}

// Clone returns a deep copy of the workspace
func (w *Workspace) Clone() *Workspace {
	if w == nil {
		return nil
	}
	c := *w
	c.ChildViews = append([]string(nil), w.ChildViews...)
	if w.CreatedBy != nil {
		id := *w.CreatedBy
		c.CreatedBy = &id
	}
	return &c
}

// WorkspaceWithViews is a workspace with its visible top-level views
type WorkspaceWithViews struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Views     []*ViewWithChildren `json:"views"`
	CreatedAt int64               `json:"create_time"`
}

// WorkspaceSetting reports the current workspace and the view the user has open
type WorkspaceSetting struct {
	WorkspaceID string            `json:"workspace_id"`
	LatestView  *ViewWithChildren `json:"latest_view,omitempty"`
}
