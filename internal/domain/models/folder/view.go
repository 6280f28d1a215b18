package folder

// ViewLayout is the kind of payload a view holds
type ViewLayout string

const (
	LayoutDocument ViewLayout = "document"
	LayoutGrid     ViewLayout = "grid"
	LayoutBoard    ViewLayout = "board"
	LayoutCalendar ViewLayout = "calendar"
	LayoutChat     ViewLayout = "chat"
)

// IsDatabase reports whether the layout is backed by a database payload
func (l ViewLayout) IsDatabase() bool {
	switch l {
	case LayoutGrid, LayoutBoard, LayoutCalendar:
		return true
	}
	return false
}

// Valid reports whether the layout is one of the known layouts
func (l ViewLayout) Valid() bool {
	switch l {
	case LayoutDocument, LayoutGrid, LayoutBoard, LayoutCalendar, LayoutChat:
		return true
	}
	return false
}

// IconType is the kind of value stored in a ViewIcon
type IconType string

const (
	IconEmoji IconType = "emoji"
	IconURL   IconType = "url"
	IconIcon  IconType = "icon"
)

// ViewIcon is the optional icon displayed next to a view name
type ViewIcon struct {
	Type  IconType `json:"ty" yaml:"ty"`
	Value string   `json:"value" yaml:"value"`
}

// View is a node of the workspace tree (document, grid, board, ...)
type View struct {
	ID             string     `json:"id"`
	ParentViewID   string     `json:"parent_view_id"`
	Name           string     `json:"name"`
	Desc           string     `json:"desc"`
	Children       []string   `json:"children"` // ordered child view ids, trashed ones included
	CreatedAt      int64      `json:"created_at"`
	Layout         ViewLayout `json:"layout"`
	Icon           *ViewIcon  `json:"icon,omitempty"`
	IsFavorite     bool       `json:"is_favorite"`
	CreatedBy      *int64     `json:"created_by,omitempty"`
	LastEditedTime int64      `json:"last_edited_time"`
	LastEditedBy   *int64     `json:"last_edited_by,omitempty"`
}

// Clone returns a deep copy so callers never share state with the folder tree
func (v *View) Clone() *View {
	if v == nil {
		return nil
	}
	c := *v
	c.Children = append([]string(nil), v.Children...)
	if v.Icon != nil {
		icon := *v.Icon
		c.Icon = &icon
	}
	if v.CreatedBy != nil {
		id := *v.CreatedBy
		c.CreatedBy = &id
	}
	if v.LastEditedBy != nil {
		id := *v.LastEditedBy
		c.LastEditedBy = &id
	}
	return &c
}

// ViewWithChildren is a view plus its first level of (non-trashed) child views
type ViewWithChildren struct {
	*View
	ChildViews []*View `json:"child_views"`
}

// ViewUpdate collects the description-level changes applied by an update function.
// Nil fields are left untouched.
type ViewUpdate struct {
	Name       *string
	Desc       *string
	Layout     *ViewLayout
	IsFavorite *bool
	Icon       *ViewIcon
	ClearIcon  bool
}

// SetName sets the name when non-nil
func (u *ViewUpdate) SetName(name *string) *ViewUpdate {
	if name != nil {
		u.Name = name
	}
	return u
}

// SetDesc sets the description when non-nil
func (u *ViewUpdate) SetDesc(desc *string) *ViewUpdate {
	if desc != nil {
		u.Desc = desc
	}
	return u
}

// SetLayout sets the layout when non-nil
func (u *ViewUpdate) SetLayout(layout *ViewLayout) *ViewUpdate {
	if layout != nil {
		u.Layout = layout
	}
	return u
}

// SetFavorite sets the favorite flag when non-nil
func (u *ViewUpdate) SetFavorite(isFavorite *bool) *ViewUpdate {
	if isFavorite != nil {
		u.IsFavorite = isFavorite
	}
	return u
}

// SetIcon replaces the icon; a nil icon removes it
func (u *ViewUpdate) SetIcon(icon *ViewIcon) *ViewUpdate {
	u.Icon = icon
	u.ClearIcon = icon == nil
	return u
}

// IsEmpty reports whether the update changes nothing
func (u *ViewUpdate) IsEmpty() bool {
	return u.Name == nil && u.Desc == nil && u.Layout == nil && u.IsFavorite == nil &&
		u.Icon == nil && !u.ClearIcon
}

// ViewRelation is the uniform parent/sibling shape of a view, whether its parent
// is the workspace root or another view
type ViewRelation struct {
	IsWorkspace bool     `json:"is_workspace"`
	ParentID    string   `json:"parent_id"`
	ChildIDs    []string `json:"child_ids"`
}

// DeletedView is the payload of a DidMoveViewToTrash notification
type DeletedView struct {
	ViewID string `json:"view_id"`
	Index  *int   `json:"index,omitempty"`
}

// ChildViewUpdate is the payload of a DidUpdateChildViews notification
type ChildViewUpdate struct {
	ParentViewID     string   `json:"parent_view_id"`
	CreateChildViews []*View  `json:"create_child_views"`
	DeleteChildViews []string `json:"delete_child_views"`
	UpdateChildViews []*View  `json:"update_child_views"`
}

// ParentChildViews is a view with its nested children, used for bulk inserts
type ParentChildViews struct {
	ParentView *View              `json:"parent_view"`
	ChildViews []ParentChildViews `json:"child_views"`
}
