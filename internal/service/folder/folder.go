package folder

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"time"

	"folio/internal/config"
	"folio/internal/domain"
	models "folio/internal/domain/models/folder"
)

// Folder is the in-memory view tree of one workspace plus its sections.
// It is not safe for concurrent use; MutexFolder guards it.
type Folder struct {
	uid         int64
	workspace   *models.Workspace
	views       map[string]*models.View
	favorites   []models.SectionItem
	recent      []models.SectionItem
	trash       []models.SectionItem
	currentView string
}

// NewFolder builds a folder from its serializable data
func NewFolder(uid int64, data *models.FolderData) (*Folder, error) {
	if data == nil || data.Workspace == nil || data.Workspace.ID == "" {
		return nil, &domain.ValidationError{Message: "folder data has no workspace"}
	}

	f := &Folder{
		uid:         uid,
		workspace:   data.Workspace.Clone(),
		views:       make(map[string]*models.View, len(data.Views)),
		favorites:   slices.Clone(data.Favorites),
		recent:      slices.Clone(data.Recent),
		trash:       slices.Clone(data.Trash),
		currentView: data.CurrentView,
	}
	for _, v := range data.Views {
		if v == nil || v.ID == "" {
			continue
		}
		f.views[v.ID] = v.Clone()
	}
	return f, nil
}

// DecodeFolder builds a folder from an encoded doc state
func DecodeFolder(uid int64, state []byte) (*Folder, error) {
	if len(state) == 0 {
		return nil, &domain.ValidationError{Message: "empty folder doc state"}
	}
	var data models.FolderData
	if err := json.Unmarshal(state, &data); err != nil {
		return nil, fmt.Errorf("decode folder doc state: %w", err)
	}
	return NewFolder(uid, &data)
}

// Encode serializes the folder into a doc state
func (f *Folder) Encode() ([]byte, error) {
	state, err := json.Marshal(f.Data())
	if err != nil {
		return nil, fmt.Errorf("encode folder doc state: %w", err)
	}
	return state, nil
}

// Data returns a deep copy of the folder's serializable state
func (f *Folder) Data() *models.FolderData {
	views := make([]*models.View, 0, len(f.views))
	for _, v := range f.views {
		views = append(views, v.Clone())
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })

	return &models.FolderData{
		Workspace:   f.workspace.Clone(),
		Views:       views,
		Favorites:   slices.Clone(f.favorites),
		Recent:      slices.Clone(f.recent),
		Trash:       slices.Clone(f.trash),
		CurrentView: f.currentView,
	}
}

// WorkspaceID returns the id of the folder's workspace
func (f *Folder) WorkspaceID() string {
	return f.workspace.ID
}

// CurrentWorkspace returns a copy of the folder's workspace
func (f *Folder) CurrentWorkspace() *models.Workspace {
	return f.workspace.Clone()
}

// GetView returns a copy of the view, or nil
func (f *Folder) GetView(id string) *models.View {
	return f.views[id].Clone()
}

// children returns a pointer to the ordered child list of a parent, which is
// either the workspace or a view
func (f *Folder) children(parentID string) (*[]string, bool) {
	if parentID == f.workspace.ID {
		return &f.workspace.ChildViews, true
	}
	if parent, ok := f.views[parentID]; ok {
		return &parent.Children, true
	}
	return nil, false
}

// GetViewsBelongTo returns the child views of parentID in storage order
func (f *Folder) GetViewsBelongTo(parentID string) []*models.View {
	ids, ok := f.children(parentID)
	if !ok {
		return []*models.View{}
	}
	views := make([]*models.View, 0, len(*ids))
	for _, id := range *ids {
		if v, ok := f.views[id]; ok {
			views = append(views, v.Clone())
		}
	}
	return views
}

// GetWorkspaceViews returns the top-level views in storage order
func (f *Folder) GetWorkspaceViews() []*models.View {
	return f.GetViewsBelongTo(f.workspace.ID)
}

// InsertView adds the view under its parent at index (appended when nil or out
// of range). A view whose parent is unknown is kept as an orphan.
func (f *Folder) InsertView(view *models.View, index *int) {
	if existing, ok := f.views[view.ID]; ok {
		f.detach(existing)
	}

	v := view.Clone()
	if v.Children == nil {
		v.Children = []string{}
	}
	f.views[v.ID] = v

	if ids, ok := f.children(v.ParentViewID); ok && v.ParentViewID != v.ID {
		*ids = insertAt(*ids, v.ID, index)
	}
	if v.IsFavorite {
		f.favorites = addSectionItems(f.favorites, []string{v.ID})
	}
}

// InsertParentChildViews inserts a view and its nested children
func (f *Folder) InsertParentChildViews(views models.ParentChildViews) {
	if views.ParentView == nil {
		return
	}
	f.InsertView(views.ParentView, nil)
	for _, child := range views.ChildViews {
		f.InsertParentChildViews(child)
	}
}

// UpdateView applies the update built by fn and returns the updated view.
// Returns nil if the view does not exist.
func (f *Folder) UpdateView(id string, fn func(update *models.ViewUpdate)) *models.View {
	v, ok := f.views[id]
	if !ok {
		return nil
	}

	update := &models.ViewUpdate{}
	fn(update)
	if update.IsEmpty() {
		return v.Clone()
	}

	if update.Name != nil {
		v.Name = *update.Name
	}
	if update.Desc != nil {
		v.Desc = *update.Desc
	}
	if update.Layout != nil {
		v.Layout = *update.Layout
	}
	if update.Icon != nil {
		icon := *update.Icon
		v.Icon = &icon
	} else if update.ClearIcon {
		v.Icon = nil
	}
	if update.IsFavorite != nil {
		if *update.IsFavorite {
			f.AddFavorites([]string{id})
		} else {
			f.DeleteFavorites([]string{id})
		}
	}

	v.LastEditedTime = time.Now().Unix()
	uid := f.uid
	v.LastEditedBy = &uid
	return v.Clone()
}

// Descendants returns the ids of every view below id, depth first
func (f *Folder) Descendants(id string) []string {
	var out []string
	visited := map[string]bool{id: true}
	var walk func(parentID string)
	walk = func(parentID string) {
		parent, ok := f.views[parentID]
		if !ok {
			return
		}
		for _, childID := range parent.Children {
			if visited[childID] {
				continue
			}
			visited[childID] = true
			if _, ok := f.views[childID]; !ok {
				continue
			}
			out = append(out, childID)
			walk(childID)
		}
	}
	walk(id)
	return out
}

// DeleteViews permanently removes the views and all their descendants from the
// tree and from every section. Returns the removed views.
func (f *Folder) DeleteViews(ids []string) []*models.View {
	var deleted []*models.View
	for _, id := range ids {
		if _, ok := f.views[id]; !ok {
			continue
		}
		closure := append([]string{id}, f.Descendants(id)...)
		for _, viewID := range closure {
			v, ok := f.views[viewID]
			if !ok {
				continue
			}
			f.detach(v)
			delete(f.views, viewID)
			deleted = append(deleted, v.Clone())
		}
		f.favorites = removeSectionItems(f.favorites, closure)
		f.recent = removeSectionItems(f.recent, closure)
		f.trash = removeSectionItems(f.trash, closure)
		if slices.Contains(closure, f.currentView) {
			f.currentView = ""
		}
	}
	return deleted
}

// detach removes the view from its parent's child list
func (f *Folder) detach(v *models.View) {
	if ids, ok := f.children(v.ParentViewID); ok {
		*ids = removeID(*ids, v.ID)
	}
}

// MoveView moves the child at storage index from to just before the child that
// held storage index to. Returns false when the indices do not match the view.
func (f *Folder) MoveView(id string, from, to int) bool {
	v, ok := f.views[id]
	if !ok {
		return false
	}
	ids, ok := f.children(v.ParentViewID)
	if !ok {
		return false
	}
	list := *ids
	if from < 0 || from >= len(list) || to < 0 || to > len(list) || list[from] != id {
		return false
	}
	if from == to {
		return true
	}

	list = slices.Delete(list, from, from+1)
	if from < to {
		to--
	}
	*ids = slices.Insert(list, min(to, len(list)), id)
	return true
}

// MoveNestedView moves the view under newParentID right after prevViewID, or to
// the first position when prevViewID is nil. Returns false when the parent or
// the previous sibling cannot be resolved.
func (f *Folder) MoveNestedView(id, newParentID string, prevViewID *string) (bool, error) {
	v, ok := f.views[id]
	if !ok {
		return false, nil
	}
	if newParentID == id || slices.Contains(f.Descendants(id), newParentID) {
		return false, &domain.ValidationError{Message: "cannot move view into itself or its descendants"}
	}
	target, ok := f.children(newParentID)
	if !ok {
		return false, nil
	}

	index := 0
	if prevViewID != nil {
		siblings := removeID(slices.Clone(*target), id)
		pos := slices.Index(siblings, *prevViewID)
		if pos < 0 {
			return false, nil
		}
		index = pos + 1
	}

	f.detach(v)
	// re-resolve: detaching may have shortened the target list
	target, _ = f.children(newParentID)
	*target = insertAt(*target, id, &index)
	v.ParentViewID = newParentID
	return true, nil
}

// Relation returns the parent and storage-ordered siblings of a view
func (f *Folder) Relation(id string) (*models.ViewRelation, bool) {
	v, ok := f.views[id]
	if !ok {
		return nil, false
	}
	if parent, ok := f.views[v.ParentViewID]; ok {
		return &models.ViewRelation{
			IsWorkspace: false,
			ParentID:    parent.ID,
			ChildIDs:    slices.Clone(parent.Children),
		}, true
	}
	return &models.ViewRelation{
		IsWorkspace: true,
		ParentID:    f.workspace.ID,
		ChildIDs:    slices.Clone(f.workspace.ChildViews),
	}, true
}

// TrashedSet returns the trashed view ids plus everything below them
func (f *Folder) TrashedSet() map[string]bool {
	set := make(map[string]bool, len(f.trash))
	for _, item := range f.trash {
		set[item.ID] = true
		for _, id := range f.Descendants(item.ID) {
			set[id] = true
		}
	}
	return set
}

// unfavoriteSubtree removes the view and its descendants from the favorites
// and returns the views that were favorited
func (f *Folder) unfavoriteSubtree(id string) []*models.View {
	var ids []string
	for _, viewID := range append([]string{id}, f.Descendants(id)...) {
		if v, ok := f.views[viewID]; ok && v.IsFavorite {
			ids = append(ids, viewID)
		}
	}
	f.DeleteFavorites(ids)

	views := make([]*models.View, 0, len(ids))
	for _, viewID := range ids {
		views = append(views, f.GetView(viewID))
	}
	return views
}

// AddFavorites marks the views as favorite and appends them to the section
func (f *Folder) AddFavorites(ids []string) {
	var existing []string
	for _, id := range ids {
		if v, ok := f.views[id]; ok {
			v.IsFavorite = true
			existing = append(existing, id)
		}
	}
	f.favorites = addSectionItems(f.favorites, existing)
}

// DeleteFavorites clears the favorite flag and removes the views from the section
func (f *Folder) DeleteFavorites(ids []string) {
	for _, id := range ids {
		if v, ok := f.views[id]; ok {
			v.IsFavorite = false
		}
	}
	f.favorites = removeSectionItems(f.favorites, ids)
}

// GetAllFavorites returns the favorites section
func (f *Folder) GetAllFavorites() []models.SectionItem {
	return slices.Clone(f.favorites)
}

// AddRecentViewIDs moves the ids to the most recent end of the recent section
func (f *Folder) AddRecentViewIDs(ids []string) {
	f.recent = removeSectionItems(f.recent, ids)
	f.recent = addSectionItems(f.recent, ids)
	if over := len(f.recent) - config.MaxRecentViews; over > 0 {
		f.recent = slices.Clone(f.recent[over:])
	}
}

// DeleteRecentViewIDs removes the ids from the recent section
func (f *Folder) DeleteRecentViewIDs(ids []string) {
	f.recent = removeSectionItems(f.recent, ids)
}

// GetAllRecentSections returns the recent section
func (f *Folder) GetAllRecentSections() []models.SectionItem {
	return slices.Clone(f.recent)
}

// AddTrash appends the ids to the trash section
func (f *Folder) AddTrash(ids []string) {
	f.trash = addSectionItems(f.trash, ids)
}

// DeleteTrash removes the ids from the trash section
func (f *Folder) DeleteTrash(ids []string) {
	f.trash = removeSectionItems(f.trash, ids)
}

// RemoveAllTrash empties the trash section
func (f *Folder) RemoveAllTrash() {
	f.trash = nil
}

// GetAllTrash describes every trashed view
func (f *Folder) GetAllTrash() []models.TrashInfo {
	infos := make([]models.TrashInfo, 0, len(f.trash))
	for _, item := range f.trash {
		info := models.TrashInfo{ID: item.ID, CreatedAt: item.Timestamp}
		if v, ok := f.views[item.ID]; ok {
			info.Name = v.Name
		}
		infos = append(infos, info)
	}
	return infos
}

// SetCurrentView records the view the user has open
func (f *Folder) SetCurrentView(id string) {
	f.currentView = id
}

// CurrentView returns the view the user has open, or ""
func (f *Folder) CurrentView() string {
	return f.currentView
}

func insertAt(list []string, id string, index *int) []string {
	if index == nil || *index < 0 || *index >= len(list) {
		return append(list, id)
	}
	return slices.Insert(list, *index, id)
}

func removeID(list []string, id string) []string {
	return slices.DeleteFunc(list, func(s string) bool { return s == id })
}

func addSectionItems(items []models.SectionItem, ids []string) []models.SectionItem {
	now := time.Now().Unix()
	for _, id := range ids {
		if slices.ContainsFunc(items, func(item models.SectionItem) bool { return item.ID == id }) {
			continue
		}
		items = append(items, models.SectionItem{ID: id, Timestamp: now})
	}
	return items
}

func removeSectionItems(items []models.SectionItem, ids []string) []models.SectionItem {
	if len(ids) == 0 {
		return items
	}
	return slices.DeleteFunc(items, func(item models.SectionItem) bool {
		return slices.Contains(ids, item.ID)
	})
}
