package folder

import (
	"context"
	"slices"

	models "folio/internal/domain/models/folder"
)

func (m *Manager) send(id string, kind models.NotificationKind, payload interface{}) {
	m.notifier.Notify(models.Notification{ID: id, Kind: kind, Payload: payload})
}

// NotifyParentViewChanged broadcasts the visible children of each parent. A
// workspace parent gets DidUpdateWorkspaceViews, a view parent DidUpdateView.
func (m *Manager) NotifyParentViewChanged(ctx context.Context, parentIDs ...string) {
	type parentUpdate struct {
		id          string
		isWorkspace bool
		views       []*models.View
		view        *models.ViewWithChildren
	}

	var updates []parentUpdate
	seen := make(map[string]bool, len(parentIDs))
	_ = m.read(func(f *Folder) error {
		trashed := f.TrashedSet()
		for _, id := range parentIDs {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			if id == f.WorkspaceID() {
				updates = append(updates, parentUpdate{
					id:          id,
					isWorkspace: true,
					views:       visibleChildren(f, id, trashed),
				})
				continue
			}
			if view := viewWithChildren(f, id, trashed); view != nil {
				updates = append(updates, parentUpdate{id: id, view: view})
			}
		}
		return nil
	})

	for _, u := range updates {
		if u.isWorkspace {
			m.send(u.id, models.DidUpdateWorkspaceViews, u.views)
		} else {
			m.send(u.id, models.DidUpdateView, u.view)
		}
	}
}

func (m *Manager) notifyTrash(trash []models.TrashInfo) {
	if trash == nil {
		trash = []models.TrashInfo{}
	}
	m.send(models.TrashObjectID, models.DidUpdateTrash, trash)
}

func (m *Manager) notifyRecent(ids []string) {
	m.send(models.RecentObjectID, models.DidUpdateRecentViews, models.RepeatedViewID{Items: ids})
}

func (m *Manager) notifyFavorites(kind models.NotificationKind, views []*models.View, favorites []models.SectionItem) {
	m.send(models.FavoriteObjectID, kind, models.FavoritesPayload{
		Items:     views,
		Favorites: favorites,
	})
}

func uniqueIDs(ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
