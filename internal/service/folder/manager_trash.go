package folder

import (
	"context"

	models "folio/internal/domain/models/folder"
)

// MoveViewToTrash moves a view and everything below it to the trash. The view
// and all its descendants are unfavorited before the trash insertion.
func (m *Manager) MoveViewToTrash(ctx context.Context, viewID string) error {
	var (
		parentID    string
		unfavorited []*models.View
		favorites   []models.SectionItem
		trash       []models.TrashInfo
	)
	err := m.mutate(ctx, func(f *Folder) error {
		view := f.GetView(viewID)
		if view == nil {
			return viewNotFound(viewID)
		}
		parentID = view.ParentViewID

		closure := append([]string{viewID}, f.Descendants(viewID)...)
		unfavorited = f.unfavoriteSubtree(viewID)
		f.AddTrash([]string{viewID})
		for _, id := range closure {
			if f.CurrentView() == id {
				f.SetCurrentView("")
			}
		}

		favorites = visibleSectionItems(f, f.GetAllFavorites(), f.TrashedSet())
		trash = f.GetAllTrash()
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info("view moved to trash", "view_id", viewID, "unfavorited", len(unfavorited))

	if len(unfavorited) > 0 {
		m.notifyFavorites(models.DidUnfavoriteView, unfavorited, favorites)
	}
	m.send(viewID, models.DidMoveViewToTrash, models.DeletedView{ViewID: viewID})
	m.send(parentID, models.DidUpdateChildViews, models.ChildViewUpdate{
		ParentViewID:     parentID,
		CreateChildViews: []*models.View{},
		DeleteChildViews: []string{viewID},
		UpdateChildViews: []*models.View{},
	})
	m.notifyTrash(trash)
	return nil
}

// GetAllTrash describes every trashed view
func (m *Manager) GetAllTrash(ctx context.Context) ([]models.TrashInfo, error) {
	var trash []models.TrashInfo
	err := m.read(func(f *Folder) error {
		trash = f.GetAllTrash()
		return nil
	})
	return trash, err
}

// RestoreAllTrash puts every trashed view back at its original position
func (m *Manager) RestoreAllTrash(ctx context.Context) error {
	var parents []string
	err := m.mutate(ctx, func(f *Folder) error {
		for _, info := range f.GetAllTrash() {
			if v := f.GetView(info.ID); v != nil {
				parents = append(parents, v.ParentViewID)
			}
		}
		f.RemoveAllTrash()
		return nil
	})
	if err != nil {
		return err
	}

	m.notifyTrash(nil)
	m.NotifyParentViewChanged(ctx, uniqueIDs(parents...)...)
	return nil
}

// RestoreTrash puts one trashed view back at its original position
func (m *Manager) RestoreTrash(ctx context.Context, viewID string) error {
	var (
		parentID string
		trash    []models.TrashInfo
	)
	err := m.mutate(ctx, func(f *Folder) error {
		if v := f.GetView(viewID); v != nil {
			parentID = v.ParentViewID
		}
		f.DeleteTrash([]string{viewID})
		trash = f.GetAllTrash()
		return nil
	})
	if err != nil {
		return err
	}

	m.notifyTrash(trash)
	m.NotifyParentViewChanged(ctx, parentID)
	return nil
}

// DeleteAllTrash permanently deletes every trashed view. Failures of single
// views are logged and skipped.
func (m *Manager) DeleteAllTrash(ctx context.Context) error {
	var ids []string
	if err := m.read(func(f *Folder) error {
		for _, info := range f.GetAllTrash() {
			ids = append(ids, info.ID)
		}
		return nil
	}); err != nil {
		return err
	}

	for _, id := range ids {
		if err := m.deleteTrash(ctx, id); err != nil {
			m.logger.Warn("failed to delete trashed view", "view_id", id, "error", err)
		}
	}

	m.notifyTrash(nil)
	return nil
}

// DeleteTrash permanently deletes a trashed view and everything below it
func (m *Manager) DeleteTrash(ctx context.Context, viewID string) error {
	deleteErr := m.deleteTrash(ctx, viewID)

	var trash []models.TrashInfo
	if err := m.read(func(f *Folder) error {
		trash = f.GetAllTrash()
		return nil
	}); err != nil {
		return err
	}
	m.notifyTrash(trash)
	return deleteErr
}

// deleteTrash removes the id from the trash, then deletes the view subtree
// from the folder and lets the layout handlers release the payloads. The trash
// removal happens even when the view no longer exists.
func (m *Manager) deleteTrash(ctx context.Context, viewID string) error {
	var deleted []*models.View
	err := m.mutate(ctx, func(f *Folder) error {
		f.DeleteTrash([]string{viewID})
		deleted = f.DeleteViews([]string{viewID})
		return nil
	})
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		return viewNotFound(viewID)
	}

	for _, view := range deleted {
		handler, err := m.handlers.Get(view.Layout)
		if err != nil {
			m.logger.Warn("no handler for deleted view", "view_id", view.ID, "layout", view.Layout)
			continue
		}
		if err := handler.DeleteView(ctx, view.ID); err != nil {
			m.logger.Error("failed to delete view payload", "view_id", view.ID, "error", err)
		}
	}

	m.logger.Info("view deleted", "view_id", viewID, "deleted", len(deleted))
	return nil
}
