package folder

import (
	"context"

	models "folio/internal/domain/models/folder"
)

// ToggleFavorites flips the favorite state of a view. Exactly one notification
// is sent, carrying the view and the visible favorites section.
func (m *Manager) ToggleFavorites(ctx context.Context, viewID string) (*models.View, error) {
	var (
		view      *models.View
		kind      models.NotificationKind
		favorites []models.SectionItem
	)
	err := m.mutate(ctx, func(f *Folder) error {
		trashed := f.TrashedSet()
		current := f.GetView(viewID)
		if current == nil || trashed[viewID] {
			return viewNotFound(viewID)
		}

		if current.IsFavorite {
			f.DeleteFavorites([]string{viewID})
			kind = models.DidUnfavoriteView
		} else {
			f.AddFavorites([]string{viewID})
			kind = models.DidFavoriteView
		}
		view = f.GetView(viewID)
		favorites = visibleSectionItems(f, f.GetAllFavorites(), trashed)
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.notifyFavorites(kind, []*models.View{view}, favorites)
	return view, nil
}

// GetAllFavorites returns the visible favorite views in section order
func (m *Manager) GetAllFavorites(ctx context.Context) ([]*models.View, error) {
	var views []*models.View
	err := m.read(func(f *Folder) error {
		views = sectionViews(f, f.GetAllFavorites(), f.TrashedSet())
		return nil
	})
	return views, err
}

// GetAllRecentSections returns the visible recent views, oldest first
func (m *Manager) GetAllRecentSections(ctx context.Context) ([]*models.View, error) {
	var views []*models.View
	err := m.read(func(f *Folder) error {
		views = sectionViews(f, f.GetAllRecentSections(), f.TrashedSet())
		return nil
	})
	return views, err
}

// AddRecentViews moves the views to the most recent end of the recent section
func (m *Manager) AddRecentViews(ctx context.Context, viewIDs []string) error {
	return m.updateRecent(ctx, func(f *Folder) {
		f.AddRecentViewIDs(viewIDs)
	})
}

// RemoveRecentViews removes the views from the recent section
func (m *Manager) RemoveRecentViews(ctx context.Context, viewIDs []string) error {
	return m.updateRecent(ctx, func(f *Folder) {
		f.DeleteRecentViewIDs(viewIDs)
	})
}

func (m *Manager) updateRecent(ctx context.Context, fn func(f *Folder)) error {
	var recent []string
	err := m.mutate(ctx, func(f *Folder) error {
		fn(f)
		recent = sectionIDs(visibleSectionItems(f, f.GetAllRecentSections(), f.TrashedSet()))
		return nil
	})
	if err != nil {
		return err
	}

	m.notifyRecent(recent)
	return nil
}
