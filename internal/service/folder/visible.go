package folder

import (
	models "folio/internal/domain/models/folder"
)

// Read paths never expose trashed views or anything below them.

func visibleViews(views []*models.View, trashed map[string]bool) []*models.View {
	out := make([]*models.View, 0, len(views))
	for _, v := range views {
		if !trashed[v.ID] {
			out = append(out, v)
		}
	}
	return out
}

func visibleChildren(f *Folder, parentID string, trashed map[string]bool) []*models.View {
	return visibleViews(f.GetViewsBelongTo(parentID), trashed)
}

func visibleIDs(ids []string, trashed map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !trashed[id] {
			out = append(out, id)
		}
	}
	return out
}

// viewWithChildren returns the view with its first level of visible children,
// or nil when it is missing or trashed
func viewWithChildren(f *Folder, viewID string, trashed map[string]bool) *models.ViewWithChildren {
	if trashed[viewID] {
		return nil
	}
	view := f.GetView(viewID)
	if view == nil {
		return nil
	}
	return &models.ViewWithChildren{
		View:       view,
		ChildViews: visibleChildren(f, viewID, trashed),
	}
}

func visibleSectionItems(f *Folder, items []models.SectionItem, trashed map[string]bool) []models.SectionItem {
	out := make([]models.SectionItem, 0, len(items))
	for _, item := range items {
		if trashed[item.ID] || f.GetView(item.ID) == nil {
			continue
		}
		out = append(out, item)
	}
	return out
}

func sectionViews(f *Folder, items []models.SectionItem, trashed map[string]bool) []*models.View {
	views := make([]*models.View, 0, len(items))
	for _, item := range visibleSectionItems(f, items, trashed) {
		views = append(views, f.GetView(item.ID))
	}
	return views
}

func sectionIDs(items []models.SectionItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
