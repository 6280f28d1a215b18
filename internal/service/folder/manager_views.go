package folder

import (
	"context"
	"fmt"
	"slices"
	"time"

	"folio/internal/domain"
	models "folio/internal/domain/models/folder"
	folderSvc "folio/internal/domain/services/folder"

	"github.com/google/uuid"
)

// InsertParentChildViews inserts view trees built elsewhere (templates, imports)
func (m *Manager) InsertParentChildViews(ctx context.Context, views []models.ParentChildViews) error {
	return m.mutate(ctx, func(f *Folder) error {
		for _, tree := range views {
			f.InsertParentChildViews(tree)
		}
		return nil
	})
}

// CreateView creates the view payload through its layout handler and inserts
// the view. No notification is sent; callers use NotifyParentViewChanged.
func (m *Manager) CreateView(ctx context.Context, params *folderSvc.CreateViewParams) (*models.View, error) {
	return m.createView(ctx, params, nil)
}

func (m *Manager) createView(ctx context.Context, params *folderSvc.CreateViewParams, icon *models.ViewIcon) (*models.View, error) {
	if err := validateCreateViewParams(params); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	uid, err := m.uid()
	if err != nil {
		return nil, err
	}
	handler, err := m.handlers.Get(params.Layout)
	if err != nil {
		return nil, err
	}

	viewID := params.ViewID
	if viewID == "" {
		viewID = uuid.NewString()
	}
	parentID := params.ParentViewID
	if parentID == "" {
		parentID = m.WorkspaceID()
	}

	if len(params.InitialData) == 0 && len(params.Meta) == 0 {
		err = handler.CreateBuiltInView(ctx, uid, viewID, params.Name, params.Layout)
	} else {
		err = handler.CreateViewWithViewData(ctx, uid, viewID, params.Name, params.InitialData, params.Layout, params.Meta)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create view payload: %w", err)
	}

	view := newView(uid, viewID, parentID, params.Name, params.Desc, params.Layout)
	view.Icon = icon

	err = m.mutate(ctx, func(f *Folder) error {
		f.InsertView(view, params.Index)
		if params.SetAsCurrent {
			f.SetCurrentView(viewID)
			f.AddRecentViewIDs([]string{viewID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("view created", "view_id", viewID, "parent_view_id", parentID, "layout", params.Layout)
	return view, nil
}

// CreateOrphanView creates a view that is not attached to any parent. The
// built-in payload is created through the layout handler.
func (m *Manager) CreateOrphanView(ctx context.Context, params *folderSvc.CreateOrphanViewParams) (*models.View, error) {
	if err := validateCreateOrphanViewParams(params); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	uid, err := m.uid()
	if err != nil {
		return nil, err
	}
	handler, err := m.handlers.Get(params.Layout)
	if err != nil {
		return nil, err
	}

	viewID := params.ViewID
	if viewID == "" {
		viewID = uuid.NewString()
	}
	if err := handler.CreateBuiltInView(ctx, uid, viewID, params.Name, params.Layout); err != nil {
		return nil, fmt.Errorf("failed to create view payload: %w", err)
	}

	// an orphan is its own parent
	view := newView(uid, viewID, viewID, params.Name, "", params.Layout)
	if err := m.mutate(ctx, func(f *Folder) error {
		f.InsertView(view, nil)
		return nil
	}); err != nil {
		return nil, err
	}

	m.logger.Info("orphan view created", "view_id", viewID, "layout", params.Layout)
	return view, nil
}

func newView(uid int64, viewID, parentID, name, desc string, layout models.ViewLayout) *models.View {
	now := time.Now().Unix()
	createdBy, editedBy := uid, uid
	return &models.View{
		ID:             viewID,
		ParentViewID:   parentID,
		Name:           name,
		Desc:           desc,
		Children:       []string{},
		CreatedAt:      now,
		Layout:         layout,
		CreatedBy:      &createdBy,
		LastEditedTime: now,
		LastEditedBy:   &editedBy,
	}
}

// CloseView lets the layout handler release an open view
func (m *Manager) CloseView(ctx context.Context, viewID string) error {
	var view *models.View
	if err := m.read(func(f *Folder) error {
		view = f.GetView(viewID)
		return nil
	}); err != nil {
		return err
	}
	if view == nil {
		return viewNotFound(viewID)
	}

	handler, err := m.handlers.Get(view.Layout)
	if err != nil {
		return err
	}
	return handler.CloseView(ctx, viewID)
}

// GetView returns a visible view with its visible first-level children
func (m *Manager) GetView(ctx context.Context, viewID string) (*models.ViewWithChildren, error) {
	var view *models.ViewWithChildren
	err := m.read(func(f *Folder) error {
		trashed := f.TrashedSet()
		if trashed[viewID] {
			return &domain.NotFoundError{Message: fmt.Sprintf("view %s is in trash", viewID)}
		}
		view = viewWithChildren(f, viewID, trashed)
		if view == nil {
			return viewNotFound(viewID)
		}
		return nil
	})
	return view, err
}

// MoveView moves a view among its siblings. from and to are positions in the
// visible (trash-filtered) sibling list; they are translated to storage
// positions before the move. Positions that cannot be resolved are ignored.
func (m *Manager) MoveView(ctx context.Context, viewID string, from, to int) error {
	var (
		parentID string
		moved    bool
	)
	err := m.mutate(ctx, func(f *Folder) error {
		relation, ok := f.Relation(viewID)
		if !ok {
			return viewNotFound(viewID)
		}
		parentID = relation.ParentID

		display := visibleIDs(relation.ChildIDs, f.TrashedSet())
		if from < 0 || to < 0 || from >= len(display) || to >= len(display) {
			return nil
		}
		actualFrom := slices.Index(relation.ChildIDs, display[from])
		actualTo := slices.Index(relation.ChildIDs, display[to])
		moved = f.MoveView(viewID, actualFrom, actualTo)
		return nil
	})
	if err != nil {
		return err
	}
	if !moved {
		m.logger.Debug("move view ignored", "view_id", viewID, "from", from, "to", to)
		return nil
	}

	m.NotifyParentViewChanged(ctx, parentID)
	return nil
}

// MoveNestedView moves a view under newParentID, right after prevViewID or
// first when prevViewID is nil. A view moved below a trashed parent is trashed
// with it, so it and its descendants are unfavorited like MoveViewToTrash does.
func (m *Manager) MoveNestedView(ctx context.Context, viewID, newParentID string, prevViewID *string) error {
	var (
		oldParentID string
		moved       bool
		unfavorited []*models.View
		favorites   []models.SectionItem
	)
	err := m.mutate(ctx, func(f *Folder) error {
		view := f.GetView(viewID)
		if view == nil {
			return viewNotFound(viewID)
		}
		oldParentID = view.ParentViewID

		ok, err := f.MoveNestedView(viewID, newParentID, prevViewID)
		if err != nil {
			return err
		}
		moved = ok
		if !moved {
			return nil
		}

		trashed := f.TrashedSet()
		if !trashed[viewID] {
			return nil
		}
		unfavorited = f.unfavoriteSubtree(viewID)
		if f.CurrentView() != "" && trashed[f.CurrentView()] {
			f.SetCurrentView("")
		}
		favorites = visibleSectionItems(f, f.GetAllFavorites(), trashed)
		return nil
	})
	if err != nil {
		return err
	}
	if !moved {
		m.logger.Debug("move nested view ignored", "view_id", viewID, "new_parent_id", newParentID)
		return nil
	}

	if len(unfavorited) > 0 {
		m.notifyFavorites(models.DidUnfavoriteView, unfavorited, favorites)
	}
	m.NotifyParentViewChanged(ctx, uniqueIDs(newParentID, oldParentID)...)
	return nil
}

// DuplicateView copies a view and its payload right after the source view
func (m *Manager) DuplicateView(ctx context.Context, viewID string) (*models.View, error) {
	var (
		source *models.View
		index  *int
	)
	err := m.read(func(f *Folder) error {
		source = f.GetView(viewID)
		if source == nil {
			return viewNotFound(viewID)
		}
		if relation, ok := f.Relation(viewID); ok {
			if pos := slices.Index(relation.ChildIDs, viewID); pos >= 0 {
				next := pos + 1
				index = &next
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	handler, err := m.handlers.Get(source.Layout)
	if err != nil {
		return nil, err
	}
	data, err := handler.DuplicateView(ctx, viewID)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate view payload: %w", err)
	}

	duplicate, err := m.createView(ctx, &folderSvc.CreateViewParams{
		ParentViewID: source.ParentViewID,
		Name:         source.Name + " (copy)",
		Desc:         source.Desc,
		Layout:       source.Layout,
		InitialData:  data,
		Index:        index,
	}, source.Icon)
	if err != nil {
		return nil, err
	}

	m.NotifyParentViewChanged(ctx, source.ParentViewID)
	return duplicate, nil
}

// UpdateView applies the update built by fn, lets the layout handler react and
// broadcasts the updated view
func (m *Manager) UpdateView(ctx context.Context, viewID string, fn func(update *models.ViewUpdate)) (*models.View, error) {
	var oldView, newView *models.View
	err := m.mutate(ctx, func(f *Folder) error {
		if f.TrashedSet()[viewID] {
			return &domain.NotFoundError{Message: fmt.Sprintf("view %s is in trash", viewID)}
		}
		oldView = f.GetView(viewID)
		if oldView == nil {
			return viewNotFound(viewID)
		}
		newView = f.UpdateView(viewID, fn)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if handler, err := m.handlers.Get(oldView.Layout); err == nil {
		if err := handler.DidUpdateView(ctx, oldView, newView); err != nil {
			m.logger.Warn("handler failed to process view update", "view_id", viewID, "error", err)
		}
	}

	var updated *models.ViewWithChildren
	_ = m.read(func(f *Folder) error {
		updated = viewWithChildren(f, viewID, f.TrashedSet())
		return nil
	})
	if updated != nil {
		m.send(viewID, models.DidUpdateView, updated)
	}
	return newView, nil
}

// UpdateViewWithParams applies name, description, layout and favorite changes
func (m *Manager) UpdateViewWithParams(ctx context.Context, params *folderSvc.UpdateViewParams) (*models.View, error) {
	if err := validateUpdateViewParams(params); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if params.Layout != nil {
		if _, err := m.handlers.Get(*params.Layout); err != nil {
			return nil, err
		}
	}
	return m.UpdateView(ctx, params.ViewID, func(update *models.ViewUpdate) {
		update.SetName(params.Name).
			SetDesc(params.Desc).
			SetLayout(params.Layout).
			SetFavorite(params.IsFavorite)
	})
}

// UpdateViewIconWithParams replaces or removes a view's icon
func (m *Manager) UpdateViewIconWithParams(ctx context.Context, params *folderSvc.UpdateViewIconParams) (*models.View, error) {
	if params.ViewID == "" {
		return nil, &domain.ValidationError{Message: "view_id is required"}
	}
	return m.UpdateView(ctx, params.ViewID, func(update *models.ViewUpdate) {
		update.SetIcon(params.Icon)
	})
}

// SetCurrentView records the open view and moves it to the front of recents
func (m *Manager) SetCurrentView(ctx context.Context, viewID string) error {
	var (
		setting *models.WorkspaceSetting
		recent  []string
	)
	err := m.mutate(ctx, func(f *Folder) error {
		trashed := f.TrashedSet()
		if trashed[viewID] || f.GetView(viewID) == nil {
			return viewNotFound(viewID)
		}
		f.SetCurrentView(viewID)
		f.AddRecentViewIDs([]string{viewID})

		setting = workspaceSetting(f)
		recent = sectionIDs(visibleSectionItems(f, f.GetAllRecentSections(), trashed))
		return nil
	})
	if err != nil {
		return err
	}

	m.send(setting.WorkspaceID, models.DidUpdateWorkspaceSetting, setting)
	m.notifyRecent(recent)
	return nil
}

// GetCurrentView returns the open view
func (m *Manager) GetCurrentView(ctx context.Context) (*models.ViewWithChildren, error) {
	var view *models.ViewWithChildren
	err := m.read(func(f *Folder) error {
		current := f.CurrentView()
		if current == "" {
			return &domain.NotFoundError{Message: "no current view"}
		}
		view = viewWithChildren(f, current, f.TrashedSet())
		if view == nil {
			return viewNotFound(current)
		}
		return nil
	})
	return view, err
}

// Import creates a view from imported bytes or a file and attaches it to its parent
func (m *Manager) Import(ctx context.Context, params *folderSvc.ImportParams) (*models.View, error) {
	if len(params.Data) == 0 && params.FilePath == nil {
		return nil, fmt.Errorf("%w: data or file_path is required", domain.ErrInvalidParams)
	}
	if err := validateImportParams(params); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	uid, err := m.uid()
	if err != nil {
		return nil, err
	}
	handler, err := m.handlers.Get(params.ViewLayout)
	if err != nil {
		return nil, err
	}

	name, data := params.Name, params.Data
	var fm *viewFrontmatter
	if params.ImportType == folderSvc.ImportTypeMarkdown && len(data) > 0 {
		if fm, data, err = splitFrontmatter(data); err != nil {
			return nil, err
		}
		if fm != nil && fm.Name != "" {
			name = fm.Name
		}
	}

	viewID := uuid.NewString()
	if len(params.Data) > 0 {
		err = handler.ImportFromBytes(ctx, uid, viewID, name, params.ImportType, data)
	} else {
		err = handler.ImportFromFilePath(ctx, viewID, params.Name, *params.FilePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to import view: %w", err)
	}

	view := newView(uid, viewID, params.ParentViewID, name, "", params.ViewLayout)
	if fm != nil {
		view.Desc = fm.Desc
		view.Icon = fm.Icon
	}
	if err := m.mutate(ctx, func(f *Folder) error {
		f.InsertView(view, nil)
		return nil
	}); err != nil {
		return nil, err
	}

	m.logger.Info("view imported", "view_id", viewID, "import_type", params.ImportType)
	m.NotifyParentViewChanged(ctx, params.ParentViewID)
	return view, nil
}
