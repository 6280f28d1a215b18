package folder

import (
	"embed"
	"fmt"
	"time"

	models "folio/internal/domain/models/folder"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFiles embed.FS

// workspaceTemplate describes the views of a new workspace
type workspaceTemplate struct {
	Name  string         `yaml:"name"`
	Views []viewTemplate `yaml:"views"`
}

type viewTemplate struct {
	Name     string            `yaml:"name"`
	Layout   models.ViewLayout `yaml:"layout"`
	Icon     *models.ViewIcon  `yaml:"icon"`
	Children []viewTemplate    `yaml:"children"`
}

// DefaultFolderBuilder builds the folder of a brand-new workspace from the
// embedded template
type DefaultFolderBuilder struct {
	template workspaceTemplate
}

// NewDefaultFolderBuilder loads the embedded workspace template
func NewDefaultFolderBuilder() (*DefaultFolderBuilder, error) {
	data, err := templateFiles.ReadFile("templates/default_workspace.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace template: %w", err)
	}

	var tmpl workspaceTemplate
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workspace template: %w", err)
	}
	if err := checkTemplateViews(tmpl.Views); err != nil {
		return nil, err
	}

	return &DefaultFolderBuilder{template: tmpl}, nil
}

func checkTemplateViews(views []viewTemplate) error {
	for _, v := range views {
		if v.Name == "" {
			return fmt.Errorf("workspace template: view without name")
		}
		if !v.Layout.Valid() {
			return fmt.Errorf("workspace template: view %q has unknown layout %q", v.Name, v.Layout)
		}
		if err := checkTemplateViews(v.Children); err != nil {
			return err
		}
	}
	return nil
}

// Build returns the folder data of a new workspace together with every view it
// created, parents before children
func (b *DefaultFolderBuilder) Build(uid int64, workspaceID string) (*models.FolderData, []*models.View, error) {
	now := time.Now().Unix()
	owner := uid

	workspace := &models.Workspace{
		ID:         workspaceID,
		Name:       b.template.Name,
		ChildViews: []string{},
		CreatedAt:  now,
		CreatedBy:  &owner,
	}
	folder, err := NewFolder(uid, &models.FolderData{Workspace: workspace})
	if err != nil {
		return nil, nil, err
	}

	var created []*models.View
	for _, tmpl := range b.template.Views {
		tree := buildParentChildViews(tmpl, workspaceID, uid, now, &created)
		folder.InsertParentChildViews(tree)
	}
	return folder.Data(), created, nil
}

func buildParentChildViews(tmpl viewTemplate, parentID string, uid, now int64, created *[]*models.View) models.ParentChildViews {
	owner := uid
	view := &models.View{
		ID:             uuid.NewString(),
		ParentViewID:   parentID,
		Name:           tmpl.Name,
		Children:       []string{},
		CreatedAt:      now,
		Layout:         tmpl.Layout,
		Icon:           tmpl.Icon,
		CreatedBy:      &owner,
		LastEditedTime: now,
		LastEditedBy:   &owner,
	}
	*created = append(*created, view.Clone())

	tree := models.ParentChildViews{ParentView: view}
	for _, child := range tmpl.Children {
		tree.ChildViews = append(tree.ChildViews, buildParentChildViews(child, view.ID, uid, now, created))
	}
	return tree
}
