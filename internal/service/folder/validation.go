package folder

import (
	"folio/internal/config"
	folderSvc "folio/internal/domain/services/folder"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func validateCreateViewParams(params *folderSvc.CreateViewParams) error {
	return validation.ValidateStruct(params,
		validation.Field(&params.Name, validation.Length(0, config.MaxViewNameLength)),
		validation.Field(&params.Desc, validation.Length(0, config.MaxViewDescLength)),
		validation.Field(&params.Layout, validation.Required),
		validation.Field(&params.Index, validation.Min(0)),
	)
}

func validateCreateOrphanViewParams(params *folderSvc.CreateOrphanViewParams) error {
	return validation.ValidateStruct(params,
		validation.Field(&params.Name, validation.Length(0, config.MaxViewNameLength)),
		validation.Field(&params.Layout, validation.Required),
	)
}

func validateUpdateViewParams(params *folderSvc.UpdateViewParams) error {
	return validation.ValidateStruct(params,
		validation.Field(&params.ViewID, validation.Required),
		validation.Field(&params.Name, validation.NilOrNotEmpty, validation.Length(1, config.MaxViewNameLength)),
		validation.Field(&params.Desc, validation.Length(0, config.MaxViewDescLength)),
	)
}

func validateCreateWorkspaceParams(params *folderSvc.CreateWorkspaceParams) error {
	return validation.ValidateStruct(params,
		validation.Field(&params.Name,
			validation.Required,
			validation.Length(1, config.MaxWorkspaceNameLength),
		),
	)
}

func validateImportParams(params *folderSvc.ImportParams) error {
	return validation.ValidateStruct(params,
		validation.Field(&params.ParentViewID, validation.Required),
		validation.Field(&params.Name,
			validation.Required,
			validation.Length(1, config.MaxViewNameLength),
		),
		validation.Field(&params.ViewLayout, validation.Required),
		validation.Field(&params.Data, validation.Length(0, config.MaxImportBytes)),
	)
}

func validateImportZipParams(params *folderSvc.ImportZipParams) error {
	return validation.ValidateStruct(params,
		validation.Field(&params.ParentViewID, validation.Required),
		validation.Field(&params.Name,
			validation.Required,
			validation.Length(1, config.MaxViewNameLength),
		),
		validation.Field(&params.Data, validation.Required, validation.Length(0, config.MaxImportBytes)),
	)
}

func validateFrontmatter(fm *viewFrontmatter) error {
	return validation.ValidateStruct(fm,
		validation.Field(&fm.Name, validation.Length(0, config.MaxViewNameLength)),
		validation.Field(&fm.Desc, validation.Length(0, config.MaxViewDescLength)),
	)
}
