package folder

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"folio/internal/config"
	"folio/internal/domain"
	models "folio/internal/domain/models/folder"
	folderSvc "folio/internal/domain/services/folder"
)

// ImportZip imports every supported file of a zip archive under a new
// document view named params.Name. Archive directories become nested
// document views. Unsupported entries are skipped and failing entries are
// reported without aborting the import.
func (m *Manager) ImportZip(ctx context.Context, params *folderSvc.ImportZipParams) (*models.ZipImportResult, error) {
	if err := validateImportZipParams(params); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// entry names are sanitized below, so insecure paths are not fatal
	archive, err := zip.NewReader(bytes.NewReader(params.Data), int64(len(params.Data)))
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("failed to open zip file: %v", err)}
	}

	root, err := m.CreateView(ctx, &folderSvc.CreateViewParams{
		ParentViewID: params.ParentViewID,
		Name:         params.Name,
		Layout:       models.LayoutDocument,
	})
	if err != nil {
		return nil, err
	}

	imp := &zipImport{
		manager: m,
		result: &models.ZipImportResult{
			Root:   root,
			Views:  []*models.View{},
			Errors: []models.ZipImportError{},
		},
		dirs: map[string]string{".": root.ID},
	}
	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		imp.importEntry(ctx, entry)
	}

	m.NotifyParentViewChanged(ctx, root.ParentViewID)

	summary := imp.result.Summary
	m.logger.Info("zip import complete",
		"root_view_id", root.ID,
		"created", summary.Created,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"total_files", summary.TotalFiles,
	)
	return imp.result, nil
}

type zipImport struct {
	manager *Manager
	result  *models.ZipImportResult
	dirs    map[string]string // archive directory -> view id
}

func (z *zipImport) importEntry(ctx context.Context, entry *zip.File) {
	z.result.Summary.TotalFiles++

	// rooted clean strips leading slashes and ".." segments
	name := strings.TrimPrefix(path.Clean("/"+entry.Name), "/")
	base := path.Base(name)
	if strings.HasPrefix(name, "__MACOSX/") || strings.HasPrefix(base, ".") {
		z.result.Summary.Skipped++
		return
	}
	importType, layout, ok := folderSvc.ImportTypeForFile(base)
	if !ok {
		z.manager.logger.Debug("skipping unsupported file type", "file", name)
		z.result.Summary.Skipped++
		return
	}
	if entry.UncompressedSize64 > config.MaxImportBytes {
		z.fail(name, "file is too large")
		return
	}

	data, err := readZipEntry(entry)
	if err != nil {
		z.fail(name, err.Error())
		return
	}
	if len(data) == 0 {
		z.result.Summary.Skipped++
		return
	}

	parentID, err := z.ensureDir(ctx, path.Dir(name))
	if err != nil {
		z.fail(name, err.Error())
		return
	}

	view, err := z.manager.Import(ctx, &folderSvc.ImportParams{
		ParentViewID: parentID,
		Name:         strings.TrimSuffix(base, path.Ext(base)),
		ViewLayout:   layout,
		ImportType:   importType,
		Data:         data,
	})
	if err != nil {
		z.fail(name, err.Error())
		return
	}
	z.result.Summary.Created++
	z.result.Views = append(z.result.Views, view)
}

// ensureDir returns the view standing for an archive directory, creating it
// and its ancestors on first use
func (z *zipImport) ensureDir(ctx context.Context, dir string) (string, error) {
	if id, ok := z.dirs[dir]; ok {
		return id, nil
	}
	parentID, err := z.ensureDir(ctx, path.Dir(dir))
	if err != nil {
		return "", err
	}
	view, err := z.manager.CreateView(ctx, &folderSvc.CreateViewParams{
		ParentViewID: parentID,
		Name:         path.Base(dir),
		Layout:       models.LayoutDocument,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create view for %s: %w", dir, err)
	}
	z.dirs[dir] = view.ID
	z.result.Views = append(z.result.Views, view)
	return view.ID, nil
}

func (z *zipImport) fail(file, message string) {
	z.result.Summary.Failed++
	z.result.Errors = append(z.result.Errors, models.ZipImportError{File: file, Error: message})
	z.manager.logger.Warn("zip entry import failed", "file", file, "error", message)
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, config.MaxImportBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > config.MaxImportBytes {
		return nil, fmt.Errorf("file is too large")
	}
	return data, nil
}
