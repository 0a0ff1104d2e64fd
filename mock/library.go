package mock

import (
	"context"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// Interface compliance check.
var _ lab.LibraryService = (*LibraryService)(nil)

// LibraryService is a test double for lab.LibraryService.
type LibraryService struct {
	PictureFn           func(ctx context.Context, id string) (lab.Picture, error)
	ListPicturesFn      func(ctx context.Context, query lab.LibraryQuery) (lab.Page[lab.Picture], error)
	PictureCategoriesFn func(ctx context.Context) ([]string, error)
	DeletePictureFn     func(ctx context.Context, id string) error

	ModelFn           func(ctx context.Context, id string) (lab.Model3D, error)
	ModelForImageFn   func(ctx context.Context, imageID string) (lab.Model3D, error)
	ListModelsFn      func(ctx context.Context, query lab.LibraryQuery) (lab.Page[lab.Model3D], error)
	ModelCategoriesFn func(ctx context.Context) ([]string, error)
}

// Picture delegates to PictureFn.
func (s *LibraryService) Picture(ctx context.Context, id string) (lab.Picture, error) {
	return s.PictureFn(ctx, id)
}

// ListPictures delegates to ListPicturesFn.
func (s *LibraryService) ListPictures(ctx context.Context, query lab.LibraryQuery) (lab.Page[lab.Picture], error) {
	return s.ListPicturesFn(ctx, query)
}

// PictureCategories delegates to PictureCategoriesFn.
func (s *LibraryService) PictureCategories(ctx context.Context) ([]string, error) {
	return s.PictureCategoriesFn(ctx)
}

// DeletePicture delegates to DeletePictureFn.
func (s *LibraryService) DeletePicture(ctx context.Context, id string) error {
	return s.DeletePictureFn(ctx, id)
}

// Model delegates to ModelFn.
func (s *LibraryService) Model(ctx context.Context, id string) (lab.Model3D, error) {
	return s.ModelFn(ctx, id)
}

// ModelForImage delegates to ModelForImageFn.
func (s *LibraryService) ModelForImage(ctx context.Context, imageID string) (lab.Model3D, error) {
	return s.ModelForImageFn(ctx, imageID)
}

// ListModels delegates to ListModelsFn.
func (s *LibraryService) ListModels(ctx context.Context, query lab.LibraryQuery) (lab.Page[lab.Model3D], error) {
	return s.ListModelsFn(ctx, query)
}

// ModelCategories delegates to ModelCategoriesFn.
func (s *LibraryService) ModelCategories(ctx context.Context) ([]string, error) {
	return s.ModelCategoriesFn(ctx)
}
