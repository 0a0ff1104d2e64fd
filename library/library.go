// Package library browses the picture and model collections with a
// per-query page cache.
package library

import (
	"context"
	"fmt"
	"strings"
	"sync"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// Service caches library pages per query so paging back and forth does
// not refetch. All methods are safe for concurrent use.
type Service struct {
	svc    lab.LibraryService
	logger zerolog.Logger

	mu       sync.Mutex
	pictures map[string]lab.Page[lab.Picture]
	models   map[string]lab.Page[lab.Model3D]
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New returns a Service backed by the given library service.
func New(svc lab.LibraryService, opts ...Option) *Service {
	s := &Service{
		svc:      svc,
		logger:   zerolog.Nop(),
		pictures: make(map[string]lab.Page[lab.Picture]),
		models:   make(map[string]lab.Page[lab.Model3D]),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pictures returns one page of pictures, from cache when available.
func (s *Service) Pictures(ctx context.Context, query lab.LibraryQuery) (lab.Page[lab.Picture], error) {
	key := queryKey(query)
	s.mu.Lock()
	page, ok := s.pictures[key]
	s.mu.Unlock()
	if ok {
		return page, nil
	}

	page, err := s.svc.ListPictures(ctx, query)
	if err != nil {
		return lab.Page[lab.Picture]{}, err
	}

	s.mu.Lock()
	s.pictures[key] = page
	s.mu.Unlock()
	s.logger.Debug().Str("query", key).Int("items", len(page.Items)).Msg("picture page cached")
	return page, nil
}

// Models returns one page of models, from cache when available.
func (s *Service) Models(ctx context.Context, query lab.LibraryQuery) (lab.Page[lab.Model3D], error) {
	key := queryKey(query)
	s.mu.Lock()
	page, ok := s.models[key]
	s.mu.Unlock()
	if ok {
		return page, nil
	}

	page, err := s.svc.ListModels(ctx, query)
	if err != nil {
		return lab.Page[lab.Model3D]{}, err
	}

	s.mu.Lock()
	s.models[key] = page
	s.mu.Unlock()
	return page, nil
}

// Invalidate drops all cached pages. Call after an upload or delete.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pictures = make(map[string]lab.Page[lab.Picture])
	s.models = make(map[string]lab.Page[lab.Model3D])
}

// DeletePicture removes a picture and invalidates the cache.
func (s *Service) DeletePicture(ctx context.Context, id string) error {
	if err := s.svc.DeletePicture(ctx, id); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// PictureCategories lists the known picture categories.
func (s *Service) PictureCategories(ctx context.Context) ([]string, error) {
	return s.svc.PictureCategories(ctx)
}

// ModelCategories lists the known model categories.
func (s *Service) ModelCategories(ctx context.Context) ([]string, error) {
	return s.svc.ModelCategories(ctx)
}

// ModelForImage fetches the model reconstructed from a picture.
func (s *Service) ModelForImage(ctx context.Context, imageID string) (lab.Model3D, error) {
	return s.svc.ModelForImage(ctx, imageID)
}

// FilterPictures filters a picture slice by name pattern. The pattern is
// a doublestar glob ("vase*", "*cat*"); a pattern that does not compile
// falls back to a case-insensitive substring match.
func FilterPictures(pictures []lab.Picture, pattern string) []lab.Picture {
	if pattern == "" {
		return pictures
	}
	var out []lab.Picture
	for _, p := range pictures {
		if matchName(p.Name, pattern) {
			out = append(out, p)
		}
	}
	return out
}

// FilterModels filters a model slice by name pattern, like FilterPictures.
func FilterModels(models []lab.Model3D, pattern string) []lab.Model3D {
	if pattern == "" {
		return models
	}
	var out []lab.Model3D
	for _, m := range models {
		if matchName(m.Name, pattern) {
			out = append(out, m)
		}
	}
	return out
}

func matchName(name, pattern string) bool {
	ok, err := doublestar.Match(pattern, name)
	if err != nil {
		return strings.Contains(strings.ToLower(name), strings.ToLower(pattern))
	}
	return ok
}

func queryKey(q lab.LibraryQuery) string {
	return fmt.Sprintf("%d/%d/%s/%s", q.Current, q.PageSize, q.Category, q.Name)
}
