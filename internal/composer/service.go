package composer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kiesman99/mosaic/internal/mosaic"
	"github.com/kiesman99/mosaic/internal/storage"
	"github.com/kiesman99/mosaic/pkg/raster"
)

// LinkFunc builds the download URI for a stored file name
type LinkFunc func(name string) string

// StoredFile describes a file written to the store
type StoredFile struct {
	storage.ImageFile
	ContentType string
	Size        int64
}

// ComposeRequest names the stored images to combine. Base is the model,
// Mapper provides the tiles. Zero fragment sizes fall back to the service
// defaults.
type ComposeRequest struct {
	Base       string
	Mapper     string
	ResultName string
	FragWidth  int
	FragHeight int
}

// ComposeResult is the stored mosaic
type ComposeResult struct {
	StoredFile
	Width  int
	Height int
	Stats  mosaic.Stats
}

// Service ties the compositor to the file store and the image index
type Service struct {
	store *storage.FileStore
	index *storage.Index
	cache *lru.Cache[string, *raster.Raster]
	opts  Options

	// gens counts writes per name; a decoded raster is only cached when no
	// write happened while it was being loaded
	mu   sync.Mutex
	gens map[string]uint64
}

// New creates a service on top of store
func New(store *storage.FileStore, opts Options) (*Service, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 1
	}
	cache, err := lru.New[string, *raster.Raster](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("could not create raster cache: %w", err)
	}
	return &Service{
		store: store,
		index: storage.NewIndex(),
		cache: cache,
		opts:  opts,
		gens:  make(map[string]uint64),
	}, nil
}

// invalidate marks name as rewritten and drops its cached raster
func (s *Service) invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[name]++
	s.cache.Remove(name)
}

func (s *Service) generation(name string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[name]
}

// remember caches r unless name was rewritten since gen was read
func (s *Service) remember(name string, gen uint64, r *raster.Raster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[name] == gen {
		s.cache.Add(name, r)
	}
}

// Upload stores r under the cleaned name and records it in the index
func (s *Service) Upload(name string, r io.Reader, link LinkFunc) (*StoredFile, error) {
	clean, err := storage.CleanName(name)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read upload %s: %w", clean, err)
	}
	size, err := s.store.Save(clean, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	s.invalidate(clean)

	row := s.index.Save(clean, link(clean))
	log.WithFields(log.Fields{"file": clean, "size": size, "id": row.ID}).Info("Stored upload")

	return &StoredFile{
		ImageFile:   row,
		ContentType: storage.DetectContentType(data),
		Size:        size,
	}, nil
}

// Download returns the content of name and its sniffed content type
func (s *Service) Download(name string) ([]byte, string, error) {
	data, err := s.store.Load(name)
	if err != nil {
		return nil, "", err
	}
	return data, storage.DetectContentType(data), nil
}

// Delete removes name from the store, the index and the cache
func (s *Service) Delete(name string) error {
	clean, err := storage.CleanName(name)
	if err != nil {
		return err
	}
	if err := s.store.Delete(clean); err != nil {
		return err
	}
	s.invalidate(clean)
	rows := s.index.DeleteByName(clean)
	log.WithFields(log.Fields{"file": clean, "rows": rows}).Info("Deleted file")
	return nil
}

// List returns one row per stored file ordered by id. Files found on disk
// without a row, for example from an earlier run, are recorded first.
func (s *Service) List(link LinkFunc) ([]storage.ImageFile, error) {
	names, err := s.store.List()
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
		if _, ok := s.index.FindByName(name); !ok {
			s.index.Save(name, link(name))
		}
	}

	var rows []storage.ImageFile
	seen := make(map[string]bool, len(names))
	for _, row := range s.index.All() {
		if present[row.Name] && !seen[row.Name] {
			seen[row.Name] = true
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Compose loads Base and Mapper, rebuilds Base out of Mapper's tiles and
// stores the JPEG result as ResultName
func (s *Service) Compose(ctx context.Context, req ComposeRequest, link LinkFunc) (*ComposeResult, error) {
	base, err := storage.CleanName(req.Base)
	if err != nil {
		return nil, err
	}
	mapper, err := storage.CleanName(req.Mapper)
	if err != nil {
		return nil, err
	}
	resultName, err := storage.CleanName(req.ResultName)
	if err != nil {
		return nil, err
	}

	fragW, fragH := req.FragWidth, req.FragHeight
	if fragW == 0 {
		fragW = s.opts.FragWidth
	}
	if fragH == 0 {
		fragH = s.opts.FragHeight
	}
	if fragW < 1 || fragH < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", mosaic.ErrFragmentSize, fragW, fragH)
	}

	logger := log.WithFields(log.Fields{
		"base":   base,
		"mapper": mapper,
		"result": resultName,
	})
	logger.Info("Request to remake base with the components of mapper")

	for _, name := range []string{base, mapper} {
		if !s.store.Exists(name) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
		}
	}

	var model, source *raster.Raster
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.load(gctx, base)
		model = r
		return err
	})
	g.Go(func() error {
		r, err := s.load(gctx, mapper)
		source = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := Render(source, model, fragW, fragH, s.opts.Mosaic, s.opts.JPEGQuality)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	size, err := s.store.Save(resultName, bytes.NewReader(res.JPEG))
	if err != nil {
		return nil, err
	}
	s.invalidate(resultName)
	row := s.index.Save(resultName, link(resultName))

	logger.WithFields(log.Fields{
		"width":    res.Width,
		"height":   res.Height,
		"filled":   res.Stats.Filled,
		"unfilled": res.Stats.Unmatched,
		"unused":   res.Stats.Unused,
		"elapsed":  time.Since(start),
	}).Info("Composed mosaic")

	return &ComposeResult{
		StoredFile: StoredFile{
			ImageFile:   row,
			ContentType: "image/jpeg",
			Size:        size,
		},
		Width:  res.Width,
		Height: res.Height,
		Stats:  res.Stats,
	}, nil
}

// load returns the decoded, upright raster for a stored file
func (s *Service) load(ctx context.Context, name string) (*raster.Raster, error) {
	if r, ok := s.cache.Get(name); ok {
		return r, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gen := s.generation(name)
	data, err := s.store.Load(name)
	if err != nil {
		return nil, err
	}
	r, err := raster.Decode(data)
	if err != nil {
		return nil, &DecodeError{Name: name, Err: err}
	}

	s.remember(name, gen, r)
	return r, nil
}
