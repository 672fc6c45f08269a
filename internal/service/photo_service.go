package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	apperrors "github.com/vikram110703/booking-airbnb-backend/internal/errors"
	"github.com/vikram110703/booking-airbnb-backend/internal/metrics"
)

const (
	maxImageBytes      = 20 << 20
	defaultImageExt    = ".jpg"
	defaultFetchBurst  = 5
	defaultFetchPerSec = 5
)

// imageExtensions are the client-supplied extensions kept as-is on upload.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".avif": true, ".bmp": true, ".heic": true,
}

// UploadedFile is a file already written to the upload root under a temporary name.
type UploadedFile struct {
	TempPath     string
	OriginalName string
}

// PhotoService stores listing photos and returns references relative to the upload root.
type PhotoService interface {
	IngestFromURL(ctx context.Context, rawURL string) (string, error)
	IngestUploads(ctx context.Context, files []UploadedFile) ([]string, error)
	Stage(ctx context.Context, r io.Reader) (string, error)
}

// PhotoOptions tunes remote fetching. Zero values pick defaults.
type PhotoOptions struct {
	FetchTimeout time.Duration
	FetchRate    float64
	HTTPClient   *http.Client
}

type photoService struct {
	root    string
	client  *http.Client
	limiter *rate.Limiter
	now     func() time.Time
}

// NewPhotoService creates a photo service writing under root.
func NewPhotoService(root string, opts PhotoOptions) PhotoService {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.FetchTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	perSec := opts.FetchRate
	if perSec <= 0 {
		perSec = defaultFetchPerSec
	}
	return &photoService{
		root:    filepath.Clean(root),
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(perSec), defaultFetchBurst),
		now:     time.Now,
	}
}

// IngestFromURL downloads a remote image into the upload root.
func (s *photoService) IngestFromURL(ctx context.Context, rawURL string) (string, error) {
	ref, err := s.ingestFromURL(ctx, rawURL)
	metrics.RecordPhotoIngest("link", err)
	return ref, err
}

func (s *photoService) ingestFromURL(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: link must be an http(s) URL", apperrors.ErrValidation)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrFetch, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: remote returned status %d", apperrors.ErrFetch, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrFetch, err)
	}
	if len(data) > maxImageBytes {
		return "", fmt.Errorf("%w: image larger than %d bytes", apperrors.ErrFetch, maxImageBytes)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: content is %s, not an image", apperrors.ErrFetch, mtype.String())
	}
	ext := mtype.Extension()
	if ext == "" {
		ext = defaultImageExt
	}

	name := fmt.Sprintf("photo%d-%s%s", s.now().UnixMilli(), uuid.NewString()[:8], ext)
	if err := os.WriteFile(filepath.Join(s.root, name), data, 0o644); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return name, nil
}

// IngestUploads checks that each staged file is an image and renames it to carry
// an image extension. The original name's extension is kept when it is on the
// allow-list, otherwise the sniffed one is used. References come back in input
// order. A failure rolls back the whole batch: renamed files and the remaining
// staged files are removed.
func (s *photoService) IngestUploads(ctx context.Context, files []UploadedFile) ([]string, error) {
	refs := make([]string, 0, len(files))
	committed := make([]string, 0, len(files))
	for i, f := range files {
		newPath, err := s.commitUpload(f)
		metrics.RecordPhotoIngest("upload", err)
		if err != nil {
			discardFiles(committed)
			for _, rest := range files[i:] {
				_ = os.Remove(rest.TempPath)
			}
			return nil, err
		}
		committed = append(committed, newPath)
		refs = append(refs, s.reference(newPath))
	}
	return refs, nil
}

func (s *photoService) commitUpload(f UploadedFile) (string, error) {
	mtype, err := mimetype.DetectFile(f.TempPath)
	if err != nil {
		return "", fmt.Errorf("read upload %s: %w", f.OriginalName, err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: %s is %s, not an image", apperrors.ErrValidation, f.OriginalName, mtype.String())
	}

	ext := filepath.Ext(filepath.Base(f.OriginalName))
	if !imageExtensions[strings.ToLower(ext)] {
		ext = mtype.Extension()
		if ext == "" {
			ext = defaultImageExt
		}
	}

	newPath := f.TempPath + ext
	if err := os.Rename(f.TempPath, newPath); err != nil {
		return "", fmt.Errorf("rename upload %s: %w", f.OriginalName, err)
	}
	return newPath, nil
}

func discardFiles(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}

// Stage copies an incoming upload stream to a fresh temporary file in the upload root.
func (s *photoService) Stage(ctx context.Context, r io.Reader) (string, error) {
	tmp, err := os.CreateTemp(s.root, "upload-")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer tmp.Close()

	n, err := io.Copy(tmp, io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if n > maxImageBytes {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: image larger than %d bytes", apperrors.ErrValidation, maxImageBytes)
	}
	return tmp.Name(), nil
}

// reference strips the upload root prefix so the path can be served under /uploads.
func (s *photoService) reference(path string) string {
	cleaned := filepath.Clean(path)
	prefix := s.root + string(filepath.Separator)
	return filepath.ToSlash(strings.TrimPrefix(cleaned, prefix))
}
