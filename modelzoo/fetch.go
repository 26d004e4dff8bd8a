package modelzoo

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// defaultConcurrency bounds parallel downloads in FetchAll.
const defaultConcurrency = 4

// Fetcher downloads models into a local directory, skipping files that are
// already present. The zero value is not usable; call NewFetcher.
type Fetcher struct {
	dir         string
	client      *http.Client
	concurrency int
}

// FetchOption configures a Fetcher.
type FetchOption func(*Fetcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) FetchOption {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithConcurrency bounds the number of parallel downloads in FetchAll.
func WithConcurrency(n int) FetchOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// NewFetcher creates a fetcher that stores models under dir, creating the
// directory if needed.
func NewFetcher(dir string, opts ...FetchOption) (*Fetcher, error) {
	if dir == "" {
		return nil, errors.New("model directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create model directory %q", dir)
	}

	f := &Fetcher{
		dir:         dir,
		client:      &http.Client{Timeout: 5 * time.Minute},
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Dir returns the directory models are stored in.
func (f *Fetcher) Dir() string {
	return f.dir
}

// Fetch ensures the model is present locally and returns its path. An
// existing non-empty file is reused without touching the network.
func (f *Fetcher) Fetch(ctx context.Context, model Model) (string, error) {
	if model.Filename == "" || model.URL == "" {
		return "", errors.Errorf("incomplete model entry %+v", model)
	}

	target := filepath.Join(f.dir, model.Filename)
	if info, err := os.Stat(target); err == nil && !info.IsDir() && info.Size() > 0 {
		return target, nil
	}

	if err := f.download(ctx, model.URL, target); err != nil {
		return "", errors.Wrapf(err, "failed to fetch model %q", model.Name)
	}
	return target, nil
}

// FetchByName looks the model up in the catalog and fetches it.
func (f *Fetcher) FetchByName(ctx context.Context, name string) (string, error) {
	model, ok := Lookup(name)
	if !ok {
		return "", errors.Errorf("unknown model %q", name)
	}
	return f.Fetch(ctx, model)
}

// FetchAll fetches every listed model, downloading in parallel. It returns
// the local paths in the order the models were given; the first failure
// cancels the remaining downloads.
func (f *Fetcher) FetchAll(ctx context.Context, models []Model) ([]string, error) {
	paths := make([]string, len(models))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(f.concurrency)
	for i, model := range models {
		i, model := i, model
		group.Go(func() error {
			path, err := f.Fetch(ctx, model)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// download streams the model to a temporary file and renames it into place,
// so a partial download never shows up as a cached model.
func (f *Fetcher) download(ctx context.Context, url, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to build request for %q", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to download %q", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("failed to download %q: HTTP %d", url, resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp(f.dir, ".download-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary download file")
	}
	tmpPath := tmpFile.Name()

	written, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmpPath)
		if copyErr != nil {
			return errors.Wrapf(copyErr, "failed to write %q", tmpPath)
		}
		return errors.Wrapf(closeErr, "failed to close %q", tmpPath)
	}
	if written == 0 {
		_ = os.Remove(tmpPath)
		return errors.Errorf("downloaded model from %q is empty", url)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to move model into place at %q", target)
	}
	return nil
}
