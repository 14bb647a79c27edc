package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/viant/afs"
	"golang.org/x/oauth2"
)

// FileStore persists the token as a JSON snapshot at an afs URL
// (file://, mem://, s3:// ...). It is a lightweight way to survive process
// restarts in CLI or single-host services.
type FileStore struct {
	config *config
	mu     sync.Mutex
	fs     afs.Service
	URL    string
}

// NewFileStore creates a Store that persists the token at the given afs URL.
func NewFileStore(URL string, options ...Option) *FileStore {
	return &FileStore{
		config: newConfig(options),
		fs:     afs.New(),
		URL:    URL,
	}
}

func (f *FileStore) Save(ctx context.Context, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fs.Upload(ctx, f.URL, os.FileMode(0o600), bytes.NewReader(data))
}

// Load returns the persisted token, or nil when the snapshot is absent,
// malformed, or expired. The dead snapshot is deleted before returning, so
// the read and the invalidation happen under one lock.
func (f *FileStore) Load(ctx context.Context) *oauth2.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ok, _ := f.fs.Exists(ctx, f.URL); !ok {
		return nil
	}
	data, err := f.fs.DownloadWithURL(ctx, f.URL)
	if err != nil {
		return nil
	}
	token := &oauth2.Token{}
	if err = json.Unmarshal(data, token); err != nil {
		_ = f.fs.Delete(ctx, f.URL)
		return nil
	}
	if !usable(token, f.config.now()) {
		_ = f.fs.Delete(ctx, f.URL)
		return nil
	}
	return token
}

func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ok, _ := f.fs.Exists(ctx, f.URL); !ok {
		return nil
	}
	return f.fs.Delete(ctx, f.URL)
}
