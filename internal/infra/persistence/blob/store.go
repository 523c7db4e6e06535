// Package blob persists application state as JSON blobs in a local
// gocloud.dev bucket. Each collection lives under its own key and is
// always written whole.
package blob

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"geolink/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

// Params defines the parameters required for the blob store.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// Store wraps a blob bucket with JSON read/write helpers shared by the
// repositories in this package.
type Store struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// New opens (creating if needed) the local state directory as a
// fileblob bucket.
func New(params Params) (*Store, error) {
	path := params.Config.Storage.Path
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create storage directory %s", path)
	}

	bucket, err := fileblob.OpenBucket(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open blob bucket at %s", path)
	}

	return &Store{bucket: bucket, logger: params.Logger}, nil
}

// NewStore constructs a Store directly from a directory path, bypassing
// fx. Used by tests.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	return New(Params{
		Config: &config.Config{Storage: &config.StorageConfig{Path: path}},
		Logger: logger,
	})
}

// Close releases the underlying bucket.
func (s *Store) Close() error {
	return errors.WithStack(s.bucket.Close())
}

// readJSON loads key into out. A missing blob leaves out untouched and
// returns false. A malformed blob is logged and treated as absent so a
// corrupt file can never prevent startup.
func (s *Store) readJSON(ctx context.Context, key string, out any) (bool, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return false, nil
		}

		return false, errors.Wrapf(err, "open blob %s", key)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return false, errors.Wrapf(err, "read blob %s", key)
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("discarding malformed state blob",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return false, nil
	}

	return true, nil
}

// writeJSON marshals v and replaces the blob at key.
func (s *Store) writeJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "marshal blob %s", key)
	}

	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType: "application/json",
	}); err != nil {
		return errors.Wrapf(err, "write blob %s", key)
	}

	return nil
}
