package store

import (
	"context"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lychee-technology/xrosedb"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
)

// Snapshot describes an xz compressed copy of a document.
type Snapshot struct {
	Path string
	// Size is the uncompressed document size in bytes.
	Size int64
	// Digest is the hex BLAKE3-256 of the uncompressed document.
	Digest string
}

// Snapshot writes an xz compressed copy of the document to path.
func (s *Store) Snapshot(ctx context.Context, path string) (Snapshot, error) {
	dir, err := os.MkdirTemp("", "xrose-snapshot-*")
	if err != nil {
		return Snapshot{}, xrosedb.NewBackupFailedError(path, err)
	}
	defer os.RemoveAll(dir)

	plain := filepath.Join(dir, "document.xrose")
	if err := s.Save(ctx, plain); err != nil {
		return Snapshot{}, err
	}

	in, err := os.Open(plain)
	if err != nil {
		return Snapshot{}, xrosedb.NewBackupFailedError(path, err)
	}
	defer in.Close()

	out, err := os.Create(path)
	if err != nil {
		return Snapshot{}, xrosedb.NewBackupFailedError(path, err)
	}
	hasher := blake3.New()
	xw, err := xz.NewWriter(out)
	if err != nil {
		out.Close()
		return Snapshot{}, xrosedb.NewBackupFailedError(path, err)
	}
	n, err := io.Copy(xw, io.TeeReader(in, hasher))
	if err != nil {
		xw.Close()
		out.Close()
		return Snapshot{}, xrosedb.NewBackupFailedError(path, err)
	}
	if err := xw.Close(); err != nil {
		out.Close()
		return Snapshot{}, xrosedb.NewBackupFailedError(path, err)
	}
	if err := out.Close(); err != nil {
		return Snapshot{}, xrosedb.NewBackupFailedError(path, err)
	}

	snap := Snapshot{Path: path, Size: n, Digest: hex.EncodeToString(hasher.Sum(nil))}
	zap.S().Infow("store: snapshot written", "path", path, "size", n, "digest", snap.Digest)
	return snap, nil
}

// RestoreSnapshot loads the compressed document at path. A non-empty digest
// must match the decompressed bytes.
func (s *Store) RestoreSnapshot(ctx context.Context, path, digest string) error {
	in, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return xrosedb.NewFileNotFoundError(path)
		}
		return xrosedb.NewOpenFailureError(path, err)
	}
	defer in.Close()

	xr, err := xz.NewReader(in)
	if err != nil {
		return xrosedb.NewInvalidFileError(path, "not an xz stream").WithCause(err)
	}

	dir, err := os.MkdirTemp("", "xrose-restore-*")
	if err != nil {
		return xrosedb.NewOpenFailureError(path, err)
	}
	defer os.RemoveAll(dir)

	plain := filepath.Join(dir, "document.xrose")
	out, err := os.Create(plain)
	if err != nil {
		return xrosedb.NewOpenFailureError(path, err)
	}
	hasher := blake3.New()
	if _, err := io.Copy(io.MultiWriter(out, hasher), xr); err != nil {
		out.Close()
		return xrosedb.NewInvalidFileError(path, "corrupt xz stream").WithCause(err)
	}
	if err := out.Close(); err != nil {
		return xrosedb.NewOpenFailureError(path, err)
	}

	if got := hex.EncodeToString(hasher.Sum(nil)); digest != "" && got != digest {
		return xrosedb.NewInvalidFileError(path, "snapshot digest mismatch").
			WithDetail("expected", digest).
			WithDetail("actual", got)
	}
	return s.Load(ctx, plain)
}

// DocumentDigest returns the hex BLAKE3-256 of the document file at path.
func DocumentDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", xrosedb.NewFileNotFoundError(path)
		}
		return "", xrosedb.NewOpenFailureError(path, err)
	}
	defer f.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", xrosedb.NewOpenFailureError(path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
