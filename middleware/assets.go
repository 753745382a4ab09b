package middleware

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"io/fs"
	"sync"

	"lawyer_landing_go/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	assetVersions   = map[string]string{}
	assetVersionsMu sync.RWMutex
)

// InitAssetVersions hashes every file of the static tree for cache busting
func InitAssetVersions(fsys fs.FS) {
	versions := map[string]string{}
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if v := computeFileHash(fsys, path); v != "" {
			versions[path] = v
		}
		return nil
	})
	if err != nil {
		logger.Warn("Failed to walk static assets", zap.Error(err))
	}

	assetVersionsMu.Lock()
	assetVersions = versions
	assetVersionsMu.Unlock()
	logger.Info("Asset versions initialized", zap.Int("files", len(versions)))
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(fsys fs.FS, path string) string {
	file, err := fsys.Open(path)
	if err != nil {
		logger.Warn("Failed to open file for hashing", zap.String("path", path), zap.Error(err))
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		logger.Warn("Failed to hash file", zap.String("path", path), zap.Error(err))
		return ""
	}
	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// AssetVersion returns the hash of a static file, "1" when unknown
func AssetVersion(path string) string {
	assetVersionsMu.RLock()
	defer assetVersionsMu.RUnlock()
	if v, ok := assetVersions[path]; ok {
		return v
	}
	return "1"
}

// AssetURL returns the versioned URL of a static file
func AssetURL(path string) string {
	return "/static/" + path + "?v=" + AssetVersion(path)
}

// StaticCache marks versioned asset responses as immutable
func StaticCache() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.QueryParam("v") != "" {
				c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
			} else {
				c.Response().Header().Set("Cache-Control", "public, max-age=3600")
			}
			return next(c)
		}
	}
}
