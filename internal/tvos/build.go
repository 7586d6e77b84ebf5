package tvos

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/zerr"
)

// reservedResourcesName is the bundle directory the platform claims for itself.
const reservedResourcesName = "Resources"

func (c *Catalog) buildSimulator(ctx context.Context, run *domain.Run) error {
	cfg, err := run.Config()
	if err != nil {
		return err
	}
	if err := PreBuild(cfg, domain.PlatformSimulator); err != nil {
		return err
	}
	return c.toolchain.Build(ctx, cfg, domain.PlatformSimulator)
}

func (c *Catalog) buildDevice(ctx context.Context, run *domain.Run) error {
	cfg, err := run.Config()
	if err != nil {
		return err
	}
	if err := PreBuild(cfg, domain.PlatformDevice); err != nil {
		return err
	}
	if err := c.toolchain.Build(ctx, cfg, domain.PlatformDevice); err != nil {
		return err
	}
	return c.toolchain.Codesign(ctx, cfg, domain.PlatformDevice)
}

// PreBuild removes the stale Info.plist of the platform bundle and rejects
// resources directories containing a directory named "resources" in any case.
func PreBuild(cfg *domain.BuildConfig, platform domain.Platform) error {
	plist := cfg.InfoPlistPath(platform)
	if err := os.Remove(plist); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(domain.ErrBundleCleanupFailed, err.Error()), "path", plist)
	}

	for _, dir := range cfg.ResourcesDirs {
		if err := checkResourcesDir(dir); err != nil {
			return err
		}
	}
	return nil
}

func checkResourcesDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrResourcesDirUnreadable, err.Error()), "path", dir)
	}

	for _, entry := range entries {
		if !strings.EqualFold(entry.Name(), reservedResourcesName) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrResourcesDirUnreadable, err.Error()), "path", path)
		}
		if !info.IsDir() {
			continue
		}

		suggestion := "assets"
		if entry.Name() == reservedResourcesName {
			suggestion = "Assets"
		}
		renamed := filepath.Join(dir, suggestion)

		msg := fmt.Sprintf("a tvOS application cannot be installed if it contains a directory called 'resources'; "+
			"rename the directory at path '%s' to, for instance, '%s'", path, renamed)
		err = zerr.With(zerr.Wrap(domain.ErrReservedResourcesDir, msg), "path", path)
		return zerr.With(err, "suggestion", renamed)
	}
	return nil
}
