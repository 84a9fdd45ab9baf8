package grammar

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/PolarWolf314/helm-secrets/internal/configs"
	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
	logger "github.com/PolarWolf314/helm-secrets/internal/logging"

	"github.com/gofrs/flock"
)

// Entry is the persisted grammar of one (command, subcommand) pair.
type Entry struct {
	Fingerprint  string     `toml:"fingerprint"`
	ShortOptions string     `toml:"short_options"`
	LongOptions  string     `toml:"long_options"`
	Flags        []FlagSpec `toml:"flags"`
}

// Cache serves grammars from Dir, asking Source only when the stored
// fingerprint no longer matches.
type Cache struct {
	Dir    string
	Source Source
	Logger logger.Logger

	// OnDiscover, when set, is called before a grammar is regenerated.
	OnDiscover func(command, subcommand string)
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Path returns the cache file of a (command, subcommand) pair.
func (c *Cache) Path(command, subcommand string) string {
	name := unsafeNameChars.ReplaceAllString(command, "_")
	if subcommand != "" {
		name += "_" + unsafeNameChars.ReplaceAllString(subcommand, "_")
	}
	return filepath.Join(c.Dir, name+".toml")
}

// Get returns the grammar of command (and subcommand, when not empty).
func (c *Cache) Get(ctx context.Context, command, subcommand string) (*Grammar, error) {
	fingerprint, err := c.Source.Fingerprint(ctx, command, subcommand)
	if err != nil {
		return nil, err
	}

	path := c.Path(command, subcommand)
	if g, ok := c.load(path, fingerprint); ok {
		c.Logger.Debugf("Using cached grammar %s (%s)", path, fingerprint)
		return g, nil
	}

	lock := flock.New(path + ".lock")
	if err := os.MkdirAll(c.Dir, 0700); err != nil {
		c.Logger.Warnf("Cannot create grammar cache directory %s: %v", c.Dir, err)
	} else if err := lock.Lock(); err != nil {
		c.Logger.Warnf("Cannot lock grammar cache %s: %v", path, err)
	} else {
		defer func() {
			if err := lock.Unlock(); err != nil {
				c.Logger.Warnf("Cannot release lock on grammar cache %s: %v", path, err)
			}
		}()

		// Another invocation may have regenerated it while we waited.
		if g, ok := c.load(path, fingerprint); ok {
			return g, nil
		}
	}

	if c.OnDiscover != nil {
		c.OnDiscover(command, subcommand)
	}
	c.Logger.Debugf("Discovering flags of helm %s %s", command, subcommand)

	flags, err := c.Source.Flags(ctx, command, subcommand)
	if err != nil {
		return nil, err
	}
	g := New(flags)

	entry := Entry{
		Fingerprint:  fingerprint,
		ShortOptions: g.ShortSpec(),
		LongOptions:  g.LongSpec(),
		Flags:        g.Flags,
	}
	if err := configs.SaveTOML(path, entry); err != nil {
		c.Logger.Warnf("Cannot save grammar cache %s: %v", path, err)
	}

	return g, nil
}

// load returns the cached grammar at path if its fingerprint matches.
func (c *Cache) load(path, fingerprint string) (*Grammar, bool) {
	entry, err := ReadEntry(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.Logger.Warnf("Ignoring grammar cache %s: %v", path, err)
		}
		return nil, false
	}

	if entry.Fingerprint != fingerprint {
		c.Logger.Debugf("Grammar cache %s is stale (%q != %q)", path, entry.Fingerprint, fingerprint)
		return nil, false
	}
	return New(entry.Flags), true
}

// ReadEntry decodes the cache file at path.
func ReadEntry(path string) (*Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	entry := &Entry{}
	if err := configs.LoadTOML(path, entry); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrCacheCorrupt, err)
	}
	return entry, nil
}
