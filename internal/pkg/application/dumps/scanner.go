package dumps

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/config"
	"github.com/diwise/wikibase-dcatap/internal/pkg/domain"
)

const YearMonthDayISO8601 string = "2006-01-02"

var dumpDatePattern = regexp.MustCompile(`^[0-9]+$`)

// Pattern is the expected file name pattern for one format/compression combination
type Pattern struct {
	Key  string
	Glob string
}

func Key(format, compression string) string {
	return format + compression
}

// Patterns returns one file name pattern per compression and format, in
// configuration order with compressions in the outer loop
func Patterns(info *config.Info) ([]Pattern, error) {
	patterns := []Pattern{}

	for _, c := range info.Compressions {
		for _, mt := range info.MediaTypes {
			glob := "*-" + mt.FilePrefix + "." + mt.Key
			if c.Name != "" {
				glob += "." + c.Name
			}

			if _, err := filepath.Match(glob, ""); err != nil {
				return nil, domain.MalformedKey("dump-info.mediatype."+mt.Key+".prefix", "a valid file name prefix")
			}

			patterns = append(patterns, Pattern{Key: Key(mt.Key, c.Name), Glob: glob})
		}
	}

	return patterns, nil
}

// Scan walks the all digit subdirectories of root and records every file that
// matches one of the configured dump patterns. Directories without any match
// are left out of the inventory.
func Scan(ctx context.Context, root string, info *config.Info) (*Inventory, error) {
	log := logging.GetFromContext(ctx)

	patterns, err := Patterns(info)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &domain.IOError{Op: "read dump directory", Path: root, Err: err}
	}

	inventory := NewInventory()

	for _, e := range entries {
		if !e.IsDir() || !dumpDatePattern.MatchString(e.Name()) {
			continue
		}

		date := e.Name()
		err := scanDumpDirectory(ctx, root, date, patterns, inventory)
		if err != nil {
			return nil, err
		}
	}

	log.Info().Msgf("found %d dumps in %s", inventory.Len(), root)

	return inventory, nil
}

func scanDumpDirectory(ctx context.Context, root, date string, patterns []Pattern, inventory *Inventory) error {
	log := logging.GetFromContext(ctx)

	dir := filepath.Join(root, date)
	files, err := os.ReadDir(dir)
	if err != nil {
		return &domain.IOError{Op: "read dump directory", Path: dir, Err: err}
	}

	for _, f := range files {
		if f.IsDir() {
			continue
		}

		key, ok := match(f.Name(), patterns)
		if !ok {
			continue
		}

		// stat rather than lstat so that symlinked dumps report their real size
		fi, err := os.Stat(filepath.Join(dir, f.Name()))
		if err != nil {
			return &domain.IOError{Op: "stat dump file", Path: filepath.Join(dir, f.Name()), Err: err}
		}
		if !fi.Mode().IsRegular() {
			continue
		}

		file := File{
			Timestamp: fi.ModTime().UTC().Format(YearMonthDayISO8601),
			ByteSize:  fi.Size(),
			Filename:  path.Join(date, f.Name()),
		}

		if inventory.Add(date, key, file) {
			log.Debug().Str("dumpDate", date).Str("key", key).Msgf("found %s", file)
		} else {
			log.Debug().Str("dumpDate", date).Str("key", key).Msgf("ignoring %s, key already taken", f.Name())
		}
	}

	return nil
}

func match(name string, patterns []Pattern) (string, bool) {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p.Glob, name); ok {
			return p.Key, true
		}
	}
	return "", false
}

func (f File) String() string {
	return fmt.Sprintf("%s (%d bytes, %s)", f.Filename, f.ByteSize, f.Timestamp)
}
