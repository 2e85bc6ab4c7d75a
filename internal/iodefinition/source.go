// Package iodefinition reads versioned view definitions from SQL files
// named <name>_v<NN>.sql, for example people_v02.sql. Definitions of views
// outside the default schema keep the schema in the file name
// (analytics.totals_v01.sql).
package iodefinition

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"

	"github.com/gnames/gnview/pkg/lifecycle"
	"github.com/gnames/gnview/pkg/view"
)

// Latest asks Definition for the highest version available.
const Latest = 0

var (
	versionRe = regexp.MustCompile(`_v(\d+)\.sql$`)
	globRe    = regexp.MustCompile(`([*?\[\\])`)
)

type source struct {
	dir string
}

// New creates a DefinitionSource that reads files from dir.
func New(dir string) lifecycle.DefinitionSource {
	return &source{dir: dir}
}

// FileName returns the file name of a definition version.
func FileName(name string, version int) string {
	return fmt.Sprintf("%s_v%02d.sql", name, version)
}

// Definition implements lifecycle.DefinitionSource. Version Latest picks
// the highest version found in the directory.
func (s *source) Definition(name string, version int) (string, error) {
	n, err := view.ParseName(name)
	if err != nil {
		return "", err
	}
	base := n.String()

	if version < 0 {
		return "", VersionError(base, version)
	}
	if version == Latest {
		versions, err := s.Versions(base)
		if err != nil {
			return "", err
		}
		if len(versions) == 0 {
			return "", NotFoundError(filepath.Join(s.dir, base+"_v*.sql"))
		}
		version = versions[len(versions)-1]
	}

	path := filepath.Join(s.dir, FileName(base, version))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", NotFoundError(path)
	}

	res := view.Normalize(string(data))
	if res == "" {
		return "", EmptyError(path)
	}
	slog.Debug("Loaded view definition", "path", path)
	return res, nil
}

// Versions returns sorted versions of definition files of a view.
func (s *source) Versions(name string) ([]int, error) {
	pattern := filepath.Join(s.dir, globEscape(name)+"_v*.sql")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var res []int
	for _, v := range paths {
		m := versionRe.FindStringSubmatch(filepath.Base(v))
		if m == nil {
			continue
		}
		version, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		res = append(res, version)
	}
	slices.Sort(res)
	return res, nil
}

func globEscape(s string) string {
	return globRe.ReplaceAllString(s, `\$1`)
}
