// pkg/ignore/ignore.go
package ignore

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sabhiram/go-gitignore" // Using this library for pattern matching
	"github.com/spf13/afero"
)

const IgnoreFileName = ".gdrive-stash-ignore"

// defaultPatterns are never uploaded.
var defaultPatterns = []string{
	".DS_Store",
	IgnoreFileName,
}

// Matcher holds the ignore patterns.
type Matcher struct {
	ignoreMatcher *ignore.GitIgnore
	patterns      []string
}

// NewMatcher creates a Matcher from the built-in defaults, the CLI exclude
// patterns and the ignore file in the source directory, if there is one.
func NewMatcher(fsys afero.Fs, sourceDir string, cliExcludes []string) (*Matcher, error) {
	ignoreFilePath := filepath.Join(sourceDir, IgnoreFileName)

	patterns := append([]string{}, defaultPatterns...)
	patterns = append(patterns, cliExcludes...)

	// Read the ignore file if it exists
	file, err := fsys.Open(ignoreFilePath)
	switch {
	case err == nil:
		defer file.Close()

		fromFile := 0
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			// Ignore empty lines and comments
			if line != "" && !strings.HasPrefix(line, "#") {
				patterns = append(patterns, line)
				fromFile++
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", ignoreFilePath, err)
		}
		slog.Debug("loaded ignore file", "path", ignoreFilePath, "rules", fromFile)
	case os.IsNotExist(err):
		// No ignore file, defaults and CLI patterns only
	default:
		return nil, fmt.Errorf("failed to open %s: %w", ignoreFilePath, err)
	}

	return &Matcher{
		ignoreMatcher: ignore.CompileIgnoreLines(patterns...),
		patterns:      patterns,
	}, nil
}

// Matches checks if a given path (relative to the source directory) should be ignored.
// Directories are matched with a trailing slash so that "dir/" patterns apply.
func (m *Matcher) Matches(relPath string, isDir bool) bool {
	if m == nil || m.ignoreMatcher == nil {
		return false
	}
	unixPath := path.Clean(filepath.ToSlash(relPath))
	if isDir {
		unixPath += "/"
	}
	return m.ignoreMatcher.MatchesPath(unixPath)
}

// Patterns returns every compiled pattern, defaults first.
func (m *Matcher) Patterns() []string {
	return m.patterns
}
