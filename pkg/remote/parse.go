// pkg/remote/parse.go
package remote

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pilgrimtabby/gdrive-stash/pkg/fileinfo"
)

const (
	// DefaultFieldSeparator uses characters that are forbidden in Windows (?)
	// and classic macOS (:) filenames, so it cannot appear in a name created
	// on those systems.
	DefaultFieldSeparator = ":DELIMITER?"

	// CreatedLayout is the format of the created column.
	CreatedLayout = "2006-01-02 15:04:05"

	folderKindTag = "folder"
	recordFields  = 5
)

// ParseListing turns the output of a listing call into entries. Blank lines
// are skipped; an empty output is an empty directory. Times without a zone are
// read in loc and returned in UTC.
func ParseListing(output, sep string, loc *time.Location) ([]Entry, error) {
	var entries []Entry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := ParseRecord(line, sep, loc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ParseRecord parses a single "id, name, kind, size, created" record.
func ParseRecord(line, sep string, loc *time.Location) (Entry, error) {
	fields := strings.Split(line, sep)
	if len(fields) != recordFields {
		return Entry{}, fmt.Errorf("%w: expected %d fields in listing record, got %d: %q",
			ErrExternalTool, recordFields, len(fields), line)
	}

	id := strings.TrimSpace(fields[0])
	if id == "" {
		return Entry{}, fmt.Errorf("%w: listing record without id: %q", ErrExternalTool, line)
	}

	size, err := parseSize(fields[3])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad size in listing record %q: %v", ErrExternalTool, line, err)
	}

	created, err := time.ParseInLocation(CreatedLayout, strings.TrimSpace(fields[4]), loc)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad created time in listing record %q: %v", ErrExternalTool, line, err)
	}

	return Entry{
		ID:        id,
		Name:      fields[1],
		Kind:      kindFromTag(fields[2]),
		Size:      size,
		CreatedAt: created.UTC(),
	}, nil
}

// kindFromTag folds every non-folder type (regular, document, spreadsheet,
// shortcut...) into a plain file.
func kindFromTag(tag string) fileinfo.Kind {
	if strings.TrimSpace(tag) == folderKindTag {
		return fileinfo.KindDirectory
	}
	return fileinfo.KindFile
}

func parseSize(field string) (int64, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return -1, nil
	}
	n, err := humanize.ParseBytes(field)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}
