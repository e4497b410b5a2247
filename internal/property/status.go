package property

import "fmt"

// Status is the legacy string form of the publication flag. Older feeds
// and clients still send "Published"/"Draft"; the catalog stores only
// the boolean, so this type lives purely on the API boundary.
type Status string

const (
	StatusPublished Status = "Published"
	StatusDraft     Status = "Draft"
)

// StatusFor maps the stored publication flag to its legacy label.
func StatusFor(published bool) Status {
	if published {
		return StatusPublished
	}
	return StatusDraft
}

// ParseStatus maps a legacy status label to the publication flag.
func ParseStatus(s string) (bool, error) {
	switch Status(s) {
	case StatusPublished:
		return true, nil
	case StatusDraft:
		return false, nil
	}
	return false, fmt.Errorf("unknown status %q", s)
}
