package dashboard

import (
	"reflect"
	"sort"
)

// CommitDecision is the outcome of an inline-edit commit attempt.
type CommitDecision int

const (
	// CommitNoop means no field was being edited.
	CommitNoop CommitDecision = iota
	// CommitUnchanged means the value matched the original; the edit ends
	// silently without any write.
	CommitUnchanged
	// CommitChanged means the value differs and a field update should be
	// issued. The controller stays in editing until Complete or Fail.
	CommitChanged
)

// EditController implements per-field inline editing on the detail view.
// At most one field is in edit mode at a time, tracked by field name:
// beginning an edit on a new field implicitly exits any other open edit.
type EditController struct {
	field     string
	original  any
	attempted any
}

// Begin enters edit mode for field, capturing the original value the commit
// will be compared against.
func (c *EditController) Begin(field string, original any) {
	c.field = field
	c.original = original
	c.attempted = nil
}

// Editing returns the field currently in edit mode, if any.
func (c *EditController) Editing() (string, bool) {
	return c.field, c.field != ""
}

// Commit compares value against the original: unchanged values end the edit
// silently, changed values keep the controller in editing until the update
// round trip settles via Complete or Fail.
func (c *EditController) Commit(value any) CommitDecision {
	if c.field == "" {
		return CommitNoop
	}
	if ValuesEqual(c.original, value) {
		c.exit()
		return CommitUnchanged
	}
	c.attempted = value
	return CommitChanged
}

// Complete ends the edit after a successful update.
func (c *EditController) Complete() {
	c.exit()
}

// Fail keeps the edit open with the attempted value retained, so no input
// is silently lost.
func (c *EditController) Fail() {}

// Attempted returns the value of the last failed or in-flight commit.
func (c *EditController) Attempted() any {
	return c.attempted
}

// Cancel aborts without writing and returns the original value to restore.
func (c *EditController) Cancel() any {
	original := c.original
	c.exit()
	return original
}

func (c *EditController) exit() {
	c.field = ""
	c.original = nil
	c.attempted = nil
}

// ValuesEqual reports whether an attempted field value matches the original.
// Strings compare byte-for-byte (optional strings treat nil as empty), tag
// slices compare as sets with case-sensitive membership, and anything else
// falls back to structural equality.
func ValuesEqual(original, value any) bool {
	switch o := normalize(original).(type) {
	case string:
		v, ok := normalize(value).(string)
		return ok && o == v
	case []string:
		v, ok := normalize(value).([]string)
		return ok && tagSetsEqual(o, v)
	default:
		return reflect.DeepEqual(normalize(original), normalize(value))
	}
}

func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case []string:
		if t == nil {
			return []string{}
		}
		return t
	default:
		return v
	}
}

func tagSetsEqual(a, b []string) bool {
	return reflect.DeepEqual(tagSet(a), tagSet(b))
}

func tagSet(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	set := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		set = append(set, tag)
	}
	sort.Strings(set)
	return set
}
