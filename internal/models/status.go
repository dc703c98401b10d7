// Package models holds the data types shared between the git layer and the UI.
package models

// ChangeKind classifies a file's change.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota
	ChangeAdded
	ChangeDeleted
	ChangeUntracked
	ChangeConflict
	ChangeOther
)

// Group partitions status records for header grouping.
type Group string

const (
	GroupStaged    Group = "staged"
	GroupUnstaged  Group = "unstaged"
	GroupUntracked Group = "untracked"
)

// StatusFile represents a file entry from git status.
// Path is repository-relative with forward slashes. OldPath is set for
// renames and copies. RawCode carries the original status code so an
// unrecognized kind can still be displayed.
type StatusFile struct {
	Path    string
	Kind    ChangeKind
	RawCode string
	OldPath string
	Group   Group
}

// Glyph returns the status marker for the record.
// Unrecognized kinds fall back to the raw code rather than erroring.
func (f StatusFile) Glyph() string {
	switch f.Kind {
	case ChangeModified:
		return "M"
	case ChangeAdded:
		return "A"
	case ChangeDeleted:
		return "D"
	case ChangeUntracked:
		return "??"
	case ChangeConflict:
		return "!"
	default:
		return f.RawCode
	}
}

// IsRename reports whether the record tracks a renamed file.
func (f StatusFile) IsRename() bool {
	return f.OldPath != ""
}
