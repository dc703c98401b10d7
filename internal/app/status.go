package app

import (
	"strings"

	"github.com/chmouel/lazystatus/internal/models"
)

// parseStatusRecords parses git status --porcelain=v2 output into records.
// Ordinary entries with both index and worktree changes produce one record
// per group so each header counts its own side of the change.
func parseStatusRecords(raw string) []models.StatusFile {
	raw = strings.TrimRight(raw, "\n")
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var records []models.StatusFile
	for _, line := range strings.Split(raw, "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "1 "):
			// 1 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <path>
			fields := strings.SplitN(line, " ", 9)
			if len(fields) < 9 {
				continue
			}
			records = append(records, recordsForXY(fields[1], fields[8], "")...)
		case strings.HasPrefix(line, "2 "):
			// 2 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <X><score> <path>\t<origPath>
			fields := strings.SplitN(line, " ", 10)
			if len(fields) < 10 {
				continue
			}
			newPath, oldPath, ok := strings.Cut(fields[9], "\t")
			if !ok {
				oldPath = ""
			}
			records = append(records, recordsForXY(fields[1], newPath, oldPath)...)
		case strings.HasPrefix(line, "u "):
			// u <XY> <sub> <m1> <m2> <m3> <mW> <h1> <h2> <h3> <path>
			fields := strings.SplitN(line, " ", 11)
			if len(fields) < 11 {
				continue
			}
			records = append(records, models.StatusFile{
				Path:    fields[10],
				Kind:    models.ChangeConflict,
				RawCode: fields[1],
				Group:   models.GroupUnstaged,
			})
		case strings.HasPrefix(line, "? "):
			records = append(records, models.StatusFile{
				Path:    strings.TrimPrefix(line, "? "),
				Kind:    models.ChangeUntracked,
				RawCode: "?",
				Group:   models.GroupUntracked,
			})
		}
	}
	return records
}

// recordsForXY splits a two-character porcelain code into per-group records:
// the X position reflects the index, the Y position the worktree.
func recordsForXY(xy, newPath, oldPath string) []models.StatusFile {
	if len(xy) < 2 {
		return nil
	}

	var records []models.StatusFile
	if xy[0] != '.' {
		records = append(records, models.StatusFile{
			Path:    newPath,
			Kind:    kindForCode(xy[0]),
			RawCode: string(xy[0]),
			OldPath: oldPath,
			Group:   models.GroupStaged,
		})
	}
	if xy[1] != '.' {
		records = append(records, models.StatusFile{
			Path:    newPath,
			Kind:    kindForCode(xy[1]),
			RawCode: string(xy[1]),
			OldPath: oldPath,
			Group:   models.GroupUnstaged,
		})
	}
	return records
}

func kindForCode(code byte) models.ChangeKind {
	switch code {
	case 'M', 'T':
		return models.ChangeModified
	case 'A':
		return models.ChangeAdded
	case 'D':
		return models.ChangeDeleted
	case 'U':
		return models.ChangeConflict
	default:
		return models.ChangeOther
	}
}
