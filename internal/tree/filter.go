package tree

import (
	"strings"

	"github.com/chmouel/lazystatus/internal/models"
)

// Merge tools leave these behind while resolving conflicts; they are backup
// copies, not tracked content.
var mergeArtifactMarkers = []string{".BACKUP.", ".BASE.", ".LOCAL.", ".REMOTE."}

// FilterMergeArtifacts drops known merge-tool backup files from records.
// When disabled the input is returned unchanged, order preserved. The
// caller's slice is never mutated.
func FilterMergeArtifacts(records []models.StatusFile, enabled bool) []models.StatusFile {
	if !enabled {
		return records
	}

	out := make([]models.StatusFile, 0, len(records))
	for _, rec := range records {
		if isMergeArtifact(rec.Path) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func isMergeArtifact(p string) bool {
	if strings.HasSuffix(p, ".orig") {
		return true
	}
	for _, marker := range mergeArtifactMarkers {
		if strings.Contains(p, marker) {
			return true
		}
	}
	return false
}
