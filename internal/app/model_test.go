package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazystatus/internal/config"
	"github.com/chmouel/lazystatus/internal/models"
	"github.com/chmouel/lazystatus/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(config.DefaultConfig())
	m.gitRoot = "/repo"
	m.width = 80
	m.height = 24
	return m
}

func deliver(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(*Model)
	require.True(t, ok)
	return next
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testRecords() []models.StatusFile {
	return []models.StatusFile{
		{Path: "cmd/main.go", Kind: models.ChangeAdded, RawCode: "A", Group: models.GroupStaged},
		{Path: "internal/app/model.go", Kind: models.ChangeModified, RawCode: "M", Group: models.GroupUnstaged},
		{Path: "internal/app/render.go", Kind: models.ChangeModified, RawCode: "M", Group: models.GroupUnstaged},
		{Path: "notes.txt", Kind: models.ChangeUntracked, RawCode: "?", Group: models.GroupUntracked},
	}
}

func visiblePaths(m *Model) []string {
	var out []string
	for _, n := range m.visible {
		if n.Kind == tree.NodeGroup {
			out = append(out, "group:"+string(n.Group))
			continue
		}
		out = append(out, n.Path)
	}
	return out
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(config.DefaultConfig())

	assert.True(t, m.treeView)
	assert.Empty(t, m.visible)
	assert.Zero(t, m.cursor)
	assert.NotNil(t, m.resolver)
	assert.NotNil(t, m.formatter)
}

func TestStatusMsgRebuildsVisibleNodes(t *testing.T) {
	m := newTestModel(t)

	m = deliver(t, m, statusMsg{records: testRecords()})

	assert.Equal(t, []string{
		"group:staged",
		"cmd",
		"cmd/main.go",
		"group:unstaged",
		"internal",
		"internal/app",
		"internal/app/model.go",
		"internal/app/render.go",
		"group:untracked",
		"notes.txt",
	}, visiblePaths(m))
}

func TestStatusMsgErrorKeepsRecords(t *testing.T) {
	m := newTestModel(t)
	m = deliver(t, m, statusMsg{records: testRecords()})
	before := visiblePaths(m)

	m = deliver(t, m, statusMsg{err: assert.AnError})
	assert.Equal(t, before, visiblePaths(m))
	assert.NotEmpty(t, m.errMsg)
}

func TestCursorMovement(t *testing.T) {
	m := newTestModel(t)
	m = deliver(t, m, statusMsg{records: testRecords()})

	assert.Equal(t, 0, m.cursor)
	m = deliver(t, m, key("k"))
	assert.Equal(t, 0, m.cursor, "cursor stays at top")

	m = deliver(t, m, key("j"))
	m = deliver(t, m, key("j"))
	assert.Equal(t, 2, m.cursor)

	for range 20 {
		m = deliver(t, m, key("j"))
	}
	assert.Equal(t, len(m.visible)-1, m.cursor, "cursor stays at bottom")
}

func TestToggleDirectoryCollapse(t *testing.T) {
	m := newTestModel(t)
	m = deliver(t, m, statusMsg{records: testRecords()})

	// Move to the "internal" directory and collapse it.
	for visiblePaths(m)[m.cursor] != "internal" {
		m = deliver(t, m, key("j"))
	}
	m = deliver(t, m, key(" "))

	paths := visiblePaths(m)
	assert.Contains(t, paths, "internal")
	assert.NotContains(t, paths, "internal/app")
	assert.NotContains(t, paths, "internal/app/model.go")

	// Toggling again restores the subtree.
	m = deliver(t, m, key(" "))
	assert.Contains(t, visiblePaths(m), "internal/app/model.go")
}

func TestToggleGroupCollapse(t *testing.T) {
	m := newTestModel(t)
	m = deliver(t, m, statusMsg{records: testRecords()})

	// Cursor starts on the staged group header.
	m = deliver(t, m, key(" "))

	paths := visiblePaths(m)
	assert.Contains(t, paths, "group:staged")
	assert.NotContains(t, paths, "cmd/main.go")
	assert.Contains(t, paths, "group:unstaged", "other groups unaffected")
	assert.Contains(t, paths, "internal/app/model.go")
}

func TestTreeViewToggle(t *testing.T) {
	m := newTestModel(t)
	m = deliver(t, m, statusMsg{records: testRecords()})

	m = deliver(t, m, key("t"))
	assert.False(t, m.treeView)
	assert.Equal(t, []string{
		"group:staged",
		"cmd/main.go",
		"group:unstaged",
		"internal/app/model.go",
		"internal/app/render.go",
		"group:untracked",
		"notes.txt",
	}, visiblePaths(m))

	m = deliver(t, m, key("t"))
	assert.True(t, m.treeView)
	assert.Contains(t, visiblePaths(m), "internal/app")
}

func TestCursorClampsAfterShrink(t *testing.T) {
	m := newTestModel(t)
	m = deliver(t, m, statusMsg{records: testRecords()})
	for range len(m.visible) {
		m = deliver(t, m, key("j"))
	}

	m = deliver(t, m, statusMsg{records: testRecords()[:1]})
	assert.Less(t, m.cursor, len(m.visible))
}

func TestContentMsgStaleIDDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.contentReq = 2
	m.loadingContent = true

	m = deliver(t, m, contentMsg{id: 1, revision: "abc", path: "old.go", lines: []string{"stale"}})

	assert.True(t, m.loadingContent, "stale result must not clear the newer request")
	assert.Empty(t, m.contentTitle)
}

func TestContentMsgCurrentIDApplied(t *testing.T) {
	m := newTestModel(t)
	m.contentReq = 2
	m.loadingContent = true

	m = deliver(t, m, contentMsg{
		id:       2,
		revision: "a1b2c3d4e5f6",
		path:     "src/a.go",
		lines:    []string{"package a", ""},
	})

	assert.False(t, m.loadingContent)
	assert.Equal(t, "src/a.go @ a1b2c3d4", m.contentTitle)
}

func TestContentMsgErrorShown(t *testing.T) {
	m := newTestModel(t)
	m.contentReq = 1
	m.loadingContent = true

	m = deliver(t, m, contentMsg{id: 1, err: assert.AnError})
	assert.False(t, m.loadingContent)
	assert.NotEmpty(t, m.errMsg)
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.True(t, updated.(*Model).quitting)
}

func TestHiddenMergeArtifactsExcluded(t *testing.T) {
	m := newTestModel(t)
	recs := append(testRecords(), models.StatusFile{
		Path: "a.go.orig", Kind: models.ChangeUntracked, RawCode: "?", Group: models.GroupUntracked,
	})

	m = deliver(t, m, statusMsg{records: recs})
	assert.NotContains(t, visiblePaths(m), "a.go.orig")

	m.cfg.HideMergeArtifacts = false
	m = deliver(t, m, statusMsg{records: recs})
	assert.Contains(t, visiblePaths(m), "a.go.orig")
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "a1b2c3d4", shortHash("a1b2c3d4e5f6"))
	assert.Equal(t, "abc", shortHash("abc"))
}
