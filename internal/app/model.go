// Package app implements the lazystatus TUI.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazystatus/internal/config"
	"github.com/chmouel/lazystatus/internal/git"
	"github.com/chmouel/lazystatus/internal/icons"
	"github.com/chmouel/lazystatus/internal/models"
	"github.com/chmouel/lazystatus/internal/tree"

	"github.com/chmouel/lazystatus/internal/theme"
)

// groupOrder fixes the header order of the status view.
var groupOrder = []models.Group{models.GroupStaged, models.GroupUnstaged, models.GroupUntracked}

// Model is the top-level bubbletea model.
type Model struct {
	cfg       *config.AppConfig
	th        *theme.Theme
	runner    *git.Runner
	resolver  *git.Resolver
	formatter *tree.Formatter
	watch     *watchService

	gitRoot string
	records []models.StatusFile

	nodes           []*tree.Node
	visible         []*tree.Node
	collapsed       map[string]bool
	collapsedGroups map[models.Group]bool
	cursor          int
	treeView        bool

	width  int
	height int

	viewport       viewport.Model
	spin           spinner.Model
	loadingContent bool
	contentReq     int
	contentTitle   string

	errMsg   string
	quitting bool
}

// NewModel wires the application model from configuration.
func NewModel(cfg *config.AppConfig) *Model {
	th := theme.ByName(cfg.Theme)

	runner := git.NewRunner(cfg.Timeout())

	var provider tree.IconProvider
	if cfg.ShowIcons {
		provider = icons.NewProvider()
	}

	glyphs := tree.DefaultGlyphs()
	if cfg.FolderOpenIcon != "" {
		glyphs.FolderOpen = cfg.FolderOpenIcon
	}
	if cfg.FolderClosedIcon != "" {
		glyphs.FolderClosed = cfg.FolderClosedIcon
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return &Model{
		cfg:             cfg,
		th:              th,
		runner:          runner,
		resolver:        git.NewResolver(runner),
		formatter:       tree.NewFormatter(th, provider, glyphs),
		watch:           newWatchService(runner),
		collapsed:       make(map[string]bool),
		collapsedGroups: make(map[models.Group]bool),
		treeView:        cfg.TreeView,
		viewport:        viewport.New(0, 0),
		spin:            sp,
	}
}

// Init resolves the repository root; everything else follows from that.
func (m *Model) Init() tea.Cmd {
	wd, err := os.Getwd()
	if err != nil {
		return func() tea.Msg { return gitRootMsg{err: err} }
	}
	// The resolver wants a file path and queries from its containing
	// directory, so anchor on a name inside the working directory.
	anchor := filepath.Join(wd, ".git")
	return m.resolver.GitRootCmd(context.Background(), anchor, func(root string, err error) tea.Msg {
		return gitRootMsg{root: root, err: err}
	})
}

// Close releases background resources.
func (m *Model) Close() {
	m.watch.Stop()
}

// Update is the single-threaded message loop; every asynchronous git result
// re-enters here exactly once.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.contentWidth()
		m.viewport.Height = m.paneHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case gitRootMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.gitRoot = msg.root
		cmds := []tea.Cmd{m.refreshCmd()}
		if m.cfg.AutoRefresh {
			if started, err := m.watch.Start(context.Background(), m.gitRoot); err == nil && started {
				cmds = append(cmds, m.waitWatchCmd())
			}
		}
		return m, tea.Batch(cmds...)

	case statusMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.records = msg.records
		m.rebuildNodes()
		return m, nil

	case watchEventMsg:
		cmds := []tea.Cmd{m.waitWatchCmd()}
		if m.watch.ShouldRefresh(time.Now()) {
			cmds = append(cmds, m.refreshCmd())
		}
		return m, tea.Batch(cmds...)

	case contentMsg:
		if msg.id != m.contentReq {
			// A newer request superseded this one; discard.
			return m, nil
		}
		m.loadingContent = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.contentTitle = msg.path + " @ " + shortHash(msg.revision)
		m.viewport.SetContent(strings.Join(msg.lines, "\n"))
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.loadingContent {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.watch.Stop()
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "enter", " ":
		return m, m.toggleSelected()

	case "t":
		m.treeView = !m.treeView
		m.rebuildNodes()
		return m, nil

	case "r":
		return m, m.refreshCmd()

	case "o":
		node := m.selectedNode()
		if node == nil || node.Kind != tree.NodeFile {
			return m, nil
		}
		return m, m.fetchContentCmd(node)

	case "pgdown", "ctrl+d":
		m.viewport.HalfViewDown()
		return m, nil

	case "pgup", "ctrl+u":
		m.viewport.HalfViewUp()
		return m, nil
	}
	return m, nil
}

func (m *Model) toggleSelected() tea.Cmd {
	node := m.selectedNode()
	if node == nil {
		return nil
	}
	switch node.Kind {
	case tree.NodeGroup:
		m.collapsedGroups[node.Group] = !m.collapsedGroups[node.Group]
		m.rebuildVisible()
	case tree.NodeDir:
		m.collapsed[node.Path] = !m.collapsed[node.Path]
		m.rebuildVisible()
	case tree.NodeFile:
		return m.fetchContentCmd(node)
	}
	return nil
}

func (m *Model) selectedNode() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

// refreshCmd re-runs git status; the resulting records replace the current
// set wholesale and the tree is rebuilt from scratch.
func (m *Model) refreshCmd() tea.Cmd {
	return m.runner.Do(
		context.Background(),
		[]string{"status", "--porcelain=v2"},
		git.Options{Dir: m.gitRoot},
		func(out string, err error) tea.Msg {
			if err != nil {
				return statusMsg{err: err}
			}
			return statusMsg{records: parseStatusRecords(out)}
		},
	)
}

// fetchContentCmd resolves HEAD to its commit hash and fetches the file's
// content at it. The request id lets the model discard results that a newer
// request has overtaken.
func (m *Model) fetchContentCmd(node *tree.Node) tea.Cmd {
	m.contentReq++
	id := m.contentReq
	m.loadingContent = true
	path := node.File.Path
	gitRoot := m.gitRoot

	fetch := func() tea.Msg {
		ctx := context.Background()
		hash, err := m.resolver.ResolveRevision(ctx, "HEAD", gitRoot)
		if err != nil {
			return contentMsg{id: id, path: path, err: err}
		}
		lines, err := m.resolver.FileContent(ctx, hash, gitRoot, path)
		return contentMsg{id: id, revision: hash, path: path, lines: lines, err: err}
	}
	return tea.Batch(m.spin.Tick, fetch)
}

func (m *Model) waitWatchCmd() tea.Cmd {
	ch := m.watch.Next()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return watchEventMsg{}
	}
}

// rebuildNodes rebuilds the node list in full from the current records.
// Nothing from the previous tree carries over.
func (m *Model) rebuildNodes() {
	filtered := tree.FilterMergeArtifacts(m.records, m.cfg.HideMergeArtifacts)

	var all []*tree.Node
	for _, group := range groupOrder {
		recs := recordsInGroup(filtered, group)
		if len(recs) == 0 {
			continue
		}
		if m.treeView {
			all = append(all, tree.BuildTreeNodes(recs, m.gitRoot, group)...)
		} else {
			all = append(all, tree.BuildFlatNodes(recs, m.gitRoot, group)...)
		}
	}
	m.nodes = all
	m.rebuildVisible()
}

func (m *Model) rebuildVisible() {
	vis := tree.Visible(m.nodes, m.collapsed)

	out := make([]*tree.Node, 0, len(vis))
	skipGroup := false
	for _, node := range vis {
		if node.Kind == tree.NodeGroup {
			node.Expanded = !m.collapsedGroups[node.Group]
			skipGroup = !node.Expanded
			out = append(out, node)
			continue
		}
		if skipGroup {
			continue
		}
		out = append(out, node)
	}
	m.visible = out

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func recordsInGroup(records []models.StatusFile, group models.Group) []models.StatusFile {
	out := make([]models.StatusFile, 0, len(records))
	for _, rec := range records {
		if rec.Group == group {
			out = append(out, rec)
		}
	}
	return out
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
