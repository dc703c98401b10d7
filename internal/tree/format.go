package tree

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazystatus/internal/models"
	"github.com/chmouel/lazystatus/internal/theme"
	"github.com/muesli/reflow/ansi"
)

// Tree connector glyphs.
const (
	glyphEdge = "│"
	glyphMid  = "├"
	glyphLast = "└"
	glyphDash = "─"
)

// truncateMargin is subtracted from the remaining width before fitting the
// display text; truncation only kicks in above minTruncateBudget.
const (
	truncateMargin    = 2
	minTruncateBudget = 10
	ellipsis          = "..."
)

// Glyphs configures the disclosure and folder markers.
type Glyphs struct {
	GroupOpen    string
	GroupClosed  string
	FolderOpen   string
	FolderClosed string
}

// DefaultGlyphs returns the default marker set.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		GroupOpen:    "▼",
		GroupClosed:  "▶",
		FolderOpen:   "",
		FolderClosed: "",
	}
}

// IconProvider resolves a file-type glyph for a path. A nil provider, or an
// empty result, degrades to no glyph; icon resolution never fails a render.
type IconProvider interface {
	IconFor(name string, isDir bool) string
}

// Selection identifies the node the cursor is on.
type Selection struct {
	Path  string
	Group models.Group
}

// Formatter renders one node to one styled display line. It is pure and
// reentrant; collaborators arrive through the constructor.
type Formatter struct {
	glyphs Glyphs
	icons  IconProvider

	groupStyle    lipgloss.Style
	dirStyle      lipgloss.Style
	textStyle     lipgloss.Style
	guideStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	statusStyles  map[models.ChangeKind]lipgloss.Style
	defaultStatus lipgloss.Style
}

// NewFormatter builds a Formatter over the given theme, icon provider, and
// glyph set. icons may be nil.
func NewFormatter(th *theme.Theme, icons IconProvider, glyphs Glyphs) *Formatter {
	return &Formatter{
		glyphs:        glyphs,
		icons:         icons,
		groupStyle:    lipgloss.NewStyle().Foreground(th.Accent).Bold(true),
		dirStyle:      lipgloss.NewStyle().Foreground(th.MutedFg),
		textStyle:     lipgloss.NewStyle().Foreground(th.TextFg),
		guideStyle:    lipgloss.NewStyle().Foreground(th.Border),
		selectedStyle: lipgloss.NewStyle().Foreground(th.AccentFg).Background(th.Accent).Bold(true),
		statusStyles: map[models.ChangeKind]lipgloss.Style{
			models.ChangeModified:  lipgloss.NewStyle().Foreground(th.WarnFg),
			models.ChangeAdded:     lipgloss.NewStyle().Foreground(th.SuccessFg),
			models.ChangeDeleted:   lipgloss.NewStyle().Foreground(th.ErrorFg),
			models.ChangeUntracked: lipgloss.NewStyle().Foreground(th.WarnFg),
			models.ChangeConflict:  lipgloss.NewStyle().Foreground(th.ErrorFg).Bold(true),
		},
		defaultStatus: lipgloss.NewStyle().Foreground(th.MutedFg),
	}
}

// Format maps a node to its display line.
func (f *Formatter) Format(node *Node, maxWidth int, sel Selection) string {
	switch node.Kind {
	case NodeGroup:
		return f.formatGroup(node, sel)
	case NodeDir:
		return f.formatDir(node, sel)
	case NodeFile:
		return f.formatFile(node, maxWidth, sel)
	default:
		return f.textStyle.Render(node.Label)
	}
}

func (f *Formatter) formatGroup(node *Node, sel Selection) string {
	marker := f.glyphs.GroupClosed
	if node.Expanded {
		marker = f.glyphs.GroupOpen
	}
	style := f.groupStyle
	if f.selected(node, sel) {
		style = f.selectedStyle
	}
	return style.Render(fmt.Sprintf("%s %s (%d)", marker, node.Label, node.Count))
}

func (f *Formatter) formatDir(node *Node, sel Selection) string {
	guides := f.indentGuides(node.Indent)

	folder := f.glyphs.FolderClosed
	if node.Expanded {
		folder = f.glyphs.FolderOpen
	}
	style := f.dirStyle
	if f.selected(node, sel) {
		style = f.selectedStyle
	}
	return guides + style.Render(iconWithSpace(folder)+node.Name)
}

func (f *Formatter) selected(node *Node, sel Selection) bool {
	return sel.Group == node.Group && sel.Group != "" && sel.Path == node.Path
}

func (f *Formatter) formatFile(node *Node, maxWidth int, sel Selection) string {
	guides := f.indentGuides(node.Indent)

	rec := node.File
	statusGlyph := rec.Glyph() + " "

	icon := ""
	if f.icons != nil {
		icon = f.icons.IconFor(node.Name, false)
	}

	// Flat mode (no indent state) shows the full relative path.
	text := node.Name
	if node.Indent == nil {
		text = rec.Path
	}
	if rec.IsRename() {
		text = rec.OldPath + " → " + text
	}

	emitted := ansi.PrintableRuneWidth(guides) + ansi.PrintableRuneWidth(statusGlyph) + ansi.PrintableRuneWidth(iconWithSpace(icon))
	budget := maxWidth - emitted - truncateMargin
	if budget > minTruncateBudget && len([]rune(text)) > budget {
		text = string([]rune(text)[:budget-len(ellipsis)]) + ellipsis
	}

	statusStyle, ok := f.statusStyles[rec.Kind]
	if !ok {
		statusStyle = f.defaultStatus
	}
	textStyle := f.textStyle
	if f.selected(node, sel) {
		statusStyle = f.selectedStyle
		textStyle = f.selectedStyle
	}

	return guides + statusStyle.Render(statusGlyph) + textStyle.Render(iconWithSpace(icon)+text)
}

// indentGuides renders the connector prefix: for every ancestor level an
// edge connector (or blank filler below a last sibling) padded by two
// spaces, then the node's own branch glyph and a dash. A nil state renders
// no prefix.
func (f *Formatter) indentGuides(state IndentState) string {
	if len(state) == 0 {
		return ""
	}

	var b strings.Builder
	for _, last := range state[:len(state)-1] {
		if last {
			b.WriteString(" ")
		} else {
			b.WriteString(glyphEdge)
		}
		b.WriteString("  ")
	}
	if state[len(state)-1] {
		b.WriteString(glyphLast)
	} else {
		b.WriteString(glyphMid)
	}
	b.WriteString(glyphDash)
	return f.guideStyle.Render(b.String())
}

func iconWithSpace(icon string) string {
	if icon == "" {
		return ""
	}
	return icon + " "
}
