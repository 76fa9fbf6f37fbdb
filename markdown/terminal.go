package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/folio"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const minWrap = 10

type terminal struct {
	heading lipgloss.Style
	bold    lipgloss.Style
	italic  lipgloss.Style
	strike  lipgloss.Style
	code    lipgloss.Style
	link    lipgloss.Style
	muted   lipgloss.Style
}

func newTerminal(theme folio.Theme) *terminal {
	return &terminal{
		heading: lipgloss.NewStyle().Foreground(color(theme.Accent)).Bold(true),
		bold:    lipgloss.NewStyle().Bold(true),
		italic:  lipgloss.NewStyle().Italic(true),
		strike:  lipgloss.NewStyle().Strikethrough(true),
		code:    lipgloss.NewStyle().Foreground(color(theme.Accent)),
		link:    lipgloss.NewStyle().Underline(true),
		muted:   lipgloss.NewStyle().Foreground(color(theme.Muted)).Faint(true),
	}
}

func color(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (t *terminal) render(source []byte, width int) string {
	doc := md.Parser().Parse(text.NewReader(source))
	var buf bytes.Buffer
	t.blocks(doc, source, width, &buf)
	return strings.TrimRight(buf.String(), "\n")
}

// blocks renders the block children of node, separating siblings with a
// blank line.
func (t *terminal) blocks(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		before := buf.Len()
		t.block(c, source, width, buf)
		if buf.Len() > before && c.NextSibling() != nil {
			buf.WriteString("\n")
		}
	}
}

func (t *terminal) block(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		t.wrap(buf, t.inlines(n, source), width)

	case *ast.Heading:
		title := t.inlines(n, source)
		if n.Level == 1 {
			title = strings.ToUpper(title)
		}
		t.wrap(buf, t.heading.Render(title), width)

	case *ast.FencedCodeBlock:
		if lang := string(n.Language(source)); lang != "" {
			buf.WriteString(t.muted.Render(lang) + "\n")
		}
		t.codeLines(n, source, buf)

	case *ast.CodeBlock:
		t.codeLines(n, source, buf)

	case *ast.List:
		t.list(n, source, width, buf, 0)

	case *ast.Blockquote:
		var inner bytes.Buffer
		t.blocks(n, source, max(width-2, minWrap), &inner)
		bar := t.muted.Render("▎") + " "
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			buf.WriteString(bar + line + "\n")
		}

	case *ast.ThematicBreak:
		buf.WriteString(t.muted.Render(strings.Repeat("─", min(width, 40))) + "\n")

	case *east.Table:
		t.table(n, source, buf)

	case *ast.HTMLBlock:
		// Raw HTML is not shown.

	default:
		t.blocks(node, source, width, buf)
	}
}

func (t *terminal) wrap(buf *bytes.Buffer, s string, width int) {
	buf.WriteString(reflow(s, width))
	buf.WriteString("\n")
}

// reflow word-wraps s to width without the trailing padding lipgloss adds.
func reflow(s string, width int) string {
	lines := strings.Split(lipgloss.NewStyle().Width(width).Render(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func (t *terminal) codeLines(n ast.Node, source []byte, buf *bytes.Buffer) {
	gutter := t.muted.Render("│") + " "
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.WriteString(gutter + strings.TrimRight(string(seg.Value(source)), "\n") + "\n")
	}
}

func (t *terminal) list(n *ast.List, source []byte, width int, buf *bytes.Buffer, depth int) {
	number := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "• "
		if n.IsOrdered() {
			marker = fmt.Sprintf("%d. ", number)
			number++
		}
		prefix := strings.Repeat("  ", depth) + marker

		var content strings.Builder
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if content.Len() > 0 {
					content.WriteString(" ")
				}
				content.WriteString(t.inlines(in, source))
			case *ast.List:
				if content.Len() > 0 {
					t.item(buf, prefix, content.String(), width)
					content.Reset()
				}
				prefix = strings.Repeat(" ", len(prefix))
				t.list(in, source, width, buf, depth+1)
			default:
				var nested bytes.Buffer
				t.block(ic, source, width, &nested)
				content.WriteString(strings.TrimRight(nested.String(), "\n"))
			}
		}
		if content.Len() > 0 {
			t.item(buf, prefix, content.String(), width)
		}
	}
}

// item writes one list item, indenting continuation lines under the text.
func (t *terminal) item(buf *bytes.Buffer, prefix, content string, width int) {
	indent := lipgloss.Width(prefix)
	wrapped := reflow(content, max(width-indent, minWrap))
	pad := strings.Repeat(" ", indent)
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(prefix + line + "\n")
			continue
		}
		buf.WriteString(pad + line + "\n")
	}
}

func (t *terminal) table(n *east.Table, source []byte, buf *bytes.Buffer) {
	sep := t.muted.Render(" │ ")
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(t.inlines(cell, source)))
		}
		line := strings.Join(cells, sep)
		if _, header := row.(*east.TableHeader); header {
			line = t.bold.Render(line)
		}
		buf.WriteString(line + "\n")
	}
}

func (t *terminal) inlines(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		t.inline(c, source, &buf)
	}
	return buf.String()
}

func (t *terminal) inline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		switch {
		case n.HardLineBreak():
			buf.WriteByte('\n')
		case n.SoftLineBreak():
			buf.WriteByte(' ')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := t.inlines(n, source)
		if n.Level == 1 {
			buf.WriteString(t.italic.Render(inner))
		} else {
			buf.WriteString(t.bold.Render(inner))
		}

	case *east.Strikethrough:
		buf.WriteString(t.strike.Render(t.inlines(n, source)))

	case *east.TaskCheckBox:
		if n.IsChecked {
			buf.WriteString("[x] ")
		} else {
			buf.WriteString("[ ] ")
		}

	case *ast.CodeSpan:
		buf.WriteString(t.code.Render(t.inlines(n, source)))

	case *ast.Link:
		label := t.inlines(n, source)
		dest := string(n.Destination)
		buf.WriteString(t.link.Render(label))
		if label != dest {
			buf.WriteString(" " + t.muted.Render("("+dest+")"))
		}

	case *ast.AutoLink:
		buf.WriteString(t.link.Render(string(n.URL(source))))

	case *ast.Image:
		buf.WriteString(t.link.Render(t.inlines(n, source)))
		buf.WriteString(" " + t.muted.Render("("+string(n.Destination)+")"))

	case *ast.RawHTML:

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			t.inline(c, source, buf)
		}
	}
}
