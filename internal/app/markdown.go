package app

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"
)

// Renderers are cached per (width, theme). Terminal resizes mint new widths
// freely, so the cache is bounded and dropped wholesale when it fills.
const maxCachedRenderers = 16

type rendererKey struct {
	width int
	dark  bool
}

var (
	rendererMu       sync.Mutex
	rendererCache    = map[rendererKey]*glamour.TermRenderer{}
	markdownDarkMode = true
)

func renderMarkdown(input string, width int) string {
	input = strings.TrimRight(input, "\n")
	if input == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := getRenderer(width, markdownBackgroundDark())
	if r == nil {
		return input
	}
	out, err := r.Render(input)
	if err != nil {
		return input
	}
	out = strings.TrimRight(out, "\n")
	out = xansi.Hardwrap(out, width, true)
	return strings.TrimRight(out, "\n")
}

func markdownBackgroundDark() bool {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	return markdownDarkMode
}

func setMarkdownBackgroundDark(dark bool) bool {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	changed := markdownDarkMode != dark
	markdownDarkMode = dark
	return changed
}

func getRenderer(width int, dark bool) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	key := rendererKey{width: width, dark: dark}
	if renderer, ok := rendererCache[key]; ok && renderer != nil {
		return renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(bubbleStyleConfig(dark)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	if len(rendererCache) >= maxCachedRenderers {
		rendererCache = map[rendererKey]*glamour.TermRenderer{}
	}
	rendererCache[key] = r
	return r
}

// bubbleStyleConfig trims glamour's document chrome: bubbles carry their own
// lipgloss padding, so the document renders flush with no outer margins.
func bubbleStyleConfig(dark bool) glamouransi.StyleConfig {
	base := styles.LightStyleConfig
	if dark {
		base = styles.DarkStyleConfig
	}
	zero := uint(0)
	base.Document.StylePrimitive.BlockPrefix = ""
	base.Document.StylePrimitive.BlockSuffix = ""
	base.Document.Margin = &zero
	base.CodeBlock.Margin = &zero
	faint := true
	quoteColor := "245"
	base.BlockQuote.StylePrimitive.Faint = &faint
	base.BlockQuote.StylePrimitive.Color = &quoteColor
	return base
}

// blockPrefixes are the line-leading markers escapeMarkdown neutralizes so a
// user's literal text cannot become a heading, quote, or list item. Code
// fences need no entry; the backtick escape already defuses them.
var blockPrefixes = []string{"#", ">", "- ", "* ", "+ "}

// escapeMarkdown neutralizes block-level markdown so user-authored text
// renders verbatim inside a bubble.
func escapeMarkdown(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.ReplaceAll(line, "`", "\\`")
		trimmed := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(trimmed)]
		if startsBlockSyntax(trimmed) {
			lines[i] = indent + "\\" + trimmed
			continue
		}
		lines[i] = indent + trimmed
	}
	return strings.Join(lines, "\n")
}

func startsBlockSyntax(line string) bool {
	for _, prefix := range blockPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return isNumberedList(line)
}

func isNumberedList(text string) bool {
	dot := strings.IndexByte(text, '.')
	if dot <= 0 {
		return false
	}
	if dot+1 >= len(text) || text[dot+1] != ' ' {
		return false
	}
	for i := 0; i < dot; i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}
