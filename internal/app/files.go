package app

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const (
	maxFileEntries = 500
	maxFileDepth   = 6
)

var skippedDirNames = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	".venv":        true,
}

type fileEntry struct {
	Path  string // relative to the scanned root
	IsDir bool
	Depth int
}

// scanFileTree lists the working directory up to a bounded depth and entry
// count, directories first within each parent.
func scanFileTree(root string, limit int) ([]fileEntry, error) {
	var entries []fileEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		depth := strings.Count(rel, string(filepath.Separator))
		if d.IsDir() {
			name := d.Name()
			if skippedDirNames[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if depth >= maxFileDepth {
				return filepath.SkipDir
			}
		} else if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		entries = append(entries, fileEntry{Path: rel, IsDir: d.IsDir(), Depth: depth})
		if limit > 0 && len(entries) >= limit {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// FilePane shows the working directory and lets the user attach files to the
// next message as @references. A watcher keeps the listing fresh.
type FilePane struct {
	root     string
	entries  []fileEntry
	cursor   int
	attached map[string]bool
	watcher  *fsnotify.Watcher
	width    int
	height   int
	scroll   int
}

func NewFilePane(root string, width, height int) *FilePane {
	return &FilePane{
		root:     root,
		attached: map[string]bool{},
		width:    width,
		height:   height,
	}
}

func (f *FilePane) Resize(width, height int) {
	f.width = width
	f.height = height
}

func (f *FilePane) Root() string {
	if f == nil {
		return ""
	}
	return f.root
}

func (f *FilePane) SetEntries(entries []fileEntry) {
	f.entries = entries
	if f.cursor >= len(entries) {
		f.cursor = max(0, len(entries)-1)
	}
	for path := range f.attached {
		if !f.hasEntry(path) {
			delete(f.attached, path)
		}
	}
}

func (f *FilePane) hasEntry(path string) bool {
	for _, e := range f.entries {
		if e.Path == path {
			return true
		}
	}
	return false
}

func (f *FilePane) MoveCursor(delta int) {
	if len(f.entries) == 0 {
		return
	}
	f.cursor = clamp(f.cursor+delta, 0, len(f.entries)-1)
	visible := max(1, f.height-1)
	if f.cursor < f.scroll {
		f.scroll = f.cursor
	}
	if f.cursor >= f.scroll+visible {
		f.scroll = f.cursor - visible + 1
	}
}

// ToggleAttach marks the file under the cursor for inclusion in the next
// send. Directories are not attachable.
func (f *FilePane) ToggleAttach() (string, bool) {
	if f.cursor < 0 || f.cursor >= len(f.entries) {
		return "", false
	}
	entry := f.entries[f.cursor]
	if entry.IsDir {
		return "", false
	}
	if f.attached[entry.Path] {
		delete(f.attached, entry.Path)
		return entry.Path, false
	}
	f.attached[entry.Path] = true
	return entry.Path, true
}

// AttachedRefs returns the attachment list in listing order.
func (f *FilePane) AttachedRefs() []string {
	if f == nil || len(f.attached) == 0 {
		return nil
	}
	refs := make([]string, 0, len(f.attached))
	for _, entry := range f.entries {
		if f.attached[entry.Path] {
			refs = append(refs, entry.Path)
		}
	}
	return refs
}

func (f *FilePane) ClearAttachments() {
	f.attached = map[string]bool{}
}

// StartWatching registers a recursive watch on the root's directories. The
// returned command blocks on the watcher channel and must be re-issued after
// each delivered event.
func (f *FilePane) StartWatching() error {
	if f.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	f.watcher = watcher
	if err := watcher.Add(f.root); err != nil {
		watcher.Close()
		f.watcher = nil
		return err
	}
	dirs, _ := os.ReadDir(f.root)
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		if skippedDirNames[d.Name()] || strings.HasPrefix(d.Name(), ".") {
			continue
		}
		// best effort; a failed subdirectory watch only costs freshness
		_ = watcher.Add(filepath.Join(f.root, d.Name()))
	}
	return nil
}

func (f *FilePane) Close() {
	if f == nil || f.watcher == nil {
		return
	}
	f.watcher.Close()
	f.watcher = nil
}

func (f *FilePane) WaitForChangeCmd() tea.Cmd {
	if f == nil || f.watcher == nil {
		return nil
	}
	watcher := f.watcher
	return func() tea.Msg {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			return fileChangedMsg{path: event.Name}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fileWatchErrMsg{err: err}
		}
	}
}

func (f *FilePane) View() string {
	if f.width <= 0 {
		return ""
	}
	if len(f.entries) == 0 {
		return statusStyle.Render("No files under " + f.root)
	}
	visible := max(1, f.height-1)
	end := min(len(f.entries), f.scroll+visible)
	lines := make([]string, 0, visible+1)
	lines = append(lines, headerStyle.Render(truncateToWidth(f.root, f.width)))
	for i := f.scroll; i < end; i++ {
		entry := f.entries[i]
		indent := strings.Repeat("  ", entry.Depth)
		name := filepath.Base(entry.Path)
		var line string
		switch {
		case entry.IsDir:
			line = fileDirStyle.Render(indent + name + "/")
		case f.attached[entry.Path]:
			line = fileAttachedStyle.Render(indent + "@ " + name)
		default:
			line = fileEntryStyle.Render(indent + "  " + name)
		}
		if i == f.cursor {
			line = selectedStyle.Render(truncateToWidth(indent+name, f.width))
		}
		lines = append(lines, truncateToWidth(line, f.width))
	}
	return strings.Join(lines, "\n")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
