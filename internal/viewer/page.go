package viewer

import "sync"

// Page is the in-memory display surface: the sidebar, the video frame and the
// link list. It implements SidebarPort, VideoPort and ListPort and is safe
// for concurrent use.
type Page struct {
	mu        sync.RWMutex
	collapsed bool
	frame     Frame
	items     []ListItem
}

// Frame is the state of the video frame element.
type Frame struct {
	Left  string `json:"left"`
	Width string `json:"width"`
	Src   string `json:"src"`
}

// State is a point-in-time copy of a Page.
type State struct {
	Collapsed bool       `json:"collapsed"`
	Frame     Frame      `json:"frame"`
	Links     []ListItem `json:"links"`
}

// NewPage creates an empty page with an expanded sidebar.
func NewPage() *Page {
	return &Page{items: []ListItem{}}
}

// Collapsed implements SidebarPort.
func (p *Page) Collapsed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.collapsed
}

// SetCollapsed implements SidebarPort.
func (p *Page) SetCollapsed(collapsed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.collapsed = collapsed
}

// SetStyle implements VideoPort.
func (p *Page) SetStyle(left, width string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame.Left = left
	p.frame.Width = width
}

// SetSource implements VideoPort.
func (p *Page) SetSource(src string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame.Src = src
}

// Clear implements ListPort.
func (p *Page) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = []ListItem{}
}

// Append implements ListPort.
func (p *Page) Append(item ListItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append(p.items, item)
}

// Replace implements ListPort.
func (p *Page) Replace(items []ListItem) {
	next := make([]ListItem, len(items))
	copy(next, items)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = next
}

// Item returns the link at index i.
func (p *Page) Item(i int) (ListItem, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i < 0 || i >= len(p.items) {
		return ListItem{}, false
	}
	return p.items[i], true
}

// Len returns the number of rendered links.
func (p *Page) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}

// Snapshot copies the page state.
func (p *Page) Snapshot() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	links := make([]ListItem, len(p.items))
	copy(links, p.items)
	return State{
		Collapsed: p.collapsed,
		Frame:     p.frame,
		Links:     links,
	}
}
