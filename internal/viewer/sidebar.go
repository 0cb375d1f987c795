package viewer

import (
	"fmt"
	"sync"
)

// Layout holds the sidebar widths in pixels.
type Layout struct {
	CollapsedWidth int
	ExpandedWidth  int
}

// DefaultLayout matches the stylesheet served by the web UI.
var DefaultLayout = Layout{CollapsedWidth: 60, ExpandedWidth: 250}

// UpdateFrameWidth places the video frame to the right of a sidebar of the
// given width: left offset width px, remaining width calc(100% - width px).
func UpdateFrameWidth(video VideoPort, width int) {
	video.SetStyle(fmt.Sprintf("%dpx", width), fmt.Sprintf("calc(100%% - %dpx)", width))
}

// Sidebar flips the sidebar between collapsed and expanded and keeps the
// video frame sized to fill the rest of the page.
type Sidebar struct {
	mu      sync.Mutex
	sidebar SidebarPort
	video   VideoPort
	layout  Layout
}

// NewSidebar creates a sidebar toggler
func NewSidebar(sidebar SidebarPort, video VideoPort, layout Layout) *Sidebar {
	return &Sidebar{
		sidebar: sidebar,
		video:   video,
		layout:  layout,
	}
}

// Toggle collapses an expanded sidebar or expands a collapsed one.
func (s *Sidebar) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set(!s.sidebar.Collapsed())
}

// Reset forces the sidebar into the given state, e.g. at startup.
func (s *Sidebar) Reset(collapsed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set(collapsed)
}

func (s *Sidebar) set(collapsed bool) {
	s.sidebar.SetCollapsed(collapsed)
	if collapsed {
		UpdateFrameWidth(s.video, s.layout.CollapsedWidth)
	} else {
		UpdateFrameWidth(s.video, s.layout.ExpandedWidth)
	}
}
