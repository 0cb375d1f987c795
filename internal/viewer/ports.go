// Package viewer holds the page controller of the camera viewer: the sidebar
// toggler, the video source switcher and the link list builder.
//
// The components never touch a display surface directly. They drive it
// through the SidebarPort, VideoPort and ListPort interfaces; Page is the
// in-memory binding rendered by the web UI.
package viewer

// SidebarPort exposes the collapsed class of the sidebar container.
type SidebarPort interface {
	Collapsed() bool
	SetCollapsed(collapsed bool)
}

// VideoPort exposes the video frame.
type VideoPort interface {
	// SetStyle sets the CSS left offset and width of the frame.
	SetStyle(left, width string)
	// SetSource points the frame at a new URL.
	SetSource(src string)
}

// ListPort exposes the link list container.
type ListPort interface {
	Clear()
	Append(item ListItem)
	// Replace swaps the whole list for items in one step, so readers see
	// either the old list or the new one.
	Replace(items []ListItem)
}

// ListItem is one rendered link.
type ListItem struct {
	Text   string      `json:"text"`
	Href   string      `json:"href"`
	Action SwitchVideo `json:"-"`
}

// SwitchVideo is the command a link click dispatches: retarget the video
// frame to URL.
type SwitchVideo struct {
	URL string
}
