package viewer

import (
	"github.com/rs/zerolog"

	"github.com/mmuteeullah/CamView/internal/camera"
)

// Controller wires the three components to a single Page.
type Controller struct {
	Page     *Page
	Sidebar  *Sidebar
	Switcher *Switcher
	Builder  *Builder
}

// NewController creates a page and its components. The sidebar starts in the
// requested state with the frame sized to match.
func NewController(source Source, proxy camera.ProxyTemplate, layout Layout, collapsed bool, logger zerolog.Logger) *Controller {
	page := NewPage()

	c := &Controller{
		Page:     page,
		Sidebar:  NewSidebar(page, page, layout),
		Switcher: NewSwitcher(page, logger),
		Builder:  NewBuilder(source, proxy, page, logger),
	}
	c.Sidebar.Reset(collapsed)
	return c
}

// Click dispatches the action of the link at index i. It reports false when
// there is no such link.
func (c *Controller) Click(i int) bool {
	item, ok := c.Page.Item(i)
	if !ok {
		return false
	}
	c.Switcher.Dispatch(item.Action)
	return true
}
