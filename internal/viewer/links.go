package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mmuteeullah/CamView/internal/camera"
)

// BuildObserver is told about every build that reached the list, successful
// or not. Superseded builds are not reported.
type BuildObserver interface {
	RecordBuild(id string, entries int, err error)
}

// Builder fetches the camera list and renders it as links.
//
// Starting a build cancels the one in flight, and only the most recently
// started build may write to the list.
type Builder struct {
	source   Source
	proxy    camera.ProxyTemplate
	list     ListPort
	logger   zerolog.Logger
	observer BuildObserver

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewBuilder creates a link list builder
func NewBuilder(source Source, proxy camera.ProxyTemplate, list ListPort, logger zerolog.Logger) *Builder {
	return &Builder{
		source: source,
		proxy:  proxy,
		list:   list,
		logger: logger.With().Str("component", "links").Str("source", source.Name()).Logger(),
	}
}

// SetObserver registers o to receive build results.
func (b *Builder) SetObserver(o BuildObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observer = o
}

// Items maps sorted entries to list items. The click action of each item
// switches the video to the item's proxy URL.
func Items(entries []camera.Entry, proxy camera.ProxyTemplate) []ListItem {
	items := make([]ListItem, 0, len(entries))
	for _, e := range entries {
		href := proxy.URL(e.IP)
		items = append(items, ListItem{
			Text:   e.Label(),
			Href:   href,
			Action: SwitchVideo{URL: href},
		})
	}
	return items
}

// Load fetches, parses and sorts the camera list without rendering it.
func Load(ctx context.Context, source Source) ([]camera.Entry, error) {
	text, err := source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	entries := camera.ParseList(text)
	camera.SortByDescription(entries)
	return entries, nil
}

// Build replaces the list with the current contents of the source and
// returns the number of links rendered. On error the list is left as it was.
//
// A build whose ctx is cancelled by the caller is dropped like a superseded
// one: it returns the context error and is neither recorded nor logged.
func (b *Builder) Build(parent context.Context) (int, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	b.gen++
	gen := b.gen
	b.cancel = cancel
	b.mu.Unlock()

	id := uuid.NewString()
	logger := b.logger.With().Str("build_id", id).Logger()
	logger.Debug().Msg("fetching camera list")

	entries, err := Load(ctx, b.source)

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		logger.Debug().Msg("build superseded")
		return 0, ErrSuperseded
	}
	b.cancel = nil

	if err != nil && errors.Is(parent.Err(), context.Canceled) {
		logger.Debug().Msg("build cancelled by caller")
		return 0, fmt.Errorf("building camera links: %w", parent.Err())
	}
	if err != nil {
		b.record(id, 0, err)
		return 0, fmt.Errorf("building camera links: %w", err)
	}

	b.list.Replace(Items(entries, b.proxy))

	logger.Info().Int("cameras", len(entries)).Msg("camera list rendered")
	b.record(id, len(entries), nil)
	return len(entries), nil
}

// Refresh runs Build and logs any failure instead of returning it. The list
// keeps its previous contents when the build fails.
func (b *Builder) Refresh(ctx context.Context) {
	_, err := b.Build(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrSuperseded), errors.Is(err, context.Canceled):
	default:
		b.logger.Error().Err(err).Msg("error fetching or processing camera list")
	}
}

func (b *Builder) record(id string, entries int, err error) {
	if b.observer != nil {
		b.observer.RecordBuild(id, entries, err)
	}
}
