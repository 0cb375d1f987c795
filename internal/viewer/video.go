package viewer

import (
	"github.com/rs/zerolog"
)

// Switcher retargets the video frame.
type Switcher struct {
	video  VideoPort
	logger zerolog.Logger
}

// NewSwitcher creates a video source switcher
func NewSwitcher(video VideoPort, logger zerolog.Logger) *Switcher {
	return &Switcher{
		video:  video,
		logger: logger.With().Str("component", "switcher").Logger(),
	}
}

// Switch loads src in the video frame. src is not validated.
func (s *Switcher) Switch(src string) {
	s.logger.Debug().Str("src", src).Msg("switching video source")
	s.video.SetSource(src)
}

// Dispatch runs a link's click command.
func (s *Switcher) Dispatch(cmd SwitchVideo) {
	s.Switch(cmd.URL)
}
