package app

import (
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/bpplay/internal/playback"
	"github.com/llehouerou/bpplay/internal/state"
)

func stateSettings(c *playback.Controller) state.Settings {
	return state.Settings{Volume: c.Volume(), Speed: c.Speed()}
}

func humanBytes(n int) string {
	return humanize.IBytes(uint64(max(n, 0)))
}
