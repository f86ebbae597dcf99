package controller

import (
	"github.com/JaiminVadadoriya/modern-radio-party/pkg/wsrouter"
)

func (c *controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New(c.logger)

	// queue
	mux.Handle("addSong", c.handleAddSong)
	mux.Handle("updatePlaylist", c.handleUpdatePlaylist)
	mux.Handle("songEnded", c.handleSongEnded)

	// playback
	mux.Handle("playbackState", c.handlePlaybackState)

	// theme
	mux.Handle("updateTheme", c.handleUpdateTheme)
	mux.Handle("toggleDynamicTheme", c.handleToggleDynamicTheme)

	// chat
	mux.Handle("message", c.handleMessage)

	// sync
	mux.Handle("requestSync", c.handleRequestSync)
	mux.Handle("syncResponse", c.handleSyncResponse)

	return mux
}
