package app

import (
	"context"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/service/room"
	"github.com/JaiminVadadoriya/modern-radio-party/pkg/trackdata"
)

// trackResolver adapts the trackdata client to the room service's resolver
// interface. The oEmbed endpoint carries no duration, so it stays unknown.
type trackResolver struct {
	client *trackdata.Client
}

func (t trackResolver) Resolve(ctx context.Context, mediaId string) (room.TrackMetadata, error) {
	data, err := t.client.Get(ctx, mediaId)
	if err != nil {
		return room.TrackMetadata{}, err
	}

	return room.TrackMetadata{
		Title:     data.Title,
		Thumbnail: data.ThumbnailURL,
	}, nil
}
