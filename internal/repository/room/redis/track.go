package redis

import (
	"context"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/room"
)

func (r repo) AppendTrack(ctx context.Context, params *room.AppendTrackParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	pipe := r.rc.TxPipeline()

	trackKey := r.getTrackKey(params.RoomId, params.Track.Id)
	if err := r.hSetStruct(ctx, pipe, trackKey, params.Track); err != nil {
		return err
	}
	pipe.Expire(ctx, trackKey, r.keyTTL)

	queueKey := r.getQueueKey(params.RoomId)
	r.appendWithIncrement(ctx, pipe, queueKey, params.Track.Id)
	pipe.Expire(ctx, queueKey, r.keyTTL)

	return r.executePipe(ctx, pipe)
}

// RemoveTrack removes the first queue entry matching the track id.
func (r repo) RemoveTrack(ctx context.Context, params *room.RemoveTrackParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)

	removed, err := r.rc.ZRem(ctx, r.getQueueKey(params.RoomId), params.TrackId).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return room.ErrTrackNotFound
	}

	return r.rc.Del(ctx, r.getTrackKey(params.RoomId, params.TrackId)).Err()
}

func (r repo) GetTrack(ctx context.Context, params *room.GetTrackParams) (room.Track, error) {
	var track room.Track
	if err := r.rc.HGetAll(ctx, r.getTrackKey(params.RoomId, params.TrackId)).Scan(&track); err != nil {
		return room.Track{}, err
	}

	if track.Id == "" {
		return room.Track{}, room.ErrTrackNotFound
	}

	return track, nil
}

// GetQueueIds returns track ids in insertion order.
func (r repo) GetQueueIds(ctx context.Context, roomId string) ([]string, error) {
	return r.rc.ZRange(ctx, r.getQueueKey(roomId), 0, -1).Result()
}

// SetQueue replaces the queue wholesale, dropping tracks that are no longer
// referenced.
func (r repo) SetQueue(ctx context.Context, params *room.SetQueueParams) error {
	r.logger.DebugContext(ctx, "called", "room_id", params.RoomId, "tracks", len(params.Tracks))

	oldIds, err := r.GetQueueIds(ctx, params.RoomId)
	if err != nil {
		return err
	}

	pipe := r.rc.TxPipeline()

	queueKey := r.getQueueKey(params.RoomId)
	pipe.Del(ctx, queueKey)
	for _, trackId := range oldIds {
		pipe.Del(ctx, r.getTrackKey(params.RoomId, trackId))
	}

	for _, track := range params.Tracks {
		trackKey := r.getTrackKey(params.RoomId, track.Id)
		if err := r.hSetStruct(ctx, pipe, trackKey, track); err != nil {
			return err
		}
		pipe.Expire(ctx, trackKey, r.keyTTL)
		r.appendWithIncrement(ctx, pipe, queueKey, track.Id)
	}
	pipe.Expire(ctx, queueKey, r.keyTTL)

	return r.executePipe(ctx, pipe)
}
