package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/room"
)

func (r repo) SetCurrentTrack(ctx context.Context, params *room.SetCurrentTrackParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	stateKey := r.getStateKey(params.RoomId)

	if params.Track == nil {
		return r.rc.HDel(ctx, stateKey, "current").Err()
	}

	data, err := json.Marshal(params.Track)
	if err != nil {
		return err
	}

	return r.rc.HSet(ctx, stateKey, "current", data).Err()
}

// GetCurrentTrack returns nil without error when the room has no current
// track.
func (r repo) GetCurrentTrack(ctx context.Context, roomId string) (*room.Track, error) {
	data, err := r.rc.HGet(ctx, r.getStateKey(roomId), "current").Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}

		return nil, err
	}

	var track room.Track
	if err := json.Unmarshal([]byte(data), &track); err != nil {
		return nil, err
	}

	return &track, nil
}

func (r repo) UpdatePlayerState(ctx context.Context, params *room.UpdatePlayerStateParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	stateKey := r.getStateKey(params.RoomId)

	pipe := r.rc.TxPipeline()
	if err := r.hSetStruct(ctx, pipe, stateKey, room.Player{
		IsPlaying:   params.IsPlaying,
		CurrentTime: params.CurrentTime,
		UpdatedAt:   params.UpdatedAt,
	}); err != nil {
		return err
	}
	pipe.Expire(ctx, stateKey, r.keyTTL)

	return r.executePipe(ctx, pipe)
}

func (r repo) GetPlayer(ctx context.Context, roomId string) (room.Player, error) {
	var player room.Player
	if err := r.rc.HGetAll(ctx, r.getStateKey(roomId)).Scan(&player); err != nil {
		return room.Player{}, err
	}

	return player, nil
}

func (r repo) SetTheme(ctx context.Context, params *room.SetThemeParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	themeKey := r.getThemeKey(params.RoomId)

	pipe := r.rc.TxPipeline()
	pipe.Del(ctx, themeKey)
	if err := r.hSetStruct(ctx, pipe, themeKey, params.Theme); err != nil {
		return err
	}
	pipe.Expire(ctx, themeKey, r.keyTTL)

	return r.executePipe(ctx, pipe)
}

func (r repo) GetTheme(ctx context.Context, roomId string) (room.Theme, error) {
	var theme room.Theme
	if err := r.rc.HGetAll(ctx, r.getThemeKey(roomId)).Scan(&theme); err != nil {
		return room.Theme{}, err
	}

	if theme.Id == "" {
		return room.Theme{}, room.ErrRoomNotFound
	}

	return theme, nil
}

func (r repo) SetDynamicTheme(ctx context.Context, params *room.SetDynamicThemeParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	return r.rc.HSet(ctx, r.getStateKey(params.RoomId), "is_dynamic_theme", params.IsDynamic).Err()
}

func (r repo) GetDynamicTheme(ctx context.Context, roomId string) (bool, error) {
	isDynamic, err := r.rc.HGet(ctx, r.getStateKey(roomId), "is_dynamic_theme").Bool()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}

		return false, err
	}

	return isDynamic, nil
}
