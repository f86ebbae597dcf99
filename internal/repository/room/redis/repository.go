package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type repo struct {
	rc           *redis.Client
	logger       *slog.Logger
	keyTTL       time.Duration
	appendScript string
}

// NewRepo loads the queue-append script and returns a room repository backed
// by the given client. keyTTL bounds the lifetime of abandoned room keys;
// live rooms refresh it on every write.
func NewRepo(rc *redis.Client, logger *slog.Logger, keyTTL time.Duration) *repo {
	return &repo{
		rc:     rc,
		logger: logger,
		keyTTL: keyTTL,
		appendScript: rc.ScriptLoad(context.Background(), `
			local maxScore = redis.call('ZREVRANGE', KEYS[1], 0, 0, 'WITHSCORES')
			local nextScore = 1
			if #maxScore > 0 then
				nextScore = tonumber(maxScore[2]) + 1
			end
			redis.call('ZADD', KEYS[1], nextScore, ARGV[1])
			return nextScore
		`).Val(),
	}
}

func (r repo) RoomExists(ctx context.Context, roomId string) (bool, error) {
	exists, err := r.rc.Exists(ctx, r.getStateKey(roomId)).Result()
	if err != nil {
		return false, err
	}

	return exists > 0, nil
}

// DeleteRoom drops every key belonging to the room. Member hashes of the
// remaining members are removed as well, since a room is only deleted while
// members may still be attached (host teardown).
func (r repo) DeleteRoom(ctx context.Context, roomId string) error {
	r.logger.DebugContext(ctx, "deleting room", "room_id", roomId)

	keys := []string{
		r.getStateKey(roomId),
		r.getThemeKey(roomId),
		r.getQueueKey(roomId),
		r.getMemberListKey(roomId),
	}

	trackIds, err := r.GetQueueIds(ctx, roomId)
	if err != nil {
		return err
	}
	for _, trackId := range trackIds {
		keys = append(keys, r.getTrackKey(roomId, trackId))
	}

	memberIds, err := r.GetMemberIds(ctx, roomId)
	if err != nil {
		return err
	}
	for _, memberId := range memberIds {
		keys = append(keys, r.getMemberKey(memberId))
	}

	return r.rc.Del(ctx, keys...).Err()
}
