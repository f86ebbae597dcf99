package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/room"
)

func (r repo) SetMember(ctx context.Context, params *room.SetMemberParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	pipe := r.rc.TxPipeline()

	member := room.Member{
		Name:   params.Name,
		IsHost: params.IsHost,
		RoomId: params.RoomId,
	}

	memberKey := r.getMemberKey(params.MemberId)
	if err := r.hSetStruct(ctx, pipe, memberKey, member); err != nil {
		return err
	}
	pipe.Expire(ctx, memberKey, r.keyTTL)

	memberListKey := r.getMemberListKey(params.RoomId)
	r.appendWithIncrement(ctx, pipe, memberListKey, params.MemberId)
	pipe.Expire(ctx, memberListKey, r.keyTTL)

	return r.executePipe(ctx, pipe)
}

func (r repo) RemoveMember(ctx context.Context, params *room.RemoveMemberParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	pipe := r.rc.TxPipeline()

	pipe.ZRem(ctx, r.getMemberListKey(params.RoomId), params.MemberId)
	pipe.Del(ctx, r.getMemberKey(params.MemberId))

	return r.executePipe(ctx, pipe)
}

func (r repo) GetMember(ctx context.Context, params *room.GetMemberParams) (room.Member, error) {
	var member room.Member
	if err := r.rc.HGetAll(ctx, r.getMemberKey(params.MemberId)).Scan(&member); err != nil {
		return room.Member{}, err
	}

	if member.Name == "" {
		return room.Member{}, room.ErrMemberNotFound
	}

	return member, nil
}

// GetMemberIds returns member ids in join order.
func (r repo) GetMemberIds(ctx context.Context, roomId string) ([]string, error) {
	return r.rc.ZRange(ctx, r.getMemberListKey(roomId), 0, -1).Result()
}

func (r repo) UpdateMemberIsHost(ctx context.Context, params *room.UpdateMemberIsHostParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	key := r.getMemberKey(params.MemberId)

	exists, err := r.rc.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return room.ErrMemberNotFound
	}

	return r.rc.HSet(ctx, key, "is_host", params.IsHost).Err()
}

func (r repo) SetHostId(ctx context.Context, params *room.SetHostIdParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	return r.rc.HSet(ctx, r.getStateKey(params.RoomId), "host_id", params.MemberId).Err()
}

// GetHostId returns the empty string when the room has no host.
func (r repo) GetHostId(ctx context.Context, roomId string) (string, error) {
	hostId, err := r.rc.HGet(ctx, r.getStateKey(roomId), "host_id").Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}

		return "", err
	}

	return hostId, nil
}
