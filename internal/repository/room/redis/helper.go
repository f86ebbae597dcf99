package redis

import (
	"context"
	"reflect"

	"github.com/redis/go-redis/v9"
)

func (r repo) getMemberKey(memberId string) string {
	return "member:" + memberId
}

func (r repo) getMemberListKey(roomId string) string {
	return "room:" + roomId + ":memberlist"
}

func (r repo) getQueueKey(roomId string) string {
	return "room:" + roomId + ":queue"
}

func (r repo) getTrackKey(roomId, trackId string) string {
	return "room:" + roomId + ":track:" + trackId
}

func (r repo) getStateKey(roomId string) string {
	return "room:" + roomId + ":state"
}

func (r repo) getThemeKey(roomId string) string {
	return "room:" + roomId + ":theme"
}

// appendWithIncrement adds value to the zset at key with a score one above
// the current maximum, preserving insertion order.
func (r repo) appendWithIncrement(ctx context.Context, c redis.Scripter, key string, value any) {
	c.EvalSha(ctx, r.appendScript, []string{key}, value)
}

// hSetStruct writes the exported fields of value as hash fields, using the
// `redis` struct tag for field names. Nil pointer fields are skipped.
func (r repo) hSetStruct(ctx context.Context, c redis.Cmdable, key string, value any) error {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	t := v.Type()
	fields := make(map[string]any, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		tag := t.Field(i).Tag.Get("redis")
		if tag == "" {
			tag = t.Field(i).Name
		}

		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				continue
			}
			field = field.Elem()
		}

		fields[tag] = field.Interface()
	}

	return c.HSet(ctx, key, fields).Err()
}

func (r repo) executePipe(ctx context.Context, pipe redis.Pipeliner) error {
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		for _, cmd := range cmds {
			if err := cmd.Err(); err != nil {
				return err
			}
		}

		return err
	}

	return nil
}
