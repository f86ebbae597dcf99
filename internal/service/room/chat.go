package room

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/room"
)

type SendMessageParams struct {
	Text      string
	Timestamp int64
	SenderId  string
	RoomId    string
}

type SendMessageResponse struct {
	User      string
	Text      string
	Timestamp int64
	Conns     []*websocket.Conn
}

// SendMessage is a stateless relay open to every member; nothing is stored.
func (s *service) SendMessage(ctx context.Context, params *SendMessageParams) (SendMessageResponse, error) {
	sender, err := s.roomRepo.GetMember(ctx, &room.GetMemberParams{
		MemberId: params.SenderId,
		RoomId:   params.RoomId,
	})
	if err != nil {
		return SendMessageResponse{}, fmt.Errorf("failed to get sender: %w", err)
	}

	timestamp := params.Timestamp
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return SendMessageResponse{}, err
	}

	return SendMessageResponse{
		User:      sender.Name,
		Text:      params.Text,
		Timestamp: timestamp,
		Conns:     conns,
	}, nil
}
