package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chatroom/internal/commands"
	"chatroom/internal/domain"
	"chatroom/internal/events"
	"chatroom/internal/repository"
	chatroom_errors "chatroom/pkg/errors"
	"chatroom/pkg/logger"
)

type MessageService struct {
	repo        repository.RoomRepository
	broadcaster events.Broadcaster
	locks       *RoomLocker
	logger      *logger.Logger
	now         func() time.Time
	bus         *commands.Bus
}

func NewMessageService(repo repository.RoomRepository, broadcaster events.Broadcaster, locks *RoomLocker, l *logger.Logger, bus *commands.Bus) *MessageService {
	if bus == nil {
		bus = commands.NewBus()
	}
	svc := &MessageService{
		repo:        repo,
		broadcaster: broadcaster,
		locks:       locks,
		logger:      l,
		now:         time.Now,
		bus:         bus,
	}
	svc.RegisterHandlers()
	return svc
}

func (s *MessageService) RegisterHandlers() {
	s.bus.Register(commands.TypeSendMessage, commands.HandlerFunc(func(ctx context.Context, cmd commands.Command) (commands.Result, error) {
		typed, ok := cmd.(commands.SendMessageCommand)
		if !ok {
			return commands.Result{}, chatroom_errors.ErrInvalidArgument
		}
		msg, err := s.PostMessage(ctx, typed.RoomID, typed.Sender, typed.Content)
		if err != nil {
			return commands.Result{}, err
		}
		return commands.Result{AggregateID: typed.RoomID, Payload: msg}, nil
	}))
	s.bus.Register(commands.TypeTyping, commands.HandlerFunc(func(ctx context.Context, cmd commands.Command) (commands.Result, error) {
		typed, ok := cmd.(commands.TypingCommand)
		if !ok {
			return commands.Result{}, chatroom_errors.ErrInvalidArgument
		}
		if err := s.RelayTyping(ctx, typed.RoomID, typed.Indicator); err != nil {
			return commands.Result{}, err
		}
		return commands.Result{AggregateID: typed.RoomID, Payload: typed.Indicator}, nil
	}))
	presence := commands.HandlerFunc(func(ctx context.Context, cmd commands.Command) (commands.Result, error) {
		typed, ok := cmd.(commands.PresenceCommand)
		if !ok {
			return commands.Result{}, chatroom_errors.ErrInvalidArgument
		}
		var (
			msg domain.Message
			err error
		)
		if typed.Type == commands.TypeLeave {
			msg, err = s.AnnounceLeave(ctx, typed.RoomID, typed.Sender)
		} else {
			msg, err = s.AnnounceJoin(ctx, typed.RoomID, typed.Sender)
		}
		if err != nil {
			return commands.Result{}, err
		}
		return commands.Result{AggregateID: typed.RoomID, Payload: msg}, nil
	})
	s.bus.Register(commands.TypeJoin, presence)
	s.bus.Register(commands.TypeLeave, presence)
}

func (s *MessageService) Bus() *commands.Bus {
	return s.bus
}

// PostMessage sanitizes and appends a text message to an existing room, then
// broadcasts it on the room topic. The room is never created implicitly.
//
// The append and the broadcast both happen under the room lock, so
// subscribers see messages of one room in the order they were stored. A failed
// save aborts before anything is broadcast; a failed broadcast is only logged
// because the message is already retrievable from history.
func (s *MessageService) PostMessage(ctx context.Context, roomID, sender, content string) (domain.Message, error) {
	id, err := NormalizeRoomID(roomID)
	if err != nil {
		return domain.Message{}, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to load room %s: %w", id, err)
	}

	msg := domain.NewTextMessage(SanitizeText(sender), SanitizeText(content), s.now())
	if err := s.repo.Upsert(ctx, room.Append(msg)); err != nil {
		return domain.Message{}, fmt.Errorf("failed to save message in room %s: %w", id, err)
	}

	s.publish(ctx, events.RoomTopic(id), msg)
	return msg, nil
}

// AnnounceJoin broadcasts a system message for sender joining. Nothing is
// persisted and the room does not have to exist.
func (s *MessageService) AnnounceJoin(ctx context.Context, roomID, sender string) (domain.Message, error) {
	return s.announce(ctx, roomID, domain.MessageTypeJoin, fmt.Sprintf("%s joined the chat", SanitizeText(sender)))
}

// AnnounceLeave is the leave counterpart of AnnounceJoin.
func (s *MessageService) AnnounceLeave(ctx context.Context, roomID, sender string) (domain.Message, error) {
	return s.announce(ctx, roomID, domain.MessageTypeLeave, fmt.Sprintf("%s left the chat", SanitizeText(sender)))
}

func (s *MessageService) announce(ctx context.Context, roomID string, messageType domain.MessageType, content string) (domain.Message, error) {
	msg := domain.NewSystemMessage(messageType, content, s.now())
	if err := s.broadcaster.Publish(ctx, events.RoomTopic(strings.TrimSpace(roomID)), msg); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// RelayTyping forwards the indicator unchanged to the room's typing topic.
func (s *MessageService) RelayTyping(ctx context.Context, roomID string, indicator domain.TypingIndicator) error {
	return s.broadcaster.Publish(ctx, events.TypingTopic(strings.TrimSpace(roomID)), indicator)
}

func (s *MessageService) publish(ctx context.Context, topic string, payload any) {
	if err := s.broadcaster.Publish(ctx, topic, payload); err != nil {
		s.logger.WithContext(ctx).Warnf("broadcast to %s failed: %s", topic, err)
	}
}
