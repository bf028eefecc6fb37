package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"chatroom/internal/commands"
	"chatroom/internal/domain"
	"chatroom/internal/repository"
	chatroom_errors "chatroom/pkg/errors"
	"chatroom/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageService(t *testing.T, repo repository.RoomRepository) (*MessageService, *recordingBroadcaster) {
	t.Helper()
	broadcaster := &recordingBroadcaster{}
	return NewMessageService(repo, broadcaster, NewRoomLocker(), logger.NewNop(), nil), broadcaster
}

func TestPostMessage(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRoomRepository()
	require.NoError(t, repo.Upsert(ctx, domain.NewRoom("general")))
	svc, broadcaster := newMessageService(t, repo)

	before := time.Now()
	msg, err := svc.PostMessage(ctx, "general", "Alice", "Hello <script>")
	require.NoError(t, err)

	assert.Equal(t, "Alice", msg.Sender)
	assert.Equal(t, "Hello &lt;script&gt;", msg.Content)
	assert.Equal(t, domain.MessageTypeText, msg.MessageType)
	assert.False(t, msg.TimeStamp.Before(before))

	room, err := repo.GetByID(ctx, "general")
	require.NoError(t, err)
	require.Len(t, room.Messages, 1)
	assert.Equal(t, msg, room.Messages[0])

	sent := broadcaster.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "room/general", sent[0].Topic)
	assert.Equal(t, msg, sent[0].Payload)
}

func TestPostMessage_SanitizesSender(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRoomRepository()
	require.NoError(t, repo.Upsert(ctx, domain.NewRoom("general")))
	svc, _ := newMessageService(t, repo)

	msg, err := svc.PostMessage(ctx, "general", "  <Mallory> ", "  hi  ")
	require.NoError(t, err)
	assert.Equal(t, "&lt;Mallory&gt;", msg.Sender)
	assert.Equal(t, "hi", msg.Content)

	msg, err = svc.PostMessage(ctx, "general", "", "")
	require.NoError(t, err)
	assert.Equal(t, "", msg.Sender)
	assert.Equal(t, "", msg.Content)
}

func TestPostMessage_MissingRoomIsNotCreated(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRoomRepository()
	svc, broadcaster := newMessageService(t, repo)

	_, err := svc.PostMessage(ctx, "nowhere", "Alice", "hi")
	assert.ErrorIs(t, err, chatroom_errors.ErrRoomNotFound)

	_, err = repo.GetByID(ctx, "nowhere")
	assert.ErrorIs(t, err, chatroom_errors.ErrRoomNotFound)
	assert.Empty(t, broadcaster.messages())
}

func TestPostMessage_SaveFailureSkipsBroadcast(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemoryRoomRepository()
	require.NoError(t, mem.Upsert(ctx, domain.NewRoom("general")))
	svc, broadcaster := newMessageService(t, failingUpsertRepository{RoomRepository: mem})

	_, err := svc.PostMessage(ctx, "general", "Alice", "hi")
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, broadcaster.messages())
}

func TestPostMessage_BroadcastFailureStillPersists(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRoomRepository()
	require.NoError(t, repo.Upsert(ctx, domain.NewRoom("general")))
	svc, broadcaster := newMessageService(t, repo)
	broadcaster.err = errors.New("broker down")

	msg, err := svc.PostMessage(ctx, "general", "Alice", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", msg.Content)

	room, err := repo.GetByID(ctx, "general")
	require.NoError(t, err)
	assert.Len(t, room.Messages, 1)
}

func TestPostMessage_ConcurrentPostsAreNotLost(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRoomRepository()
	require.NoError(t, repo.Upsert(ctx, domain.NewRoom("general")))
	require.NoError(t, repo.Upsert(ctx, domain.NewRoom("random")))
	svc, broadcaster := newMessageService(t, repo)

	const writers, perWriter = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				room := "general"
				if i%2 == 1 {
					room = "random"
				}
				_, err := svc.PostMessage(ctx, room, fmt.Sprintf("user-%d", w), fmt.Sprintf("%d", i))
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	general, err := repo.GetByID(ctx, "general")
	require.NoError(t, err)
	random, err := repo.GetByID(ctx, "random")
	require.NoError(t, err)
	assert.Equal(t, writers*perWriter, len(general.Messages)+len(random.Messages))

	// Subscribers see each room's messages in stored order.
	var delivered []domain.Message
	for _, p := range broadcaster.messages() {
		if p.Topic == "room/general" {
			delivered = append(delivered, p.Payload.(domain.Message))
		}
	}
	assert.Equal(t, general.Messages, delivered)
}

func TestAnnounceJoin_BroadcastOnly(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRoomRepository()
	require.NoError(t, repo.Upsert(ctx, domain.NewRoom("general")))
	svc, broadcaster := newMessageService(t, repo)

	msg, err := svc.AnnounceJoin(ctx, "general", "Bob")
	require.NoError(t, err)
	assert.Equal(t, domain.SystemSender, msg.Sender)
	assert.Equal(t, "Bob joined the chat", msg.Content)
	assert.Equal(t, domain.MessageTypeJoin, msg.MessageType)

	room, err := repo.GetByID(ctx, "general")
	require.NoError(t, err)
	assert.Empty(t, room.Messages)

	sent := broadcaster.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "room/general", sent[0].Topic)
	assert.Equal(t, msg, sent[0].Payload)
}

func TestAnnounceLeave_MissingRoom(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRoomRepository()
	svc, broadcaster := newMessageService(t, repo)

	msg, err := svc.AnnounceLeave(ctx, "ghost-town", "Bob")
	require.NoError(t, err)
	assert.Equal(t, "Bob left the chat", msg.Content)
	assert.Equal(t, domain.MessageTypeLeave, msg.MessageType)

	_, err = repo.GetByID(ctx, "ghost-town")
	assert.ErrorIs(t, err, chatroom_errors.ErrRoomNotFound)
	require.Len(t, broadcaster.messages(), 1)
}

func TestAnnounce_EscapesSenderName(t *testing.T) {
	ctx := context.Background()
	svc, broadcaster := newMessageService(t, repository.NewMemoryRoomRepository())

	msg, err := svc.AnnounceJoin(ctx, "general", " <b> ")
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt; joined the chat", msg.Content)

	msg, err = svc.AnnounceLeave(ctx, "general", `"Eve's"`)
	require.NoError(t, err)
	assert.Equal(t, "&quot;Eve&#x27;s&quot; left the chat", msg.Content)

	sent := broadcaster.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "&lt;b&gt; joined the chat", sent[0].Payload.(domain.Message).Content)
}

func TestRelayTyping_PassThrough(t *testing.T) {
	ctx := context.Background()
	svc, broadcaster := newMessageService(t, repository.NewMemoryRoomRepository())

	indicator := domain.TypingIndicator{Username: "<Alice>", IsTyping: true}
	require.NoError(t, svc.RelayTyping(ctx, "general", indicator))

	sent := broadcaster.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "typing/general", sent[0].Topic)
	assert.Equal(t, indicator, sent[0].Payload)
}

func TestMessageService_BusHandlers(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRoomRepository()
	require.NoError(t, repo.Upsert(ctx, domain.NewRoom("general")))
	svc, broadcaster := newMessageService(t, repo)

	res, err := svc.Bus().Execute(ctx, commands.SendMessageCommand{RoomID: "general", Sender: "Alice", Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "general", res.AggregateID)

	_, err = svc.Bus().Execute(ctx, commands.PresenceCommand{Type: commands.TypeLeave, RoomID: "general", Sender: "Alice"})
	require.NoError(t, err)

	_, err = svc.Bus().Execute(ctx, commands.TypingCommand{RoomID: "general", Indicator: domain.TypingIndicator{Username: "Alice"}})
	require.NoError(t, err)

	sent := broadcaster.messages()
	require.Len(t, sent, 3)
	assert.Equal(t, domain.MessageTypeText, sent[0].Payload.(domain.Message).MessageType)
	assert.Equal(t, domain.MessageTypeLeave, sent[1].Payload.(domain.Message).MessageType)
	assert.Equal(t, "typing/general", sent[2].Topic)

	_, err = svc.Bus().Execute(ctx, commands.SendMessageCommand{RoomID: "general", Sender: "Alice"})
	assert.ErrorIs(t, err, chatroom_errors.ErrInvalidArgument)
}
