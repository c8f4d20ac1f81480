package services_test

import (
	"context"
	"testing"
	"time"

	"parley-chat/internal/domain/user"
	"parley-chat/internal/services"
	parley_errors "parley-chat/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	*fixture
	alice    user.User
	bob      user.User
	outsider user.User
	chatID   uint
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()

	alice := createUser(t, f.userRepo, "alice", "alice@test.com")
	bob := createUser(t, f.userRepo, "bob", "bob@test.com")
	outsider := createUser(t, f.userRepo, "mallory", "mallory@test.com")

	res, err := f.chats.CreateChat(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	return &chatFixture{fixture: f, alice: alice, bob: bob, outsider: outsider, chatID: res.ChatID}
}

func (cf *chatFixture) sendN(t *testing.T, n int) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		author := cf.alice.ID
		if i%2 == 1 {
			author = cf.bob.ID
		}
		m, err := cf.messages.Send(context.Background(), author, cf.chatID, "message")
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}
	return ids
}

func TestSend_Validation(t *testing.T) {
	cf := newChatFixture(t)
	ctx := context.Background()

	_, err := cf.messages.Send(ctx, cf.alice.ID, cf.chatID, "")
	assert.ErrorIs(t, err, parley_errors.ErrInvalidInput)

	_, err = cf.messages.Send(ctx, cf.alice.ID, cf.chatID+999, "hello")
	assert.ErrorIs(t, err, parley_errors.ErrNotFound)

	_, err = cf.messages.Send(ctx, cf.outsider.ID, cf.chatID, "hello")
	assert.ErrorIs(t, err, parley_errors.ErrForbidden)
}

func TestSend_AppearsInHistory(t *testing.T) {
	cf := newChatFixture(t)
	ctx := context.Background()

	sent, err := cf.messages.Send(ctx, cf.alice.ID, cf.chatID, "hello bob")
	require.NoError(t, err)
	require.NotNil(t, sent.AuthorID)
	assert.Equal(t, cf.alice.ID, *sent.AuthorID)
	assert.False(t, sent.CreatedAt.IsZero())

	history, err := cf.messages.History(ctx, cf.bob.ID, cf.chatID, services.HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "hello bob", history[0].Content)
}

func TestHistory_Authorization(t *testing.T) {
	cf := newChatFixture(t)
	ctx := context.Background()

	_, err := cf.messages.History(ctx, cf.outsider.ID, cf.chatID, services.HistoryQuery{})
	assert.ErrorIs(t, err, parley_errors.ErrForbidden)

	_, err = cf.messages.History(ctx, cf.alice.ID, cf.chatID+999, services.HistoryQuery{})
	assert.ErrorIs(t, err, parley_errors.ErrNotFound)
}

func TestHistory_AfterCursor(t *testing.T) {
	cf := newChatFixture(t)
	ids := cf.sendN(t, 10)

	after := ids[4]
	history, err := cf.messages.History(context.Background(), cf.alice.ID, cf.chatID, services.HistoryQuery{AfterID: &after})
	require.NoError(t, err)
	require.Len(t, history, 5)
	for i, m := range history {
		assert.Equal(t, ids[5+i], m.ID)
	}
}

func TestHistory_LatestPage(t *testing.T) {
	cf := newChatFixture(t)
	ids := cf.sendN(t, 10)

	history, err := cf.messages.History(context.Background(), cf.alice.ID, cf.chatID, services.HistoryQuery{Limit: 3})
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []uint{ids[7], ids[8], ids[9]}, []uint{history[0].ID, history[1].ID, history[2].ID})
}

func TestHistory_BeforeCursor(t *testing.T) {
	cf := newChatFixture(t)
	ids := cf.sendN(t, 10)

	before := ids[7]
	history, err := cf.messages.History(context.Background(), cf.alice.ID, cf.chatID, services.HistoryQuery{BeforeID: &before, Limit: 3})
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []uint{ids[4], ids[5], ids[6]}, []uint{history[0].ID, history[1].ID, history[2].ID})
}

func TestHistory_DefaultLimit(t *testing.T) {
	cf := newChatFixture(t)
	cf.sendN(t, 10)

	// No cursor and no explicit limit falls back to the default page size
	history, err := cf.messages.History(context.Background(), cf.alice.ID, cf.chatID, services.HistoryQuery{})
	require.NoError(t, err)
	assert.Len(t, history, 10)
}

func TestEdit_Authorization(t *testing.T) {
	cf := newChatFixture(t)
	ctx := context.Background()

	sent, err := cf.messages.Send(ctx, cf.alice.ID, cf.chatID, "original")
	require.NoError(t, err)

	_, err = cf.messages.Edit(ctx, cf.bob.ID, sent.ID, "hijacked")
	assert.ErrorIs(t, err, parley_errors.ErrForbidden)

	_, err = cf.messages.Edit(ctx, cf.alice.ID, sent.ID+999, "updated")
	assert.ErrorIs(t, err, parley_errors.ErrNotFound)

	_, err = cf.messages.Edit(ctx, cf.alice.ID, sent.ID, "")
	assert.ErrorIs(t, err, parley_errors.ErrInvalidInput)
}

func TestEdit_KeepsTimestamp(t *testing.T) {
	cf := newChatFixture(t)
	ctx := context.Background()

	sent, err := cf.messages.Send(ctx, cf.alice.ID, cf.chatID, "original")
	require.NoError(t, err)

	edited, err := cf.messages.Edit(ctx, cf.alice.ID, sent.ID, "updated")
	require.NoError(t, err)
	assert.Equal(t, "updated", edited.Content)
	assert.WithinDuration(t, sent.CreatedAt, edited.CreatedAt, time.Second)

	stored, err := cf.messageRepo.GetByID(ctx, sent.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", stored.Content)
}

func TestChatDelete_RemovesMessages(t *testing.T) {
	cf := newChatFixture(t)
	ctx := context.Background()

	ids := cf.sendN(t, 3)

	require.NoError(t, cf.chatRepo.Delete(ctx, cf.chatID))

	// Messages go with their chat
	for _, id := range ids {
		_, err := cf.messageRepo.GetByID(ctx, id)
		assert.ErrorIs(t, err, parley_errors.ErrNotFound)
	}

	// Participant rows too
	participants, err := cf.chatRepo.GetParticipants(ctx, cf.chatID)
	require.NoError(t, err)
	assert.Empty(t, participants)

	_, err = cf.chatRepo.GetByID(ctx, cf.chatID)
	assert.ErrorIs(t, err, parley_errors.ErrNotFound)
}

func TestDelete_Authorization(t *testing.T) {
	cf := newChatFixture(t)
	ctx := context.Background()

	sent, err := cf.messages.Send(ctx, cf.alice.ID, cf.chatID, "to delete")
	require.NoError(t, err)

	err = cf.messages.Delete(ctx, cf.bob.ID, sent.ID)
	assert.ErrorIs(t, err, parley_errors.ErrForbidden)

	err = cf.messages.Delete(ctx, cf.alice.ID, sent.ID)
	require.NoError(t, err)

	_, err = cf.messageRepo.GetByID(ctx, sent.ID)
	assert.ErrorIs(t, err, parley_errors.ErrNotFound)

	err = cf.messages.Delete(ctx, cf.alice.ID, sent.ID)
	assert.ErrorIs(t, err, parley_errors.ErrNotFound)
}
