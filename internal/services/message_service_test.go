package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgram/internal/models"
)

func TestFindChatIsSymmetric(t *testing.T) {
	db := setupTestDB(t)
	service := NewMessageService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")
	bob := createTestUser(t, db, "user00000000000b", "bob")

	groupID, err := service.CreateChat(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	found, ok, err := service.FindChat(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, groupID, found)

	found, ok, err = service.FindChat(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, groupID, found)
}

func TestChatRequiresTwoDistinctUsers(t *testing.T) {
	db := setupTestDB(t)
	service := NewMessageService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")
	bob := createTestUser(t, db, "user00000000000b", "bob")

	// Alice's existing chat with bob must not satisfy a self-lookup.
	_, err := service.CreateChat(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, _, err = service.FindChat(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfChat)

	_, err = service.CreateChat(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfChat)
}

func TestFindChatIgnoresLargerGroups(t *testing.T) {
	db := setupTestDB(t)
	service := NewMessageService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")
	bob := createTestUser(t, db, "user00000000000b", "bob")
	carol := createTestUser(t, db, "user00000000000c", "carol")

	// A three-member group containing both users is not their direct chat.
	_, err := service.CreateGroup(ctx, "trio", []string{alice.ID, bob.ID, carol.ID})
	require.NoError(t, err)

	_, ok, err := service.FindChat(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateChatNamesGroupAfterMembers(t *testing.T) {
	db := setupTestDB(t)
	service := NewMessageService(db, testLogger())
	ctx := context.Background()

	bob := createTestUser(t, db, "user00000000000b", "bob")
	alice := createTestUser(t, db, "user00000000000a", "alice")

	groupID, err := service.CreateChat(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	name, err := service.GroupName(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, "alice bob", name)
}

func TestCreateGroupRequiresTwoDistinctMembers(t *testing.T) {
	db := setupTestDB(t)
	service := NewMessageService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")

	_, err := service.CreateGroup(ctx, "solo", []string{alice.ID, alice.ID})
	assert.Error(t, err)
}

func TestListGroupsAndMembership(t *testing.T) {
	db := setupTestDB(t)
	service := NewMessageService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")
	bob := createTestUser(t, db, "user00000000000b", "bob")
	carol := createTestUser(t, db, "user00000000000c", "carol")

	groupID, err := service.CreateGroup(ctx, "pair", []string{alice.ID, bob.ID})
	require.NoError(t, err)

	groups, err := service.ListGroups(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, groupID, groups[0].GroupID)
	assert.Equal(t, "pair", groups[0].GroupName)

	groups, err = service.ListGroups(ctx, carol.ID)
	require.NoError(t, err)
	assert.Empty(t, groups)

	member, err := service.IsMember(ctx, alice.ID, groupID)
	require.NoError(t, err)
	assert.True(t, member)

	member, err = service.IsMember(ctx, carol.ID, groupID)
	require.NoError(t, err)
	assert.False(t, member)
}

func TestAddMember(t *testing.T) {
	db := setupTestDB(t)
	service := NewMessageService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")
	bob := createTestUser(t, db, "user00000000000b", "bob")
	carol := createTestUser(t, db, "user00000000000c", "carol")

	groupID, err := service.CreateGroup(ctx, "pair", []string{alice.ID, bob.ID})
	require.NoError(t, err)

	require.NoError(t, service.AddMember(ctx, groupID, carol.ID))
	assert.ErrorIs(t, service.AddMember(ctx, groupID, carol.ID), ErrAlreadyMember)
	assert.ErrorIs(t, service.AddMember(ctx, "group00000000099", carol.ID), ErrGroupNotFound)
}

func TestSendAndGetMessages(t *testing.T) {
	db := setupTestDB(t)
	service := NewMessageService(db, testLogger())
	ctx := context.Background()

	displayName := "Alice B."
	alice := models.User{ID: "user00000000000a", Username: "alice", PasswordHash: "unused", DisplayName: &displayName}
	require.NoError(t, db.Create(&alice).Error)
	bob := createTestUser(t, db, "user00000000000b", "bob")
	carol := createTestUser(t, db, "user00000000000c", "carol")

	groupID, err := service.CreateChat(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	first, err := service.SendMessage(ctx, groupID, alice.ID, "hi bob")
	require.NoError(t, err)
	second, err := service.SendMessage(ctx, groupID, bob.ID, "hi alice")
	require.NoError(t, err)
	assert.False(t, second.Before(first))

	// Non-members cannot send.
	_, err = service.SendMessage(ctx, groupID, carol.ID, "let me in")
	assert.ErrorIs(t, err, ErrNotMember)

	messages, err := service.GetMessages(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hi bob", messages[0].Text)
	assert.Equal(t, "Alice B.", messages[0].SenderName)
	assert.Equal(t, "hi alice", messages[1].Text)
	assert.Equal(t, "bob", messages[1].SenderName)
}
