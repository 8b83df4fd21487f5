package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgram/internal/models"
)

func TestSearchSingleCondition(t *testing.T) {
	db := setupTestDB(t)
	service := NewSearchService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")
	createTestUser(t, db, "user00000000000b", "bob")

	results, err := service.Search(ctx, []SearchCondition{
		{Field: FieldUsername, Value: "alice"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, alice.ID, results[0].ID)
	assert.Equal(t, "alice", results[0].Username)
}

func TestSearchConnectors(t *testing.T) {
	db := setupTestDB(t)
	service := NewSearchService(db)
	ctx := context.Background()

	location := models.Location{ID: "loc0000000000001", Name: "Berlin"}
	require.NoError(t, db.Create(&location).Error)

	alice := models.User{ID: "user00000000000a", Username: "alice", PasswordHash: "unused", LocationID: &location.ID}
	require.NoError(t, db.Create(&alice).Error)
	bob := createTestUser(t, db, "user00000000000b", "bob")
	carol := createTestUser(t, db, "user00000000000c", "carol")

	// OR collects both matches.
	results, err := service.Search(ctx, []SearchCondition{
		{Field: FieldUsername, Value: "alice"},
		{Field: FieldUsername, Value: "bob"},
	}, []Connector{ConnectorOr})
	require.NoError(t, err)
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []string{alice.ID, bob.ID}, ids)
	assert.NotContains(t, ids, carol.ID)

	// AND narrows to the intersection.
	results, err = service.Search(ctx, []SearchCondition{
		{Field: FieldUsername, Value: "alice"},
		{Field: FieldLocationID, Value: location.ID},
	}, []Connector{ConnectorAnd})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, alice.ID, results[0].ID)

	results, err = service.Search(ctx, []SearchCondition{
		{Field: FieldUsername, Value: "bob"},
		{Field: FieldLocationID, Value: location.ID},
	}, []Connector{ConnectorAnd})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	service := NewSearchService(db)
	ctx := context.Background()

	_, err := service.Search(ctx, nil, nil)
	assert.Error(t, err)

	_, err = service.Search(ctx, []SearchCondition{
		{Field: "password_hash", Value: "x"},
	}, nil)
	assert.Error(t, err)

	_, err = service.Search(ctx, []SearchCondition{
		{Field: FieldUsername, Value: "a"},
		{Field: FieldUsername, Value: "b"},
	}, nil)
	assert.Error(t, err)

	_, err = service.Search(ctx, []SearchCondition{
		{Field: FieldUsername, Value: "a"},
		{Field: FieldUsername, Value: "b"},
	}, []Connector{"XOR"})
	assert.Error(t, err)
}
