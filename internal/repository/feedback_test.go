package repository

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	feedback := NewFeedbackRepository(db)
	ctx := context.Background()

	rater := seedUser(t, users, "rater@example.com", "Rater")
	rated := seedUser(t, users, "rated@example.com", "Rated")

	require.NoError(t, feedback.Create(ctx, &models.Feedback{
		FromUserID: rater.ID,
		ToUserID:   rated.ID,
		Rating:     5,
		Comment:    "Great teacher",
		IsPublic:   true,
	}))
	require.NoError(t, feedback.Create(ctx, &models.Feedback{
		FromUserID: rater.ID,
		ToUserID:   rated.ID,
		Rating:     2,
		Comment:    "Between us",
		IsPublic:   false,
	}))

	entries, err := feedback.ListPublicForUser(ctx, rated.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Great teacher", entries[0].Comment)
	assert.Equal(t, "Rater", entries[0].FromUser.Name)
}

func TestFeedbackRepository_RatingSummary(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	feedback := NewFeedbackRepository(db)
	ctx := context.Background()

	rater := seedUser(t, users, "rater@example.com", "Rater")
	other := seedUser(t, users, "other@example.com", "Other")
	rated := seedUser(t, users, "rated@example.com", "Rated")

	t.Run("no feedback yet", func(t *testing.T) {
		summary, err := feedback.RatingSummary(ctx, rated.ID)
		require.NoError(t, err)
		assert.Zero(t, summary.Count)
		assert.Zero(t, summary.Average)
	})

	require.NoError(t, feedback.Create(ctx, &models.Feedback{
		FromUserID: rater.ID, ToUserID: rated.ID, Rating: 5, Comment: "Excellent", IsPublic: true,
	}))
	require.NoError(t, feedback.Create(ctx, &models.Feedback{
		FromUserID: other.ID, ToUserID: rated.ID, Rating: 4, Comment: "Good", IsPublic: true,
	}))
	// Private feedback stays out of the aggregate
	require.NoError(t, feedback.Create(ctx, &models.Feedback{
		FromUserID: other.ID, ToUserID: rated.ID, Rating: 1, Comment: "Hidden", IsPublic: false,
	}))

	t.Run("public mean", func(t *testing.T) {
		summary, err := feedback.RatingSummary(ctx, rated.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), summary.Count)
		assert.InDelta(t, 4.5, summary.Average, 0.001)
	})
}

func TestFeedbackRepository_ExistsForSwapAndRater(t *testing.T) {
	f := newSwapFixture(t)
	feedback := NewFeedbackRepository(f.db)
	ctx := context.Background()

	swap := f.newSwap(t)

	exists, err := feedback.ExistsForSwapAndRater(ctx, swap.ID, f.requester.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, feedback.Create(ctx, &models.Feedback{
		FromUserID:    f.requester.ID,
		ToUserID:      f.provider.ID,
		SwapRequestID: &swap.ID,
		Rating:        5,
		Comment:       "Done and dusted",
		IsPublic:      true,
	}))

	exists, err = feedback.ExistsForSwapAndRater(ctx, swap.ID, f.requester.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// The other party has not rated yet
	exists, err = feedback.ExistsForSwapAndRater(ctx, swap.ID, f.provider.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
