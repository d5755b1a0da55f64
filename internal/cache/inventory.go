package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	ProfileKeyPrefix    = "profile:%d"
	UserRatingPrefix    = "user:%d:rating"
	SkillListKey        = "skills:approved"
	AdminStatsKey       = "admin:stats"
	PlatformMessagesKey = "platform:messages"
)

const (
	UserTTL            = 5 * time.Minute
	ProfileTTL         = 5 * time.Minute
	UserRatingTTL      = 2 * time.Minute
	SkillListTTL       = 10 * time.Minute
	AdminStatsTTL      = 1 * time.Minute
	PlatformMessageTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func UserRatingKey(userID uint) string {
	return fmt.Sprintf(UserRatingPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser drops every cached view of the user: the row itself, the
// assembled profile, and the rating aggregate.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, ProfileKey(userID))
	Invalidate(ctx, UserRatingKey(userID))
}

func InvalidateSkillList(ctx context.Context) {
	Invalidate(ctx, SkillListKey)
}

func InvalidateAdminStats(ctx context.Context) {
	Invalidate(ctx, AdminStatsKey)
}

func InvalidatePlatformMessages(ctx context.Context) {
	Invalidate(ctx, PlatformMessagesKey)
}
