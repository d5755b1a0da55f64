// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

// pastTime returns a timestamp spread over the last opts.MaxDays days so
// seeded data looks like organic activity.
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		Bio:          gofakeit.Sentence(10),
		Location:     fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.CountryAbr()),
		ProfilePhoto: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Availability: []string{"weekdays", "weekends", "evenings", "flexible"}[f.rng.Intn(4)],
		IsPublic:     true,
		Role:         models.RoleUser,
		CreatedAt:    f.pastTime(),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Name, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSkill constructs and persists a catalog `models.Skill`.
func (f *Factory) CreateSkill(name, category string, overrides ...func(*models.Skill)) (*models.Skill, error) {
	skill := &models.Skill{
		Name:     name,
		Category: category,
		Approved: true,
	}

	for _, override := range overrides {
		override(skill)
	}

	if f.opts.DryRun {
		f.nextID++
		skill.ID = f.nextID
		log.Printf("[dry-run] CreateSkill: %s (%s)", skill.Name, skill.Category)
		return skill, nil
	}

	if err := f.db.Create(skill).Error; err != nil {
		return nil, err
	}
	return skill, nil
}

// CreateUserSkill links a user to a catalog skill as offered or wanted.
func (f *Factory) CreateUserSkill(user *models.User, skill *models.Skill, skillType models.SkillType, overrides ...func(*models.UserSkill)) (*models.UserSkill, error) {
	us := &models.UserSkill{
		UserID:      user.ID,
		SkillID:     skill.ID,
		SkillType:   skillType,
		Description: gofakeit.Sentence(8),
	}

	switch skillType {
	case models.SkillTypeOffered:
		levels := []string{models.ProficiencyBeginner, models.ProficiencyIntermediate, models.ProficiencyAdvanced}
		us.Proficiency = levels[f.rng.Intn(len(levels))]
	case models.SkillTypeWanted:
		levels := []string{models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh}
		us.Urgency = levels[f.rng.Intn(len(levels))]
	}

	for _, override := range overrides {
		override(us)
	}

	if f.opts.DryRun {
		f.nextID++
		us.ID = f.nextID
		log.Printf("[dry-run] CreateUserSkill: user=%d skill=%d type=%s", us.UserID, us.SkillID, us.SkillType)
		return us, nil
	}

	if err := f.db.Create(us).Error; err != nil {
		return nil, err
	}
	return us, nil
}

// CreateSwapRequest persists a swap between requester and provider in the
// given status. Terminal statuses get consistent timestamps and reasons.
func (f *Factory) CreateSwapRequest(requester, provider *models.User, requestedSkill, offeredSkill *models.Skill, status models.SwapStatus, overrides ...func(*models.SwapRequest)) (*models.SwapRequest, error) {
	created := f.pastTime()
	swap := &models.SwapRequest{
		RequesterID:      requester.ID,
		ProviderID:       provider.ID,
		RequestedSkillID: requestedSkill.ID,
		OfferedSkillID:   offeredSkill.ID,
		Message:          gofakeit.Sentence(12),
		Status:           status,
		CreatedAt:        created,
	}

	switch status {
	case models.SwapStatusCompleted:
		completedAt := created.Add(time.Duration(f.rng.Intn(72)+1) * time.Hour)
		swap.CompletedAt = &completedAt
	case models.SwapStatusCancelled:
		swap.CancelledReason = gofakeit.Sentence(6)
	}

	for _, override := range overrides {
		override(swap)
	}

	if f.opts.DryRun {
		f.nextID++
		swap.ID = f.nextID
		log.Printf("[dry-run] CreateSwapRequest: %d -> %d status=%s", swap.RequesterID, swap.ProviderID, swap.Status)
		return swap, nil
	}

	if err := f.db.Create(swap).Error; err != nil {
		return nil, err
	}
	return swap, nil
}

// CreateFeedback persists a feedback entry from rater about target,
// optionally referencing a swap.
func (f *Factory) CreateFeedback(rater, target *models.User, swap *models.SwapRequest, overrides ...func(*models.Feedback)) (*models.Feedback, error) {
	fb := &models.Feedback{
		FromUserID: rater.ID,
		ToUserID:   target.ID,
		Rating:     f.rng.Intn(3) + 3, // seeded communities skew positive
		Comment:    gofakeit.Sentence(10),
		IsPublic:   f.rng.Float32() < 0.9,
	}
	if swap != nil {
		fb.SwapRequestID = &swap.ID
		if swap.CompletedAt != nil {
			fb.CreatedAt = swap.CompletedAt.Add(time.Duration(f.rng.Intn(48)+1) * time.Hour)
		}
	}

	for _, override := range overrides {
		override(fb)
	}

	if f.opts.DryRun {
		f.nextID++
		fb.ID = f.nextID
		log.Printf("[dry-run] CreateFeedback: %d -> %d rating=%d", fb.FromUserID, fb.ToUserID, fb.Rating)
		return fb, nil
	}

	if err := f.db.Create(fb).Error; err != nil {
		return nil, err
	}
	return fb, nil
}

// CreatePlatformMessage persists an announcement.
func (f *Factory) CreatePlatformMessage(title, content string, overrides ...func(*models.PlatformMessage)) (*models.PlatformMessage, error) {
	msg := &models.PlatformMessage{
		Title:    title,
		Content:  content,
		IsActive: true,
	}

	for _, override := range overrides {
		override(msg)
	}

	if f.opts.DryRun {
		f.nextID++
		msg.ID = f.nextID
		log.Printf("[dry-run] CreatePlatformMessage: %q", msg.Title)
		return msg, nil
	}

	if err := f.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}
