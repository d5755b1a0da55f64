// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"skillswap/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumSwaps    int
	ShouldClean bool
	DryRun      bool
	SkipBcrypt  bool
	// MaxDays spreads generated timestamps over the last N days.
	MaxDays int
}

// skillCatalog is the curated set of skills seeded into the catalog,
// keyed by category.
var skillCatalog = map[string][]string{
	"music":     {"Guitar", "Piano", "Singing", "Music Production", "Drums"},
	"language":  {"Spanish", "French", "Japanese", "German", "Mandarin"},
	"tech":      {"Web Development", "Python", "Data Analysis", "Linux", "Photography Editing"},
	"crafts":    {"Knitting", "Woodworking", "Pottery", "Sewing"},
	"fitness":   {"Yoga", "Running Coaching", "Climbing", "Swimming"},
	"cooking":   {"Baking", "Italian Cooking", "Sushi Making", "Fermentation"},
	"lifestyle": {"Gardening", "Personal Finance", "Public Speaking", "Chess"},
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d swaps...", opts.NumUsers, opts.NumSwaps)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	skills, err := createCatalog(factory)
	if err != nil {
		return fmt.Errorf("failed to create skill catalog: %w", err)
	}
	log.Printf("✓ %d catalog skills available", len(skills))

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	offered, err := attachSkills(factory, users, skills)
	if err != nil {
		return fmt.Errorf("failed to attach user skills: %w", err)
	}

	swaps, err := createSwaps(factory, users, offered, opts.NumSwaps)
	if err != nil {
		return fmt.Errorf("failed to create swaps: %w", err)
	}
	log.Printf("✓ %d swaps created", len(swaps))

	feedbackCount, err := createFeedback(factory, swaps)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	log.Printf("✓ %d feedback entries created", feedbackCount)

	if _, err := factory.CreatePlatformMessage(
		"Welcome to SkillSwap",
		"Browse profiles, list what you can teach, and propose your first swap.",
	); err != nil {
		return fmt.Errorf("failed to create platform message: %w", err)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE feedback, swap_requests, user_skills, skills, platform_messages, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createCatalog(f *Factory) ([]*models.Skill, error) {
	var skills []*models.Skill
	for category, names := range skillCatalog {
		for _, name := range names {
			skill, err := f.CreateSkill(name, category)
			if err != nil {
				return nil, err
			}
			skills = append(skills, skill)
		}
	}
	return skills, nil
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include fixed accounts for local login.
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	fixed := []struct {
		name, email, role string
	}{
		{"Admin", "admin@example.com", models.RoleAdmin},
		{"Demo User", "demo@example.com", models.RoleUser},
	}
	for _, acct := range fixed {
		acct := acct
		user, err := f.CreateUser(func(u *models.User) {
			u.Name = acct.name
			u.Email = acct.email
			u.Role = acct.role
			u.Password = string(hashedPassword)
			u.Bio = "One of the OGs."
		})
		if err != nil {
			// likely already present from a previous run
			log.Printf("skipping fixed account %s: %v", acct.email, err)
			continue
		}
		users = append(users, user)
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// attachSkills gives every user a few offered and wanted skills and returns
// the offered skill IDs per user, used when generating valid swaps.
func attachSkills(f *Factory, users []*models.User, skills []*models.Skill) (map[uint][]*models.Skill, error) {
	offered := make(map[uint][]*models.Skill, len(users))

	for _, user := range users {
		numOffered := f.rng.Intn(3) + 1
		numWanted := f.rng.Intn(3) + 1

		perm := f.rng.Perm(len(skills))
		idx := 0

		for i := 0; i < numOffered && idx < len(perm); i++ {
			skill := skills[perm[idx]]
			idx++
			if _, err := f.CreateUserSkill(user, skill, models.SkillTypeOffered); err != nil {
				return nil, err
			}
			offered[user.ID] = append(offered[user.ID], skill)
		}

		for i := 0; i < numWanted && idx < len(perm); i++ {
			skill := skills[perm[idx]]
			idx++
			if _, err := f.CreateUserSkill(user, skill, models.SkillTypeWanted); err != nil {
				return nil, err
			}
		}
	}

	return offered, nil
}

// swapStatusMix is the target distribution of seeded swap statuses.
var swapStatusMix = []struct {
	status models.SwapStatus
	weight int
}{
	{models.SwapStatusPending, 25},
	{models.SwapStatusAccepted, 15},
	{models.SwapStatusRejected, 15},
	{models.SwapStatusCancelled, 10},
	{models.SwapStatusCompleted, 35},
}

func pickStatus(rng *rand.Rand) models.SwapStatus {
	total := 0
	for _, entry := range swapStatusMix {
		total += entry.weight
	}
	n := rng.Intn(total)
	for _, entry := range swapStatusMix {
		n -= entry.weight
		if n < 0 {
			return entry.status
		}
	}
	return models.SwapStatusPending
}

func createSwaps(f *Factory, users []*models.User, offered map[uint][]*models.Skill, count int) ([]*models.SwapRequest, error) {
	if len(users) < 2 {
		return nil, nil
	}

	swaps := make([]*models.SwapRequest, 0, count)
	// one pending request per pair at most
	pendingPairs := make(map[[2]uint]bool)

	for attempts := 0; len(swaps) < count && attempts < count*10; attempts++ {
		requester := users[f.rng.Intn(len(users))]
		provider := users[f.rng.Intn(len(users))]
		if requester.ID == provider.ID {
			continue
		}

		requesterOffers := offered[requester.ID]
		providerOffers := offered[provider.ID]
		if len(requesterOffers) == 0 || len(providerOffers) == 0 {
			continue
		}

		status := pickStatus(f.rng)
		if status == models.SwapStatusPending {
			pair := [2]uint{requester.ID, provider.ID}
			if pendingPairs[pair] {
				continue
			}
			pendingPairs[pair] = true
		}

		swap, err := f.CreateSwapRequest(
			requester, provider,
			providerOffers[f.rng.Intn(len(providerOffers))],
			requesterOffers[f.rng.Intn(len(requesterOffers))],
			status,
		)
		if err != nil {
			return nil, err
		}
		swaps = append(swaps, swap)
	}

	return swaps, nil
}

// createFeedback leaves feedback on most completed swaps, sometimes from
// both sides.
func createFeedback(f *Factory, swaps []*models.SwapRequest) (int, error) {
	created := 0
	for _, swap := range swaps {
		if swap.Status != models.SwapStatusCompleted {
			continue
		}
		if f.rng.Float32() < 0.2 {
			continue
		}

		requester := &models.User{ID: swap.RequesterID}
		provider := &models.User{ID: swap.ProviderID}

		if _, err := f.CreateFeedback(requester, provider, swap); err != nil {
			return created, err
		}
		created++

		if f.rng.Float32() < 0.6 {
			if _, err := f.CreateFeedback(provider, requester, swap); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
