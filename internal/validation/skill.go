package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var skillNameRegex = regexp.MustCompile(`^[\pL\pN][\pL\pN &+/.'-]{1,59}$`)

var validProficiencies = map[string]struct{}{
	"beginner":     {},
	"intermediate": {},
	"advanced":     {},
}

var validUrgencies = map[string]struct{}{
	"low":    {},
	"medium": {},
	"high":   {},
}

// ValidateSkillName validates catalog skill names.
func ValidateSkillName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 {
		return fmt.Errorf("skill name must be at least 2 characters long")
	}
	if len(trimmed) > 60 {
		return fmt.Errorf("skill name must not exceed 60 characters")
	}
	if !skillNameRegex.MatchString(trimmed) {
		return fmt.Errorf("skill name contains invalid characters")
	}
	return nil
}

// ValidateProficiency validates the proficiency level of an offered skill.
// An empty value is allowed and treated as unspecified.
func ValidateProficiency(level string) error {
	if level == "" {
		return nil
	}
	if _, ok := validProficiencies[level]; !ok {
		return fmt.Errorf("proficiency must be one of beginner, intermediate, advanced")
	}
	return nil
}

// ValidateUrgency validates the urgency of a wanted skill.
// An empty value is allowed and treated as unspecified.
func ValidateUrgency(urgency string) error {
	if urgency == "" {
		return nil
	}
	if _, ok := validUrgencies[urgency]; !ok {
		return fmt.Errorf("urgency must be one of low, medium, high")
	}
	return nil
}
