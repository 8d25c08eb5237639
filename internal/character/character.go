// Package character provides the character sheet domain.
package character

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/charkeep/internal/platform/errors"
	"github.com/louisbranch/charkeep/internal/platform/id"
)

// Validation bounds for character sheet numbers.
const (
	MinLevel   = 1
	MaxLevel   = 20
	MinAbility = 1
	MaxAbility = 30
)

var (
	// ErrEmptyName indicates a missing character name.
	ErrEmptyName = apperrors.New(apperrors.CodeCharacterEmptyName, "character name is required")
	// ErrEmptyRace indicates a missing race.
	ErrEmptyRace = apperrors.New(apperrors.CodeCharacterEmptyRace, "character race is required")
	// ErrEmptyClass indicates a missing class.
	ErrEmptyClass = apperrors.New(apperrors.CodeCharacterEmptyClass, "character class is required")
	// ErrInvalidLevel indicates a level outside 1-20.
	ErrInvalidLevel = apperrors.New(apperrors.CodeCharacterInvalidLevel,
		fmt.Sprintf("level must be between %d and %d", MinLevel, MaxLevel))
	// ErrInvalidHitPoints indicates hit points outside valid bounds.
	ErrInvalidHitPoints = apperrors.New(apperrors.CodeCharacterInvalidHp,
		"hit points must be non-negative and max hit points at least 1")
	// ErrInvalidArmorClass indicates an armor class below 1.
	ErrInvalidArmorClass = apperrors.New(apperrors.CodeCharacterInvalidArmor, "armor class must be at least 1")
	// ErrInvalidExperience indicates negative experience points.
	ErrInvalidExperience = apperrors.New(apperrors.CodeCharacterInvalidXp, "experience must be non-negative")
)

// Character is an owned character sheet record.
//
// OwnerID is set when the sheet is created and never reassigned; every
// mutation keeps the original owner.
type Character struct {
	ID      string
	OwnerID string

	Name  string
	Race  string
	Class string
	Level int

	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int

	HitPoints    int
	MaxHitPoints int
	ArmorClass   int

	Background    string
	Alignment     string
	Experience    int
	Proficiencies string
	Equipment     string
	Spells        string
	Features      string
	Notes         string
	CampaignID    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Input carries the caller-supplied fields for creating a character.
type Input struct {
	Name  string
	Race  string
	Class string
	Level int

	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int

	HitPoints    int
	MaxHitPoints int
	ArmorClass   int

	Background    string
	Alignment     string
	Experience    int
	Proficiencies string
	Equipment     string
	Spells        string
	Features      string
	Notes         string
	CampaignID    string
}

// Update carries a partial set of field changes; nil fields are untouched.
type Update struct {
	Name  *string
	Race  *string
	Class *string
	Level *int

	Strength     *int
	Dexterity    *int
	Constitution *int
	Intelligence *int
	Wisdom       *int
	Charisma     *int

	HitPoints    *int
	MaxHitPoints *int
	ArmorClass   *int

	Background    *string
	Alignment     *string
	Experience    *int
	Proficiencies *string
	Equipment     *string
	Spells        *string
	Features      *string
	Notes         *string
	CampaignID    *string
}

// New creates a character sheet owned by ownerID from validated input.
// The owner comes from the resolved caller identity, never from input.
func New(ownerID string, input Input, now func() time.Time, idGenerator func() (string, error)) (Character, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	if strings.TrimSpace(ownerID) == "" {
		return Character{}, fmt.Errorf("owner id is required")
	}

	c := Character{
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(input.Name),
		Race:          strings.TrimSpace(input.Race),
		Class:         strings.TrimSpace(input.Class),
		Level:         input.Level,
		Strength:      input.Strength,
		Dexterity:     input.Dexterity,
		Constitution:  input.Constitution,
		Intelligence:  input.Intelligence,
		Wisdom:        input.Wisdom,
		Charisma:      input.Charisma,
		HitPoints:     input.HitPoints,
		MaxHitPoints:  input.MaxHitPoints,
		ArmorClass:    input.ArmorClass,
		Background:    input.Background,
		Alignment:     input.Alignment,
		Experience:    input.Experience,
		Proficiencies: input.Proficiencies,
		Equipment:     input.Equipment,
		Spells:        input.Spells,
		Features:      input.Features,
		Notes:         input.Notes,
		CampaignID:    input.CampaignID,
	}
	if err := c.validate(); err != nil {
		return Character{}, err
	}

	characterID, err := idGenerator()
	if err != nil {
		return Character{}, fmt.Errorf("generate character id: %w", err)
	}
	c.ID = characterID

	createdAt := now().UTC()
	c.CreatedAt = createdAt
	c.UpdatedAt = createdAt
	return c, nil
}

// Apply returns a copy of c with the update's fields applied and
// revalidated. Identity, ownership, and creation time are preserved.
func (c Character) Apply(update Update, now func() time.Time) (Character, error) {
	if now == nil {
		now = time.Now
	}

	next := c
	applyString(&next.Name, update.Name)
	applyString(&next.Race, update.Race)
	applyString(&next.Class, update.Class)
	applyInt(&next.Level, update.Level)
	applyInt(&next.Strength, update.Strength)
	applyInt(&next.Dexterity, update.Dexterity)
	applyInt(&next.Constitution, update.Constitution)
	applyInt(&next.Intelligence, update.Intelligence)
	applyInt(&next.Wisdom, update.Wisdom)
	applyInt(&next.Charisma, update.Charisma)
	applyInt(&next.HitPoints, update.HitPoints)
	applyInt(&next.MaxHitPoints, update.MaxHitPoints)
	applyInt(&next.ArmorClass, update.ArmorClass)
	applyString(&next.Background, update.Background)
	applyString(&next.Alignment, update.Alignment)
	applyInt(&next.Experience, update.Experience)
	applyString(&next.Proficiencies, update.Proficiencies)
	applyString(&next.Equipment, update.Equipment)
	applyString(&next.Spells, update.Spells)
	applyString(&next.Features, update.Features)
	applyString(&next.Notes, update.Notes)
	applyString(&next.CampaignID, update.CampaignID)

	if err := next.validate(); err != nil {
		return Character{}, err
	}

	next.UpdatedAt = now().UTC()
	return next, nil
}

func (c Character) validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if c.Race == "" {
		return ErrEmptyRace
	}
	if c.Class == "" {
		return ErrEmptyClass
	}
	if c.Level < MinLevel || c.Level > MaxLevel {
		return ErrInvalidLevel
	}
	abilities := map[string]int{
		"strength":     c.Strength,
		"dexterity":    c.Dexterity,
		"constitution": c.Constitution,
		"intelligence": c.Intelligence,
		"wisdom":       c.Wisdom,
		"charisma":     c.Charisma,
	}
	for name, score := range abilities {
		if score < MinAbility || score > MaxAbility {
			return apperrors.WithMetadata(apperrors.CodeCharacterInvalidAbility,
				fmt.Sprintf("%s must be between %d and %d", name, MinAbility, MaxAbility),
				map[string]string{"ability": name})
		}
	}
	if c.HitPoints < 0 || c.MaxHitPoints < 1 {
		return ErrInvalidHitPoints
	}
	if c.ArmorClass < 1 {
		return ErrInvalidArmorClass
	}
	if c.Experience < 0 {
		return ErrInvalidExperience
	}
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
