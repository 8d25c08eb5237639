package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/charkeep/internal/character"
	"github.com/louisbranch/charkeep/internal/storage"
)

const putCharacterQuery = `
INSERT INTO characters (
    id, owner_id, name, race, class, level,
    strength, dexterity, constitution, intelligence, wisdom, charisma,
    hit_points, max_hit_points, armor_class,
    background, alignment, experience,
    proficiencies, equipment, spells, features, notes, campaign_id,
    created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    name = excluded.name,
    race = excluded.race,
    class = excluded.class,
    level = excluded.level,
    strength = excluded.strength,
    dexterity = excluded.dexterity,
    constitution = excluded.constitution,
    intelligence = excluded.intelligence,
    wisdom = excluded.wisdom,
    charisma = excluded.charisma,
    hit_points = excluded.hit_points,
    max_hit_points = excluded.max_hit_points,
    armor_class = excluded.armor_class,
    background = excluded.background,
    alignment = excluded.alignment,
    experience = excluded.experience,
    proficiencies = excluded.proficiencies,
    equipment = excluded.equipment,
    spells = excluded.spells,
    features = excluded.features,
    notes = excluded.notes,
    campaign_id = excluded.campaign_id,
    updated_at = excluded.updated_at;
`

const getCharacterQuery = `
SELECT id, owner_id, name, race, class, level,
    strength, dexterity, constitution, intelligence, wisdom, charisma,
    hit_points, max_hit_points, armor_class,
    background, alignment, experience,
    proficiencies, equipment, spells, features, notes, campaign_id,
    created_at, updated_at
FROM characters
WHERE id = ?;
`

const listCharactersByOwnerQuery = `
SELECT id, owner_id, name, race, class, level,
    strength, dexterity, constitution, intelligence, wisdom, charisma,
    hit_points, max_hit_points, armor_class,
    background, alignment, experience,
    proficiencies, equipment, spells, features, notes, campaign_id,
    created_at, updated_at
FROM characters
WHERE owner_id = ?
ORDER BY updated_at DESC, id;
`

const deleteCharacterQuery = `
DELETE FROM characters WHERE id = ?;
`

// PutCharacter inserts or replaces a character record. Ownership never
// changes on conflict; owner_id is written only on first insert.
func (s *Store) PutCharacter(ctx context.Context, c character.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("character id is required")
	}
	if strings.TrimSpace(c.OwnerID) == "" {
		return fmt.Errorf("owner id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, putCharacterQuery,
		c.ID, c.OwnerID, c.Name, c.Race, c.Class, c.Level,
		c.Strength, c.Dexterity, c.Constitution, c.Intelligence, c.Wisdom, c.Charisma,
		c.HitPoints, c.MaxHitPoints, c.ArmorClass,
		c.Background, c.Alignment, c.Experience,
		c.Proficiencies, c.Equipment, c.Spells, c.Features, c.Notes, c.CampaignID,
		toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put character: %w", err)
	}
	return nil
}

// GetCharacter fetches a character record by id.
func (s *Store) GetCharacter(ctx context.Context, characterID string) (character.Character, error) {
	if err := ctx.Err(); err != nil {
		return character.Character{}, err
	}
	if s == nil || s.sqlDB == nil {
		return character.Character{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(characterID) == "" {
		return character.Character{}, fmt.Errorf("character id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, getCharacterQuery, characterID)
	c, err := scanCharacter(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return character.Character{}, storage.ErrNotFound
		}
		return character.Character{}, fmt.Errorf("get character: %w", err)
	}
	return c, nil
}

// ListCharactersByOwner returns the owner's characters, most recently
// updated first.
func (s *Store) ListCharactersByOwner(ctx context.Context, ownerID string) ([]character.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, listCharactersByOwnerQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer rows.Close()

	characters := make([]character.Character, 0)
	for rows.Next() {
		c, err := scanCharacter(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	return characters, nil
}

// DeleteCharacter removes a character record by id.
func (s *Store) DeleteCharacter(ctx context.Context, characterID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(characterID) == "" {
		return fmt.Errorf("character id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, deleteCharacterQuery, characterID)
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanCharacter(scan func(dest ...any) error) (character.Character, error) {
	var (
		c         character.Character
		createdAt int64
		updatedAt int64
	)
	err := scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Race, &c.Class, &c.Level,
		&c.Strength, &c.Dexterity, &c.Constitution, &c.Intelligence, &c.Wisdom, &c.Charisma,
		&c.HitPoints, &c.MaxHitPoints, &c.ArmorClass,
		&c.Background, &c.Alignment, &c.Experience,
		&c.Proficiencies, &c.Equipment, &c.Spells, &c.Features, &c.Notes, &c.CampaignID,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return character.Character{}, err
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}
