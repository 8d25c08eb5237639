package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/charkeep/internal/authz"
	"github.com/louisbranch/charkeep/internal/character"
	apperrors "github.com/louisbranch/charkeep/internal/platform/errors"
	"github.com/louisbranch/charkeep/internal/platform/requestctx"
	"github.com/louisbranch/charkeep/internal/storage"
	"github.com/louisbranch/charkeep/internal/web/httpx"
)

type characterPayload struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Name  string `json:"name"`
	Race  string `json:"race"`
	Class string `json:"class"`
	Level int    `json:"level"`

	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`

	HitPoints    int `json:"hitPoints"`
	MaxHitPoints int `json:"maxHitPoints"`
	ArmorClass   int `json:"armorClass"`

	Background    string `json:"background,omitempty"`
	Alignment     string `json:"alignment,omitempty"`
	Experience    int    `json:"experience"`
	Proficiencies string `json:"proficiencies,omitempty"`
	Equipment     string `json:"equipment,omitempty"`
	Spells        string `json:"spells,omitempty"`
	Features      string `json:"features,omitempty"`
	Notes         string `json:"notes,omitempty"`
	CampaignID    string `json:"campaignId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type createCharacterRequest struct {
	Name  string `json:"name"`
	Race  string `json:"race"`
	Class string `json:"class"`
	Level int    `json:"level"`

	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`

	HitPoints    int `json:"hitPoints"`
	MaxHitPoints int `json:"maxHitPoints"`
	ArmorClass   int `json:"armorClass"`

	Background    string `json:"background"`
	Alignment     string `json:"alignment"`
	Experience    int    `json:"experience"`
	Proficiencies string `json:"proficiencies"`
	Equipment     string `json:"equipment"`
	Spells        string `json:"spells"`
	Features      string `json:"features"`
	Notes         string `json:"notes"`
	CampaignID    string `json:"campaignId"`
}

type updateCharacterRequest struct {
	Name  *string `json:"name"`
	Race  *string `json:"race"`
	Class *string `json:"class"`
	Level *int    `json:"level"`

	Strength     *int `json:"strength"`
	Dexterity    *int `json:"dexterity"`
	Constitution *int `json:"constitution"`
	Intelligence *int `json:"intelligence"`
	Wisdom       *int `json:"wisdom"`
	Charisma     *int `json:"charisma"`

	HitPoints    *int `json:"hitPoints"`
	MaxHitPoints *int `json:"maxHitPoints"`
	ArmorClass   *int `json:"armorClass"`

	Background    *string `json:"background"`
	Alignment     *string `json:"alignment"`
	Experience    *int    `json:"experience"`
	Proficiencies *string `json:"proficiencies"`
	Equipment     *string `json:"equipment"`
	Spells        *string `json:"spells"`
	Features      *string `json:"features"`
	Notes         *string `json:"notes"`
	CampaignID    *string `json:"campaignId"`
}

func toCharacterPayload(c character.Character) characterPayload {
	return characterPayload{
		ID:            c.ID,
		UserID:        c.OwnerID,
		Name:          c.Name,
		Race:          c.Race,
		Class:         c.Class,
		Level:         c.Level,
		Strength:      c.Strength,
		Dexterity:     c.Dexterity,
		Constitution:  c.Constitution,
		Intelligence:  c.Intelligence,
		Wisdom:        c.Wisdom,
		Charisma:      c.Charisma,
		HitPoints:     c.HitPoints,
		MaxHitPoints:  c.MaxHitPoints,
		ArmorClass:    c.ArmorClass,
		Background:    c.Background,
		Alignment:     c.Alignment,
		Experience:    c.Experience,
		Proficiencies: c.Proficiencies,
		Equipment:     c.Equipment,
		Spells:        c.Spells,
		Features:      c.Features,
		Notes:         c.Notes,
		CampaignID:    c.CampaignID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (req createCharacterRequest) toInput() character.Input {
	return character.Input{
		Name:          req.Name,
		Race:          req.Race,
		Class:         req.Class,
		Level:         req.Level,
		Strength:      req.Strength,
		Dexterity:     req.Dexterity,
		Constitution:  req.Constitution,
		Intelligence:  req.Intelligence,
		Wisdom:        req.Wisdom,
		Charisma:      req.Charisma,
		HitPoints:     req.HitPoints,
		MaxHitPoints:  req.MaxHitPoints,
		ArmorClass:    req.ArmorClass,
		Background:    req.Background,
		Alignment:     req.Alignment,
		Experience:    req.Experience,
		Proficiencies: req.Proficiencies,
		Equipment:     req.Equipment,
		Spells:        req.Spells,
		Features:      req.Features,
		Notes:         req.Notes,
		CampaignID:    req.CampaignID,
	}
}

func (req updateCharacterRequest) toUpdate() character.Update {
	return character.Update{
		Name:          req.Name,
		Race:          req.Race,
		Class:         req.Class,
		Level:         req.Level,
		Strength:      req.Strength,
		Dexterity:     req.Dexterity,
		Constitution:  req.Constitution,
		Intelligence:  req.Intelligence,
		Wisdom:        req.Wisdom,
		Charisma:      req.Charisma,
		HitPoints:     req.HitPoints,
		MaxHitPoints:  req.MaxHitPoints,
		ArmorClass:    req.ArmorClass,
		Background:    req.Background,
		Alignment:     req.Alignment,
		Experience:    req.Experience,
		Proficiencies: req.Proficiencies,
		Equipment:     req.Equipment,
		Spells:        req.Spells,
		Features:      req.Features,
		Notes:         req.Notes,
		CampaignID:    req.CampaignID,
	}
}

// handleListCharacters returns the caller's characters, most recently
// updated first.
func (h *handler) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	principal := requestctx.UserIDFromContext(httpx.RequestContext(r))
	if decision := authz.CanCreate(principal); decision != authz.DecisionAllow {
		httpx.WriteError(w, decision.Err())
		return
	}

	records, err := h.characters.ListCharactersByOwner(httpx.RequestContext(r), principal)
	if err != nil {
		httpx.WriteError(w, apperrors.Wrap(apperrors.CodeUnavailable, "storage unavailable", err))
		return
	}

	payload := make([]characterPayload, 0, len(records))
	for _, record := range records {
		payload = append(payload, toCharacterPayload(record))
	}
	_ = httpx.WriteJSON(w, http.StatusOK, payload)
}

// handleCreateCharacter creates a character owned by the caller. Ownership
// always comes from the session identity, never from the request body.
func (h *handler) handleCreateCharacter(w http.ResponseWriter, r *http.Request) {
	principal := requestctx.UserIDFromContext(httpx.RequestContext(r))
	if decision := authz.CanCreate(principal); decision != authz.DecisionAllow {
		httpx.WriteError(w, decision.Err())
		return
	}

	var request createCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := character.New(principal, request.toInput(), h.now, h.idGenerator)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := h.characters.PutCharacter(httpx.RequestContext(r), created); err != nil {
		httpx.WriteError(w, apperrors.Wrap(apperrors.CodeUnavailable, "storage unavailable", err))
		return
	}

	_ = httpx.WriteJSON(w, http.StatusCreated, toCharacterPayload(created))
}

// authorizeCharacter loads the requested character and runs the ownership
// guard. Authentication is checked before existence, so unauthenticated
// callers learn nothing about which ids exist.
func (h *handler) authorizeCharacter(w http.ResponseWriter, r *http.Request) (character.Character, bool) {
	ctx := httpx.RequestContext(r)
	principal := requestctx.UserIDFromContext(ctx)

	characterID := strings.TrimSpace(r.PathValue("id"))
	resource := authz.Missing()
	var record character.Character
	if characterID != "" {
		loaded, err := h.characters.GetCharacter(ctx, characterID)
		switch {
		case err == nil:
			record = loaded
			resource = authz.Found(loaded.OwnerID)
		case errors.Is(err, storage.ErrNotFound):
		default:
			httpx.WriteError(w, apperrors.Wrap(apperrors.CodeUnavailable, "storage unavailable", err))
			return character.Character{}, false
		}
	}

	if decision := authz.Authorize(principal, resource); decision != authz.DecisionAllow {
		httpx.WriteError(w, decision.Err())
		return character.Character{}, false
	}
	return record, true
}

func (h *handler) handleGetCharacter(w http.ResponseWriter, r *http.Request) {
	record, ok := h.authorizeCharacter(w, r)
	if !ok {
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, toCharacterPayload(record))
}

func (h *handler) handleUpdateCharacter(w http.ResponseWriter, r *http.Request) {
	record, ok := h.authorizeCharacter(w, r)
	if !ok {
		return
	}

	var request updateCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := record.Apply(request.toUpdate(), h.now)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := h.characters.PutCharacter(httpx.RequestContext(r), updated); err != nil {
		httpx.WriteError(w, apperrors.Wrap(apperrors.CodeUnavailable, "storage unavailable", err))
		return
	}

	_ = httpx.WriteJSON(w, http.StatusOK, toCharacterPayload(updated))
}

func (h *handler) handleDeleteCharacter(w http.ResponseWriter, r *http.Request) {
	record, ok := h.authorizeCharacter(w, r)
	if !ok {
		return
	}

	if err := h.characters.DeleteCharacter(httpx.RequestContext(r), record.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteError(w, apperrors.Wrap(apperrors.CodeUnavailable, "storage unavailable", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
