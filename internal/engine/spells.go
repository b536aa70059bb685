package engine

import (
	"errors"
	"fmt"
	"strings"

	"league-watcher/internal/catalog"
	"league-watcher/internal/domain"
	"league-watcher/internal/lcu"
)

// ErrIncompleteLoadout means only one of the two slots has a spell chosen
// while auto-selection is on. No partial submission is ever issued.
var ErrIncompleteLoadout = errors.New("both spell slots must be selected")

const (
	smiteName = "Smite"
	flashName = "Flash"
	ghostName = "Ghost"
)

// SpellSelector resolves the operator's two chosen spell names into the
// numeric ids submitted to the client, applying the jungle override policy.
type SpellSelector struct {
	catalog *catalog.Catalog
}

func NewSpellSelector(cat *catalog.Catalog) *SpellSelector {
	return &SpellSelector{catalog: cat}
}

// ApplyJungleOverride adjusts the chosen pair when the assigned role is a
// jungle position and neither slot carries Smite. Flash and Ghost keep their
// slot; everything else loses slot 1 to Smite. The caller stores the result
// back as the preference so later cycles see the adjusted pair.
func ApplyJungleOverride(pair domain.SpellPair, role string) domain.SpellPair {
	if !strings.Contains(strings.ToLower(role), "jungle") {
		return pair
	}
	if pair.Slot1 == smiteName || pair.Slot2 == smiteName {
		return pair
	}

	switch {
	case pair.Slot1 == flashName:
		return domain.SpellPair{Slot1: flashName, Slot2: smiteName}
	case pair.Slot1 == ghostName:
		return domain.SpellPair{Slot1: ghostName, Slot2: smiteName}
	case pair.Slot2 == flashName:
		return domain.SpellPair{Slot1: smiteName, Slot2: flashName}
	case pair.Slot2 == ghostName:
		return domain.SpellPair{Slot1: smiteName, Slot2: ghostName}
	default:
		return domain.SpellPair{Slot1: smiteName, Slot2: pair.Slot2}
	}
}

// Resolve turns a complete, role-adjusted pair into the submission body.
func (s *SpellSelector) Resolve(pair domain.SpellPair, role string) (lcu.SpellSelection, domain.SpellPair, error) {
	if !pair.Complete() {
		return lcu.SpellSelection{}, pair, ErrIncompleteLoadout
	}

	adjusted := ApplyJungleOverride(pair, role)

	spell1, ok := s.catalog.SpellByName(adjusted.Slot1)
	if !ok {
		return lcu.SpellSelection{}, adjusted, fmt.Errorf("unknown summoner spell %q", adjusted.Slot1)
	}
	spell2, ok := s.catalog.SpellByName(adjusted.Slot2)
	if !ok {
		return lcu.SpellSelection{}, adjusted, fmt.Errorf("unknown summoner spell %q", adjusted.Slot2)
	}

	return lcu.SpellSelection{Spell1ID: spell1.ID, Spell2ID: spell2.ID}, adjusted, nil
}
