package domain

import (
	"fmt"
)

// ConnectionInfo identifies a running client endpoint. A reconnect replaces
// the whole value, old info is never merged.
type ConnectionInfo struct {
	Port       int
	Credential string // base64("riot:" + lockfile password)
}

func (c ConnectionInfo) BaseURL() string {
	return fmt.Sprintf("https://127.0.0.1:%d", c.Port)
}

type Champion struct {
	ID   int
	Name string
}

type SummonerSpell struct {
	ID   int
	Name string
}

// PickEntry is one queued champion pick. An empty Name is an explicit
// "skip this pick" placeholder, distinct from nothing being queued.
type PickEntry struct {
	ChampionID int
	Name       string
}

func (p PickEntry) IsSkip() bool {
	return p.Name == ""
}

// BanEntry is the single outstanding ban preference. An empty Name means
// "ban nothing" once the entry exists.
type BanEntry struct {
	ChampionID int
	Name       string
}

func (b BanEntry) IsSkip() bool {
	return b.Name == ""
}

// SpellPair holds the two loadout slot names in order. Choosing a name that
// already occupies the other slot swaps the pair instead of duplicating it.
type SpellPair struct {
	Slot1 string
	Slot2 string
}

func (p SpellPair) Swap() SpellPair {
	return SpellPair{Slot1: p.Slot2, Slot2: p.Slot1}
}

func (p SpellPair) Complete() bool {
	return p.Slot1 != "" && p.Slot2 != ""
}

func (p SpellPair) Equal(other SpellPair) bool {
	return p.Slot1 == other.Slot1 && p.Slot2 == other.Slot2
}

// Loadout is the pair of spell ids currently equipped on the player's seat,
// as reported by the client roster.
type Loadout struct {
	Spell1ID int
	Spell2ID int
}

type Toggles struct {
	AutoAccept  bool
	AutoPickBan bool
	AutoSpells  bool
}
