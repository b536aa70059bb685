package catalog

import (
	"sort"
	"strings"

	"league-watcher/internal/domain"
)

// Catalog is the immutable name↔id table set for champions and summoner
// spells. It is built once at startup and never mutated afterwards.
type Catalog struct {
	version        string
	championsByKey map[string]domain.Champion
	championNames  map[int]string
	spellsByKey    map[string]domain.SummonerSpell
	spellNames     []string
}

func New(version string, champions []domain.Champion, spells []domain.SummonerSpell) *Catalog {
	c := &Catalog{
		version:        version,
		championsByKey: make(map[string]domain.Champion, len(champions)),
		championNames:  make(map[int]string, len(champions)),
		spellsByKey:    make(map[string]domain.SummonerSpell, len(spells)),
		spellNames:     make([]string, 0, len(spells)),
	}
	for _, champ := range champions {
		c.championsByKey[NormalizeName(champ.Name)] = champ
		c.championNames[champ.ID] = champ.Name
	}
	for _, spell := range spells {
		c.spellsByKey[NormalizeName(spell.Name)] = spell
		c.spellNames = append(c.spellNames, spell.Name)
	}
	sort.Strings(c.spellNames)
	return c
}

func (c *Catalog) Version() string {
	return c.version
}

func (c *Catalog) ChampionByName(name string) (domain.Champion, bool) {
	champ, ok := c.championsByKey[NormalizeName(name)]
	return champ, ok
}

func (c *Catalog) ChampionName(id int) (string, bool) {
	name, ok := c.championNames[id]
	return name, ok
}

// ChampionsMatching returns display names of champions whose normalized name
// starts with the given prefix, for input suggestions.
func (c *Catalog) ChampionsMatching(prefix string) []string {
	key := NormalizeName(prefix)
	if key == "" {
		return nil
	}
	var names []string
	for k, champ := range c.championsByKey {
		if strings.HasPrefix(k, key) {
			names = append(names, champ.Name)
		}
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) SpellByName(name string) (domain.SummonerSpell, bool) {
	spell, ok := c.spellsByKey[NormalizeName(name)]
	return spell, ok
}

func (c *Catalog) SpellNames() []string {
	return c.spellNames
}

// NormalizeName folds user input for lookup: lowercase with spaces and
// apostrophes removed, so "Kai'Sa", "kaisa" and "Kai Sa" all match.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "'", "")
	return strings.ToLower(name)
}
