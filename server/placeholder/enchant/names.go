// Package enchant resolves enchantment types by name, using the enchantments
// registered with Dragonfly's item package.
package enchant

import (
	"slices"
	"strings"
	"sync"

	"github.com/df-mc/dragonfly/server/item"
	_ "github.com/df-mc/dragonfly/server/item/enchantment"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Registry resolves enchantment types by name.
type Registry interface {
	// ByName returns the enchantment type registered under name. Names are
	// matched case-insensitively. The second return value is false if no
	// enchantment type has the name passed.
	ByName(name string) (item.EnchantmentType, bool)
}

// maxEnchantmentID is the highest enchantment ID probed when indexing the
// enchantments registered with the item package.
const maxEnchantmentID = 255

// legacyAliases maps the enchantment identifiers used by Bukkit-based servers
// to the names used by Bedrock Edition.
var legacyAliases = map[string]string{
	"PROTECTION_ENVIRONMENTAL": "PROTECTION",
	"PROTECTION_FIRE":          "FIRE_PROTECTION",
	"PROTECTION_FALL":          "FEATHER_FALLING",
	"PROTECTION_EXPLOSIONS":    "BLAST_PROTECTION",
	"PROTECTION_PROJECTILE":    "PROJECTILE_PROTECTION",
	"OXYGEN":                   "RESPIRATION",
	"WATER_WORKER":             "AQUA_AFFINITY",
	"DAMAGE_ALL":               "SHARPNESS",
	"DAMAGE_UNDEAD":            "SMITE",
	"DAMAGE_ARTHROPODS":        "BANE_OF_ARTHROPODS",
	"LOOT_BONUS_MOBS":          "LOOTING",
	"LOOT_BONUS_BLOCKS":        "FORTUNE",
	"DIG_SPEED":                "EFFICIENCY",
	"DURABILITY":               "UNBREAKING",
	"ARROW_DAMAGE":             "POWER",
	"ARROW_KNOCKBACK":          "PUNCH",
	"ARROW_FIRE":               "FLAME",
	"ARROW_INFINITE":           "INFINITY",
	"LUCK":                     "LUCK_OF_THE_SEA",
	"SWEEPING_EDGE":            "SWEEPING",
}

// Names is a Registry backed by the enchantments registered with the item
// package. Enchantments are indexed by their normalised Name(), so "Fire
// Aspect" is found as "fire_aspect", "FIRE ASPECT" or "Fire-Aspect".
type Names struct {
	once    sync.Once
	mu      sync.RWMutex
	types   map[string]item.EnchantmentType
	aliases map[string]string
}

// NewNames returns a Names registry. The aliases passed are added to, and take
// precedence over, the built-in legacy aliases. Both keys and values of aliases
// are normalised.
func NewNames(aliases map[string]string) *Names {
	n := &Names{
		types:   make(map[string]item.EnchantmentType),
		aliases: make(map[string]string, len(legacyAliases)+len(aliases)),
	}
	for alias, target := range legacyAliases {
		n.aliases[alias] = target
	}
	for alias, target := range aliases {
		key, value := Normalize(alias), Normalize(target)
		if key == "" || value == "" {
			continue
		}
		n.aliases[key] = value
	}
	return n
}

// ByName ...
func (n *Names) ByName(name string) (item.EnchantmentType, bool) {
	n.once.Do(n.index)

	key := Normalize(name)
	if key == "" {
		return nil, false
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	if t, ok := n.types[key]; ok {
		return t, true
	}
	if target, ok := n.aliases[key]; ok {
		t, ok := n.types[target]
		return t, ok
	}
	return nil, false
}

// Register makes t resolvable under name in addition to its own Name(). It may
// be used for custom enchantments that are not registered with an ID.
func (n *Names) Register(name string, t item.EnchantmentType) {
	if t == nil {
		return
	}
	n.once.Do(n.index)

	n.mu.Lock()
	defer n.mu.Unlock()
	if key := Normalize(name); key != "" {
		n.types[key] = t
	}
	if key := Normalize(t.Name()); key != "" {
		if _, exists := n.types[key]; !exists {
			n.types[key] = t
		}
	}
}

// Known returns the normalised names of all indexed enchantment types in sorted
// order.
func (n *Names) Known() []string {
	n.once.Do(n.index)

	n.mu.RLock()
	names := make([]string, 0, len(n.types))
	for name := range n.types {
		names = append(names, name)
	}
	n.mu.RUnlock()

	slices.Sort(names)
	return names
}

// index fills the registry with every enchantment registered with the item
// package.
func (n *Names) index() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id := 0; id <= maxEnchantmentID; id++ {
		t, ok := item.EnchantmentByID(id)
		if !ok || t == nil {
			continue
		}
		if key := Normalize(t.Name()); key != "" {
			n.types[key] = t
		}
	}
}

// Normalize returns the canonical form of an enchantment name: upper case, with
// runs of spaces and dashes replaced by a single underscore.
func Normalize(name string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(name), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	return cases.Upper(language.Und).String(strings.Join(fields, "_"))
}

var _ Registry = (*Names)(nil)
