// Package helditem implements placeholders that inspect the item a player holds
// in their main hand.
package helditem

import (
	"strings"

	"github.com/df-mc/dragonfly/server/item"
	"github.com/dm-vev/adamant-placeholders/server/placeholder"
	"github.com/dm-vev/adamant-placeholders/server/placeholder/enchant"
)

// Meta is the descriptive data attached to a held item.
type Meta interface {
	// HasEnchant reports if the item carries an enchantment of the type
	// passed. It returns false for a nil type.
	HasEnchant(t item.EnchantmentType) bool
}

// MetaFunc returns the Meta of an item stack. The second return value is false
// if the stack has no metadata.
type MetaFunc func(s item.Stack) (Meta, bool)

// StackMeta is the default MetaFunc. A stack without a concrete item, or one
// holding air, has no metadata.
func StackMeta(s item.Stack) (Meta, bool) {
	it := s.Item()
	if it == nil {
		return nil, false
	}
	if name, _ := it.EncodeItem(); name == "minecraft:air" {
		return nil, false
	}
	return stackMeta{s: s}, true
}

type stackMeta struct {
	s item.Stack
}

// HasEnchant ...
func (m stackMeta) HasEnchant(t item.EnchantmentType) bool {
	if t == nil {
		return false
	}
	_, ok := m.s.Enchantment(t)
	return ok
}

// HasEnchantName is the name the HasEnchant placeholder is registered under.
const HasEnchantName = "helditemhasenchant"

// HasEnchant is a placeholder reporting if the item in the main hand of the
// player carries the enchantment named by its first argument. It resolves to
// placeholder.Null without a player and to false when the hand is empty, the
// item has no metadata or the enchantment name is unknown.
type HasEnchant struct {
	enchantments enchant.Registry
	meta         MetaFunc
}

// NewHasEnchant returns a HasEnchant placeholder that resolves enchantment
// names through the Registry passed. If meta is nil, StackMeta is used.
func NewHasEnchant(enchantments enchant.Registry, meta MetaFunc) HasEnchant {
	if meta == nil {
		meta = StackMeta
	}
	return HasEnchant{enchantments: enchantments, meta: meta}
}

// Name ...
func (HasEnchant) Name() string {
	return HasEnchantName
}

// Resolve ...
func (h HasEnchant) Resolve(ctx placeholder.Context, args placeholder.Args) (placeholder.Value, error) {
	if ctx.Player == nil {
		return placeholder.Null, nil
	}
	held, _ := ctx.Player.HeldItems()
	if held.Empty() {
		return placeholder.Bool(false), nil
	}
	if len(args) < 1 {
		return placeholder.Null, placeholder.InvalidArgument("Invalid parameter! [String]")
	}
	name, ok := args.String(0)
	if !ok {
		return placeholder.Null, placeholder.InvalidArgument("Invalid parameter! " + HasEnchantName + " accepts 'String' as parameter.")
	}

	// An unknown name leaves t nil, which no item carries.
	var t item.EnchantmentType
	if h.enchantments != nil {
		t, _ = h.enchantments.ByName(strings.ToUpper(name))
	}

	metaOf := h.meta
	if metaOf == nil {
		metaOf = StackMeta
	}
	meta, ok := metaOf(held)
	if !ok || meta == nil {
		return placeholder.Bool(false), nil
	}
	return placeholder.Bool(meta.HasEnchant(t)), nil
}

var _ placeholder.Placeholder = HasEnchant{}
