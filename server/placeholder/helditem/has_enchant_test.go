package helditem

import (
	"errors"
	"testing"

	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/item/enchantment"
	"github.com/dm-vev/adamant-placeholders/server/placeholder"
	"github.com/dm-vev/adamant-placeholders/server/placeholder/enchant"
)

type fakeHolder struct {
	main item.Stack
}

func (f fakeHolder) HeldItems() (item.Stack, item.Stack) { return f.main, item.Stack{} }

func sharpSword() item.Stack {
	return item.NewStack(item.Sword{Tier: item.ToolTierDiamond}, 1).
		WithEnchantments(item.NewEnchantment(enchantment.Sharpness, 3))
}

func resolve(t *testing.T, h placeholder.Holder, args ...any) (placeholder.Value, error) {
	t.Helper()
	p := NewHasEnchant(enchant.NewNames(nil), nil)
	return p.Resolve(placeholder.Context{Player: h}, placeholder.Args(args))
}

func TestHasEnchantWithoutPlayerIsNull(t *testing.T) {
	v, err := resolve(t, nil, "sharpness")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsNull() {
		t.Fatalf("expected null without player, got %v", v)
	}
}

func TestHasEnchantEmptyHandIsFalse(t *testing.T) {
	v, err := resolve(t, fakeHolder{}, "sharpness")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.AsBool(); !ok || b {
		t.Fatalf("expected false for empty hand, got %v", v)
	}
}

func TestHasEnchantEmptyHandSkipsArgumentChecks(t *testing.T) {
	v, err := resolve(t, fakeHolder{})
	if err != nil {
		t.Fatalf("expected empty hand to short-circuit before argument checks, got %v", err)
	}
	if b, ok := v.AsBool(); !ok || b {
		t.Fatalf("expected false for empty hand, got %v", v)
	}
}

func TestHasEnchantMissingArgument(t *testing.T) {
	_, err := resolve(t, fakeHolder{main: sharpSword()})
	if !errors.Is(err, placeholder.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if err.Error() != "Invalid parameter! [String]" {
		t.Fatalf("unexpected error message %q", err.Error())
	}
}

func TestHasEnchantNonStringArgument(t *testing.T) {
	for _, arg := range []any{42, 1.5, true, nil} {
		_, err := resolve(t, fakeHolder{main: sharpSword()}, arg)
		if !errors.Is(err, placeholder.ErrInvalidArgument) {
			t.Fatalf("argument %v: expected ErrInvalidArgument, got %v", arg, err)
		}
		want := "Invalid parameter! helditemhasenchant accepts 'String' as parameter."
		if err.Error() != want {
			t.Fatalf("argument %v: error %q, want %q", arg, err.Error(), want)
		}
	}
}

func TestHasEnchantCaseInsensitive(t *testing.T) {
	for _, name := range []string{"sharpness", "SHARPNESS", "ShArPnEsS", "damage_all"} {
		v, err := resolve(t, fakeHolder{main: sharpSword()}, name)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if b, ok := v.AsBool(); !ok || !b {
			t.Fatalf("%s: expected true, got %v", name, v)
		}
	}
}

func TestHasEnchantOtherEnchantmentIsFalse(t *testing.T) {
	v, err := resolve(t, fakeHolder{main: sharpSword()}, "unbreaking")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.AsBool(); !ok || b {
		t.Fatalf("expected false for missing enchantment, got %v", v)
	}
}

func TestHasEnchantPlainItemIsFalse(t *testing.T) {
	v, err := resolve(t, fakeHolder{main: item.NewStack(item.Sword{Tier: item.ToolTierIron}, 1)}, "sharpness")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.AsBool(); !ok || b {
		t.Fatalf("expected false for plain item, got %v", v)
	}
}

func TestHasEnchantUnknownNameIsFalse(t *testing.T) {
	v, err := resolve(t, fakeHolder{main: sharpSword()}, "definitely_not_an_enchantment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.AsBool(); !ok || b {
		t.Fatalf("expected false for unknown enchantment, got %v", v)
	}
}

func TestHasEnchantMissingMetadataIsFalse(t *testing.T) {
	noMeta := func(item.Stack) (Meta, bool) { return nil, false }
	p := NewHasEnchant(enchant.NewNames(nil), noMeta)

	v, err := p.Resolve(placeholder.Context{Player: fakeHolder{main: sharpSword()}}, placeholder.Args{"sharpness"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.AsBool(); !ok || b {
		t.Fatalf("expected false without metadata, got %v", v)
	}
}

func TestHasEnchantWithoutRegistryIsFalse(t *testing.T) {
	var p HasEnchant
	v, err := p.Resolve(placeholder.Context{Player: fakeHolder{main: sharpSword()}}, placeholder.Args{"sharpness"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.AsBool(); !ok || b {
		t.Fatalf("expected false without registry, got %v", v)
	}
}

func TestStackMeta(t *testing.T) {
	if _, ok := StackMeta(item.Stack{}); ok {
		t.Fatalf("expected zero stack to have no metadata")
	}
	meta, ok := StackMeta(sharpSword())
	if !ok {
		t.Fatalf("expected sword to have metadata")
	}
	if !meta.HasEnchant(enchantment.Sharpness) {
		t.Fatalf("expected sword metadata to report sharpness")
	}
	if meta.HasEnchant(nil) {
		t.Fatalf("expected nil enchantment type to never be present")
	}
}
