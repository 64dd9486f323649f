package rules

import (
	"fmt"

	"github.com/dungeonkeeper/dm-engine/internal/content"
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func resolveItemAdd(w *world.World, in intent.Intent) Resolution {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s picks up %d %s.", w.Character.Name, qty, in.ItemName),
		Effects:   []effect.Effect{{Kind: effect.KindItemAdded, ItemName: in.ItemName, ItemType: in.ItemType, Quantity: qty}},
	}
}

func resolveItemRemove(w *world.World, in intent.Intent) Resolution {
	stack := w.Character.Inventory.FindStack(in.ItemName)
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	if stack == nil || stack.Quantity < qty {
		return noEffect(fmt.Sprintf("%s doesn't have %d %s.", w.Character.Name, qty, in.ItemName))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s loses %d %s.", w.Character.Name, qty, in.ItemName),
		Effects:   []effect.Effect{{Kind: effect.KindItemRemoved, ItemName: in.ItemName, Quantity: qty}},
	}
}

// resolveItemEquip validates in a fixed order: item
// present -> type fits slot -> two-hand/shield conflict -> heavy-armor
// strength requirement (a failed strength check still equips, with a
// narrative note about the speed penalty, not a RuleViolation).
func (e *Engine) resolveItemEquip(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	stack := c.Inventory.FindStack(in.ItemName)
	if stack == nil {
		return noEffect(fmt.Sprintf("%s doesn't have %s to equip.", c.Name, in.ItemName))
	}

	slot := world.EquipmentSlot(in.Slot)
	if !itemFitsSlot(stack.Type, slot) {
		return noEffect(fmt.Sprintf("%s can't be equipped in the %s slot.", in.ItemName, in.Slot))
	}

	weaponStats := content.LookupWeapon(e.Content, in.ItemName)
	twoHanded := stack.TwoHanded || weaponStats.TwoHanded

	if slot == world.SlotMainHand && twoHanded && c.Equipment.Shield != nil {
		return noEffect(fmt.Sprintf("%s can't wield a two-handed weapon while holding a shield.", c.Name))
	}
	if slot == world.SlotShield && c.Equipment.MainHand != nil {
		mainHandTwoHanded := c.Equipment.MainHand.TwoHanded || content.LookupWeapon(e.Content, c.Equipment.MainHand.Name).TwoHanded
		if mainHandTwoHanded {
			return noEffect(fmt.Sprintf("%s can't raise a shield while wielding a two-handed weapon.", c.Name))
		}
	}

	narrative := fmt.Sprintf("%s equips %s.", c.Name, in.ItemName)
	if slot == world.SlotArmor {
		armorStats := content.LookupArmor(e.Content, in.ItemName)
		if armorStats.StrengthRequirement > 0 &&
			int(c.Abilities[world.Strength]) < armorStats.StrengthRequirement {
			narrative += " The armor is too heavy; speed is reduced until stronger."
		}
	}

	return Resolution{
		Narrative: narrative,
		Effects:   []effect.Effect{{Kind: effect.KindItemEquipped, ItemName: in.ItemName, Slot: in.Slot}},
	}
}

func itemFitsSlot(t world.ItemType, slot world.EquipmentSlot) bool {
	switch slot {
	case world.SlotArmor:
		return t == world.ItemArmor
	case world.SlotShield:
		return t == world.ItemShield
	case world.SlotMainHand, world.SlotOffHand:
		return t == world.ItemWeapon || t == world.ItemWand
	}
	return false
}

func resolveItemUnequip(w *world.World, in intent.Intent) Resolution {
	slot := world.EquipmentSlot(in.Slot)
	if w.Character.Equipment.Get(slot) == nil {
		return noEffect(fmt.Sprintf("%s has nothing equipped there.", w.Character.Name))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s unequips %s.", w.Character.Name, in.Slot),
		Effects:   []effect.Effect{{Kind: effect.KindItemUnequipped, Slot: in.Slot}},
	}
}

func resolveItemUse(w *world.World, in intent.Intent) Resolution {
	stack := w.Character.Inventory.FindStack(in.ItemName)
	if stack == nil || stack.Quantity < 1 {
		return noEffect(fmt.Sprintf("%s doesn't have a %s to use.", w.Character.Name, in.ItemName))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s uses %s.", w.Character.Name, in.ItemName),
		Effects:   []effect.Effect{{Kind: effect.KindItemUsed, ItemName: in.ItemName}},
	}
}

func resolveGoldDelta(w *world.World, in intent.Intent) Resolution {
	if in.GoldDelta < 0 && w.Character.Inventory.Gold+in.GoldDelta < 0 {
		return noEffect(fmt.Sprintf("%s doesn't have enough gold.", w.Character.Name))
	}
	narrative := fmt.Sprintf("%s gains %d gold.", w.Character.Name, in.GoldDelta)
	if in.GoldDelta < 0 {
		narrative = fmt.Sprintf("%s spends %d gold.", w.Character.Name, -in.GoldDelta)
	}
	return Resolution{Narrative: narrative, Effects: []effect.Effect{{Kind: effect.KindGoldChanged, GoldDelta: in.GoldDelta}}}
}

func resolveSilverDelta(w *world.World, in intent.Intent) Resolution {
	if in.SilverDelta < 0 && w.Character.Inventory.Silver+in.SilverDelta < 0 {
		return noEffect(fmt.Sprintf("%s doesn't have enough silver.", w.Character.Name))
	}
	narrative := fmt.Sprintf("%s gains %d silver.", w.Character.Name, in.SilverDelta)
	if in.SilverDelta < 0 {
		narrative = fmt.Sprintf("%s spends %d silver.", w.Character.Name, -in.SilverDelta)
	}
	return Resolution{Narrative: narrative, Effects: []effect.Effect{{Kind: effect.KindSilverChanged, SilverDelta: in.SilverDelta}}}
}
