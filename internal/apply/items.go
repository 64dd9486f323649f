package apply

import (
	"github.com/dungeonkeeper/dm-engine/internal/content"
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func applyItemAdded(w *world.World, e effect.Effect) {
	inv := &w.Character.Inventory
	t := world.ItemType(e.ItemType)
	if t == "" {
		t = world.ItemOther
	}
	if t.Stackable() {
		if stack := inv.FindStack(e.ItemName); stack != nil {
			stack.Quantity += e.Quantity
			return
		}
	}
	inv.Items = append(inv.Items, &world.ItemStack{Name: e.ItemName, Type: t, Quantity: e.Quantity})
}

func applyItemRemoved(w *world.World, e effect.Effect) {
	inv := &w.Character.Inventory
	stack := inv.FindStack(e.ItemName)
	if stack == nil {
		return
	}
	stack.Quantity -= e.Quantity
	if stack.Quantity <= 0 {
		removeStack(inv, stack)
	}
}

func removeStack(inv *world.Inventory, target *world.ItemStack) {
	out := inv.Items[:0]
	for _, it := range inv.Items {
		if it != target {
			out = append(out, it)
		}
	}
	inv.Items = out
}

// applyItemEquipped moves one item from the inventory into the named
// slot, first unequipping whatever conflicts with it back into the
// inventory: a two-handed weapon bumps the shield (and vice versa), per
// the validation resolveItemEquip already ran, and the slot's current
// occupant is returned before the new item leaves the inventory.
func (a *Applier) applyItemEquipped(w *world.World, e effect.Effect) {
	c := w.Character
	stack := c.Inventory.FindStack(e.ItemName)
	if stack == nil {
		return
	}
	slot := world.EquipmentSlot(e.Slot)

	weaponStats := content.LookupWeapon(a.Content, e.ItemName)
	twoHanded := stack.TwoHanded || weaponStats.TwoHanded

	if slot == world.SlotMainHand && twoHanded {
		returnToInventory(c, world.SlotOffHand)
		returnToInventory(c, world.SlotShield)
	}
	if slot == world.SlotShield {
		if mh := c.Equipment.MainHand; mh != nil {
			mhTwoHanded := mh.TwoHanded || content.LookupWeapon(a.Content, mh.Name).TwoHanded
			if mhTwoHanded {
				returnToInventory(c, world.SlotMainHand)
			}
		}
	}
	returnToInventory(c, slot)

	equipped := stack
	if stack.Quantity > 1 {
		stack.Quantity--
		single := *stack
		single.Quantity = 1
		equipped = &single
	} else {
		removeStack(&c.Inventory, stack)
	}
	c.Equipment.Set(slot, equipped)
}

func applyItemUnequipped(w *world.World, e effect.Effect) {
	returnToInventory(w.Character, world.EquipmentSlot(e.Slot))
}

// returnToInventory clears slot and puts its occupant back into the
// inventory, merging into an existing stack for stackable types the way
// applyItemAdded does.
func returnToInventory(c *world.Character, slot world.EquipmentSlot) {
	item := c.Equipment.Get(slot)
	if item == nil {
		return
	}
	c.Equipment.Set(slot, nil)

	inv := &c.Inventory
	if item.Type.Stackable() {
		if existing := inv.FindStack(item.Name); existing != nil {
			existing.Quantity += item.Quantity
			return
		}
	}
	inv.Items = append(inv.Items, item)
}

func applyItemUsed(w *world.World, e effect.Effect) {
	inv := &w.Character.Inventory
	stack := inv.FindStack(e.ItemName)
	if stack == nil {
		return
	}
	stack.Quantity--
	if stack.Quantity <= 0 {
		removeStack(inv, stack)
	}
}
