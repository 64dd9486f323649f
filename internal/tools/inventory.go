package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func registerInventory(r *Registry) {
	itemTypeEnum := []string{
		string(world.ItemPotion), string(world.ItemScroll), string(world.ItemAdventuring),
		string(world.ItemTool), string(world.ItemOther), string(world.ItemWeapon),
		string(world.ItemArmor), string(world.ItemShield), string(world.ItemWand),
		string(world.ItemRing), string(world.ItemWondrous),
	}

	r.add(Spec{
		Name: "item_add", Domain: DomainInventory,
		Description: "Add an item to the character's inventory.",
		Schema: BuildSchema(
			Field{Name: "item_name", Type: "string", Description: "Item name", Required: true},
			Field{Name: "item_type", Type: "string", Description: "Item category", Enum: itemTypeEnum, Required: true},
			Field{Name: "quantity", Type: "integer", Description: "Number of items gained (defaults to 1)"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "item_name")
			if !ok {
				return intent.Intent{}, false
			}
			itemType, ok := requireString(args, "item_type")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindItemAdd, ItemName: name, ItemType: itemType, Quantity: optionalInt(args, "quantity", 1),
			}, true
		},
	})

	r.add(Spec{
		Name: "item_remove", Domain: DomainInventory,
		Description: "Remove an item from the character's inventory.",
		Schema: BuildSchema(
			Field{Name: "item_name", Type: "string", Description: "Item name", Required: true},
			Field{Name: "quantity", Type: "integer", Description: "Number of items lost (defaults to 1)"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "item_name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindItemRemove, ItemName: name, Quantity: optionalInt(args, "quantity", 1)}, true
		},
	})

	r.add(Spec{
		Name: "item_equip", Domain: DomainInventory,
		Description: "Equip a held item into an equipment slot.",
		Schema: BuildSchema(
			Field{Name: "item_name", Type: "string", Description: "Item name", Required: true},
			Field{Name: "slot", Type: "string", Description: "Equipment slot",
				Enum: []string{string(world.SlotArmor), string(world.SlotShield), string(world.SlotMainHand), string(world.SlotOffHand)}, Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "item_name")
			if !ok {
				return intent.Intent{}, false
			}
			slot, ok := requireString(args, "slot")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindItemEquip, ItemName: name, Slot: slot}, true
		},
	})

	r.add(Spec{
		Name: "item_unequip", Domain: DomainInventory,
		Description: "Unequip whatever is in an equipment slot.",
		Schema: BuildSchema(
			Field{Name: "slot", Type: "string", Description: "Equipment slot",
				Enum: []string{string(world.SlotArmor), string(world.SlotShield), string(world.SlotMainHand), string(world.SlotOffHand)}, Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			slot, ok := requireString(args, "slot")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindItemUnequip, Slot: slot}, true
		},
	})

	r.add(Spec{
		Name: "item_use", Domain: DomainInventory,
		Description: "Consume or use a held item.",
		Schema: BuildSchema(
			Field{Name: "item_name", Type: "string", Description: "Item name", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "item_name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindItemUse, ItemName: name}, true
		},
	})
}
