package content

// TableProvider is a static, hard-coded Provider covering the handful of
// weapons and armor the mechanics actually need. Used by default when no
// DND5EAPIProvider is configured, and by tests that need canned stats
// without network access.
type TableProvider struct {
	weapons map[string]WeaponStats
	armor   map[string]ArmorStats
}

// NewTableProvider builds the default static table.
func NewTableProvider() *TableProvider {
	return &TableProvider{
		weapons: map[string]WeaponStats{
			"longsword":    {DamageDice: "1d8", TwoHandedDamageDice: "1d10", DamageType: "slashing"},
			"shortsword":   {DamageDice: "1d6", DamageType: "piercing"},
			"dagger":       {DamageDice: "1d4", DamageType: "piercing"},
			"greatsword":   {DamageDice: "2d6", DamageType: "slashing", TwoHanded: true},
			"greataxe":     {DamageDice: "1d12", DamageType: "slashing", TwoHanded: true},
			"rapier":       {DamageDice: "1d8", DamageType: "piercing"},
			"shortbow":     {DamageDice: "1d6", DamageType: "piercing", TwoHanded: true, Ranged: true},
			"longbow":      {DamageDice: "1d8", DamageType: "piercing", TwoHanded: true, Ranged: true},
			"mace":         {DamageDice: "1d6", DamageType: "bludgeoning"},
			"warhammer":    {DamageDice: "1d8", TwoHandedDamageDice: "1d10", DamageType: "bludgeoning"},
			"unarmed strike": {DamageDice: "1", DamageType: "bludgeoning"},
		},
		armor: map[string]ArmorStats{
			"padded":          {BaseAC: 11, MaxDexBonus: -1, StealthDisadvantage: true},
			"leather":         {BaseAC: 11, MaxDexBonus: -1},
			"studded leather": {BaseAC: 12, MaxDexBonus: -1},
			"hide":            {BaseAC: 12, MaxDexBonus: 2},
			"chain shirt":     {BaseAC: 13, MaxDexBonus: 2},
			"breastplate":     {BaseAC: 14, MaxDexBonus: 2},
			"half plate":      {BaseAC: 15, MaxDexBonus: 2, StealthDisadvantage: true},
			"ring mail":       {BaseAC: 14, MaxDexBonus: 0, StealthDisadvantage: true},
			"chain mail":      {BaseAC: 16, MaxDexBonus: 0, StrengthRequirement: 13, StealthDisadvantage: true},
			"splint":          {BaseAC: 17, MaxDexBonus: 0, StrengthRequirement: 15, StealthDisadvantage: true},
			"plate":           {BaseAC: 18, MaxDexBonus: 0, StrengthRequirement: 15, StealthDisadvantage: true},
			"shield":          {BaseAC: 2, IsShield: true},
		},
	}
}

func (t *TableProvider) Weapon(name string) (WeaponStats, bool) {
	w, ok := t.weapons[lowerASCII(name)]
	return w, ok
}

func (t *TableProvider) Armor(name string) (ArmorStats, bool) {
	a, ok := t.armor[lowerASCII(name)]
	return a, ok
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
