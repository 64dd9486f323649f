package content

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	apidnd5e "github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apientities "github.com/fadedpez/dnd5e-api/entities"
)

// DND5EAPIProvider backs Provider with live lookups against dnd5eapi.co via
// fadedpez/dnd5e-api. Results are cached in-process and concurrent
// lookups of the same key are collapsed with singleflight rather than
// hitting the network twice for one in-flight request.
type DND5EAPIProvider struct {
	client apidnd5e.Interface
	group  singleflight.Group

	mu      sync.RWMutex
	weapons map[string]WeaponStats
	armor   map[string]ArmorStats
}

// NewDND5EAPIProvider constructs a provider using httpClient (nil uses the
// library default).
func NewDND5EAPIProvider(httpClient *http.Client) (*DND5EAPIProvider, error) {
	client, err := apidnd5e.NewDND5eAPI(&apidnd5e.DND5eAPIConfig{Client: httpClient})
	if err != nil {
		return nil, fmt.Errorf("content: initializing dnd5e client: %w", err)
	}
	return &DND5EAPIProvider{
		client:  client,
		weapons: make(map[string]WeaponStats),
		armor:   make(map[string]ArmorStats),
	}, nil
}

func (p *DND5EAPIProvider) Weapon(name string) (WeaponStats, bool) {
	key := equipmentKey(name)

	p.mu.RLock()
	if w, ok := p.weapons[key]; ok {
		p.mu.RUnlock()
		return w, true
	}
	p.mu.RUnlock()

	v, err, _ := p.group.Do("weapon:"+key, func() (any, error) {
		return p.client.GetEquipment(key)
	})
	if err != nil || v == nil {
		return WeaponStats{}, false
	}

	weapon, ok := v.(apidnd5e.EquipmentInterface).(*apientities.Weapon)
	if !ok {
		return WeaponStats{}, false
	}
	stats := weaponStatsFromAPI(weapon)

	p.mu.Lock()
	p.weapons[key] = stats
	p.mu.Unlock()
	return stats, true
}

func (p *DND5EAPIProvider) Armor(name string) (ArmorStats, bool) {
	key := equipmentKey(name)

	p.mu.RLock()
	if a, ok := p.armor[key]; ok {
		p.mu.RUnlock()
		return a, true
	}
	p.mu.RUnlock()

	v, err, _ := p.group.Do("armor:"+key, func() (any, error) {
		return p.client.GetEquipment(key)
	})
	if err != nil || v == nil {
		return ArmorStats{}, false
	}

	armor, ok := v.(apidnd5e.EquipmentInterface).(*apientities.Armor)
	if !ok {
		return ArmorStats{}, false
	}
	stats := armorStatsFromAPI(armor)

	p.mu.Lock()
	p.armor[key] = stats
	p.mu.Unlock()
	return stats, true
}

// equipmentKey normalizes a free-text item name into the dnd5eapi.co slug
// convention ("Chain Mail" -> "chain-mail").
func equipmentKey(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(lower, " ", "-")
}

func weaponStatsFromAPI(w *apientities.Weapon) WeaponStats {
	stats := WeaponStats{
		TwoHanded: hasProperty(w.Properties, "two-handed"),
		Ranged:    strings.EqualFold(w.WeaponRange, "Ranged"),
	}
	if w.Damage != nil {
		stats.DamageDice = w.Damage.DamageDice
		if w.Damage.DamageType != nil {
			stats.DamageType = strings.ToLower(w.Damage.DamageType.Key)
		}
	}
	if w.TwoHandedDamage != nil {
		stats.TwoHandedDamageDice = w.TwoHandedDamage.DamageDice
	}
	return stats
}

func hasProperty(props []*apientities.ReferenceItem, key string) bool {
	for _, p := range props {
		if p != nil && strings.EqualFold(p.Key, key) {
			return true
		}
	}
	return false
}

// armorStatsFromAPI converts the live API's armor entity. The API does not
// expose a strength-requirement field, so StrengthRequirement is left at
// its zero value (no requirement): armor found through the live API never
// carries a strength requirement.
func armorStatsFromAPI(a *apientities.Armor) ArmorStats {
	stats := ArmorStats{
		StealthDisadvantage: a.StealthDisadvantage,
		IsShield:            strings.EqualFold(a.ArmorCategory, "Shield"),
	}
	if a.ArmorClass != nil {
		stats.BaseAC = a.ArmorClass.Base
		stats.MaxDexBonus = -1
		if !a.ArmorClass.DexBonus {
			stats.MaxDexBonus = 0
		}
	}
	return stats
}
