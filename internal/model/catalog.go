package model

import "time"

// CostumeID identifies a costume
type CostumeID string

// PotionKind identifies a potion
type PotionKind string

const (
	PotionTempBoost PotionKind = "temp_boost"
	PotionPermBoost PotionKind = "perm_boost"
)

// Shop items that are not costumes or potions
const (
	ItemLicorice     = "licorice"
	ItemClanLicorice = "clan_licorice"
)

// Costume grants a constant bonus while equipped
type Costume struct {
	ID     CostumeID `json:"id" yaml:"id"`
	Name   string    `json:"name" yaml:"name"`
	Bonus  int64     `json:"bonus" yaml:"bonus"`
	Price  int64     `json:"price" yaml:"price"`
	Hidden bool      `json:"hidden,omitempty" yaml:"hidden"`
}

// Potion grants a bonus when consumed. Zero Duration means permanent.
type Potion struct {
	Kind     PotionKind    `json:"kind" yaml:"kind"`
	Name     string        `json:"name" yaml:"name"`
	Bonus    int64         `json:"bonus" yaml:"bonus"`
	Price    int64         `json:"price" yaml:"price"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Catalog lists the purchasable costumes and potions
type Catalog struct {
	Costumes []Costume `yaml:"costumes"`
	Potions  []Potion  `yaml:"potions"`
}

// Costume looks up a costume by ID
func (c Catalog) Costume(id CostumeID) (Costume, bool) {
	for _, cos := range c.Costumes {
		if cos.ID == id {
			return cos, true
		}
	}
	return Costume{}, false
}

// Potion looks up a potion by kind
func (c Catalog) Potion(kind PotionKind) (Potion, bool) {
	for _, p := range c.Potions {
		if p.Kind == kind {
			return p, true
		}
	}
	return Potion{}, false
}
