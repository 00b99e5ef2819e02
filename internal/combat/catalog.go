package combat

import (
	"fmt"

	"battle_ai/internal/config"
)

// EffectKind tags what a skill does when cast. Damage skills need a
// living target; support skills resolve without one.
type EffectKind int

const (
	EffectDamage EffectKind = iota
	EffectSupport
)

func (k EffectKind) String() string {
	if k == EffectSupport {
		return "support"
	}
	return "damage"
}

type SkillEffect struct {
	Kind   EffectKind
	Amount int
}

type Skill struct {
	ID       string
	Name     string
	Effect   SkillEffect
	Cooldown int
}

// Damage is the per-cast damage, 0 for support skills.
func (s *Skill) Damage() int {
	if s.Effect.Kind != EffectDamage {
		return 0
	}
	return s.Effect.Amount
}

// Catalog is the immutable skill table shared by every state of a
// planning call.
type Catalog struct {
	Skills []*Skill
	byID   map[string]*Skill
}

type SkillSpec struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name"`
	Damage   int    `json:"damage" validate:"min=0"`
	Cooldown int    `json:"cooldown" validate:"min=0"`
}

func NewCatalog(specs []SkillSpec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("empty skill catalog")
	}
	c := &Catalog{byID: make(map[string]*Skill, len(specs))}
	for _, sp := range specs {
		if sp.ID == "" {
			return nil, fmt.Errorf("skill with empty id")
		}
		if sp.Damage < 0 || sp.Cooldown < 0 {
			return nil, fmt.Errorf("skill %s: negative damage or cooldown", sp.ID)
		}
		if _, dup := c.byID[sp.ID]; dup {
			return nil, fmt.Errorf("duplicate skill id %s", sp.ID)
		}
		sk := &Skill{
			ID:       sp.ID,
			Name:     sp.Name,
			Cooldown: sp.Cooldown,
			Effect:   SkillEffect{Kind: EffectDamage, Amount: sp.Damage},
		}
		if sp.Damage == 0 {
			sk.Effect = SkillEffect{Kind: EffectSupport}
		}
		if sk.Name == "" {
			sk.Name = sk.ID
		}
		c.Skills = append(c.Skills, sk)
		c.byID[sk.ID] = sk
	}
	return c, nil
}

// NewCatalogFromConfig builds a catalog from the yaml skill table. A
// skill declared kind "support" carries no damage even when a damage
// value is present.
func NewCatalogFromConfig(cfg *config.SkillsConfig) (*Catalog, error) {
	if cfg == nil || len(cfg.Skills) == 0 {
		return nil, fmt.Errorf("empty skill catalog")
	}
	specs := make([]SkillSpec, len(cfg.Skills))
	for i, s := range cfg.Skills {
		dmg := s.Damage
		if s.Kind == "support" {
			dmg = 0
		}
		specs[i] = SkillSpec{ID: s.ID, Name: s.Name, Damage: dmg, Cooldown: s.Cooldown}
	}
	return NewCatalog(specs)
}

func (c *Catalog) Get(id string) *Skill {
	return c.byID[id]
}

func (c *Catalog) MaxDamage() int {
	maxDmg := 0
	for _, sk := range c.Skills {
		if d := sk.Damage(); d > maxDmg {
			maxDmg = d
		}
	}
	return maxDmg
}

// MeanDamage averages over the whole catalog, support skills included.
func (c *Catalog) MeanDamage() float64 {
	if len(c.Skills) == 0 {
		return 0
	}
	total := 0
	for _, sk := range c.Skills {
		total += sk.Damage()
	}
	return float64(total) / float64(len(c.Skills))
}
