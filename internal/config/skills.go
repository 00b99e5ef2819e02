package config

type SkillsConfig struct {
	Skills []Skill `yaml:"skills" validate:"required,min=1,dive"`
}

type Skill struct {
	ID       string `yaml:"id" validate:"required"`
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind" validate:"omitempty,oneof=damage support"`
	Damage   int    `yaml:"damage" validate:"min=0"`
	Cooldown int    `yaml:"cooldown" validate:"min=0"`
	Note     string `yaml:"note"`
}
