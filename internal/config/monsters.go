package config

type MonstersConfig struct {
	Monsters []MonsterDef `yaml:"monsters" validate:"required,min=1,dive"`
}

type MonsterDef struct {
	ID      string `yaml:"id" validate:"required"`
	Name    string `yaml:"name"`
	HP      int    `yaml:"hp" validate:"min=1"`
	Attack  int    `yaml:"attack" validate:"min=0"`
	Defense int    `yaml:"defense" validate:"min=0"`
	Note    string `yaml:"note"`
}

func (mc *MonstersConfig) Find(id string) (MonsterDef, bool) {
	for _, m := range mc.Monsters {
		if m.ID == id {
			return m, true
		}
	}
	return MonsterDef{}, false
}
