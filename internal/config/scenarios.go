package config

type ScenariosConfig struct {
	Scenarios []Scenario `yaml:"scenarios" validate:"required,min=1,dive"`
}

// Scenario references monster definitions by id and carries the round
// budget the planner is allowed to spend on it. Priority is an optional
// defeat order expressed as indexes into the Monsters list.
type Scenario struct {
	ID        string   `yaml:"id" validate:"required"`
	Name      string   `yaml:"name"`
	Monsters  []string `yaml:"monsters" validate:"required,min=1"`
	MaxRounds int      `yaml:"max_rounds" validate:"min=1"`
	Priority  []int    `yaml:"priority" validate:"omitempty,dive,min=0"`
	Note      string   `yaml:"note"`
}

func (sc *ScenariosConfig) Find(id string) (Scenario, bool) {
	for _, s := range sc.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}
