package team

// Constraints bound the picked team. A nil Budget means unconstrained.
type Constraints struct {
	TeamSize       int      `mapstructure:"team-size" json:"teamSize" validate:"min=1"`
	MaxPerLocation int      `mapstructure:"max-per-location" json:"maxPerLocation" validate:"min=1"`
	MinLocations   int      `mapstructure:"min-locations" json:"minLocations" validate:"min=1"`
	Budget         *float64 `mapstructure:"budget" json:"budget" validate:"omitempty,gte=0"`
}

func DefaultConstraints() Constraints {
	return Constraints{
		TeamSize:       5,
		MaxPerLocation: 2,
		MinLocations:   3,
	}
}

func (c Constraints) withinBudget(cost float64) bool {
	return c.Budget == nil || cost <= *c.Budget
}
