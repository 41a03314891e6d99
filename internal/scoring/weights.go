package scoring

// Weights scale the five sub-scores. They are not required to sum to 1;
// the final score is a plain weighted sum.
type Weights struct {
	SkillMatch       float64 `mapstructure:"skill-match" json:"skillMatch" validate:"gte=0"`
	RoleRelevance    float64 `mapstructure:"role-relevance" json:"roleRelevance" validate:"gte=0"`
	Education        float64 `mapstructure:"education" json:"education" validate:"gte=0"`
	SalaryEfficiency float64 `mapstructure:"salary-efficiency" json:"salaryEfficiency" validate:"gte=0"`
	Recency          float64 `mapstructure:"recency" json:"recency" validate:"gte=0"`
}

func DefaultWeights() Weights {
	return Weights{
		SkillMatch:       0.4,
		RoleRelevance:    0.25,
		Education:        0.1,
		SalaryEfficiency: 0.15,
		Recency:          0.1,
	}
}

func (w Weights) Sum() float64 {
	return w.SkillMatch + w.RoleRelevance + w.Education + w.SalaryEfficiency + w.Recency
}
