package converter

type ProfileCardRedisModel struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Bio         *string `json:"bio,omitempty"`
	CurrentGoal *string `json:"current_goal,omitempty"`
	ImpactScore int64   `json:"impact_score"`
}
