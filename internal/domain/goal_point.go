package domain

// Payload описывает дополнительную информацию вектора
type Payload map[string]any

// GoalPoint описывает запись goal-вектора в Qdrant
type GoalPoint struct {
	ProfileID string
	Vector    []float32
	Payload   Payload
}

func NewGoalPoint(profileID string, vector []float32, payload Payload) *GoalPoint {
	return &GoalPoint{
		ProfileID: profileID,
		Vector:    vector,
		Payload:   payload,
	}
}

func NewGoalPayload(username string, goal string) Payload {
	return Payload{
		"username": username,
		"goal":     goal,
	}
}
