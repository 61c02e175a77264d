package fiber

// CounterResponse is the persisted state of one counter.
// @Description Counter state
type CounterResponse struct {
	Identifier   string `json:"identifier" example:"checkin"`
	Counted      uint64 `json:"counted" example:"2"`
	ResetAtCount uint64 `json:"reset_at_count" example:"5"`
}

type CountRequest struct {
	// RegisterTask defaults to true; false counts with no reset task.
	RegisterTask *bool `json:"register_task,omitempty"`
}

type CountResponse struct {
	CounterResponse
	Reset bool `json:"reset"`
}

type ValueRequest struct {
	Value *uint64 `json:"value" example:"3"`
}

type ResetRequest struct {
	PerformTask bool `json:"perform_task"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_value"`
	Message string `json:"message,omitempty" example:"value exceeds storable range"`
}
