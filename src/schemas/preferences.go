package schemas

// PreferenceRequest is the body of PUT /api/preference.
type PreferenceRequest struct {
	UserID string `json:"user_id,omitempty"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// PreferenceResponse is the payload of GET /api/preference.
type PreferenceResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
