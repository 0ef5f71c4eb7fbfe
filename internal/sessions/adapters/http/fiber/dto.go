package fiber

type DomainsResponse struct {
	Domains []string `json:"domains" example:"a.com,b.com"`
}

type CountResponse struct {
	Domains []string `json:"domains" example:"a.com"`
	Count   uint64   `json:"count" example:"3"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"internal_server_error"`
	Message string `json:"message,omitempty" example:"store unavailable"`
}

// optionView is one <option> of the Domains multiselect.
type optionView struct {
	Value    string
	Selected bool
}
