package models

type ProcessResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string         `json:"id"`
	Status       string         `json:"status"`
	Progress     int            `json:"progress"`
	Result       *UnifiedResult `json:"result,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty"`
}

type RunSummary struct {
	ID               string `json:"id"`
	RequirementsName string `json:"requirements_name"`
	ProposalName     string `json:"proposal_name"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}
