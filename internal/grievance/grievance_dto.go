package grievance

type FileGrievanceRequest struct {
	Subject          string `json:"subject" binding:"required,min=5,max=200"`
	Description      string `json:"description" binding:"required,min=10"`
	AgainstPerson    string `json:"against_person"`
	IncidentDate     string `json:"incident_date"`
	IncidentLocation string `json:"incident_location"`
	Priority         string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	IsAnonymous      bool   `json:"is_anonymous"`
}

type AssignGrievanceRequest struct {
	AssigneeID string `json:"assignee_id" binding:"required,uuid"`
}

type ResolveGrievanceRequest struct {
	InvestigationSummary string `json:"investigation_summary"`
	Resolution           string `json:"resolution" binding:"required,min=5"`
	ActionTaken          string `json:"action_taken"`
}

type GrievanceResponse struct {
	ID               string  `json:"id"`
	GrievanceID      string  `json:"grievance_id"`
	EmployeeID       string  `json:"employee_id,omitempty"`
	EmployeeNumber   string  `json:"employee_number,omitempty"`
	EmployeeName     string  `json:"employee_name,omitempty"`
	Subject          string  `json:"subject"`
	Description      string  `json:"description"`
	AgainstPerson    string  `json:"against_person,omitempty"`
	IncidentDate     *string `json:"incident_date,omitempty"`
	IncidentLocation string  `json:"incident_location,omitempty"`
	Priority         string  `json:"priority"`
	Status           string  `json:"status"`
	IsAnonymous      bool    `json:"is_anonymous"`
	AssignedTo       *string `json:"assigned_to,omitempty"`
	Resolution       string  `json:"resolution,omitempty"`
	ActionTaken      string  `json:"action_taken,omitempty"`
	SubmittedAt      string  `json:"submitted_at"`
	ResolvedAt       *string `json:"resolved_at,omitempty"`
	ClosedAt         *string `json:"closed_at,omitempty"`
}
