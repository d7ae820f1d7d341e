package training

type CreateProgramRequest struct {
	Name            string `json:"name" binding:"required,min=3,max=200"`
	Code            string `json:"code" binding:"required,min=2,max=20"`
	Description     string `json:"description"`
	TrainerName     string `json:"trainer_name" binding:"required"`
	DurationHours   int    `json:"duration_hours" binding:"required,min=1"`
	StartDate       string `json:"start_date" binding:"required"`
	EndDate         string `json:"end_date" binding:"required"`
	Location        string `json:"location"`
	MaxParticipants int    `json:"max_participants" binding:"omitempty,min=1"`
	Budget          string `json:"budget"`
}

type UpdateProgramRequest struct {
	Name            string `json:"name" binding:"omitempty,min=3,max=200"`
	Description     string `json:"description"`
	TrainerName     string `json:"trainer_name"`
	Location        string `json:"location"`
	MaxParticipants int    `json:"max_participants" binding:"omitempty,min=1"`
	IsActive        *bool  `json:"is_active"`
}

type EnrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type CompleteParticipantRequest struct {
	Status   string `json:"status" binding:"required,oneof=COMPLETED DROPPED FAILED"`
	Score    string `json:"score"`
	Feedback string `json:"feedback"`
}

type ProgramResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Code            string `json:"code"`
	Description     string `json:"description,omitempty"`
	TrainerName     string `json:"trainer_name"`
	DurationHours   int    `json:"duration_hours"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Location        string `json:"location,omitempty"`
	MaxParticipants int    `json:"max_participants"`
	Budget          string `json:"budget"`
	IsActive        bool   `json:"is_active"`
}

type ParticipantResponse struct {
	ID             string  `json:"id"`
	ProgramID      string  `json:"program_id"`
	ProgramName    string  `json:"program_name,omitempty"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeNumber string  `json:"employee_number,omitempty"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	EnrollmentDate string  `json:"enrollment_date"`
	CompletionDate *string `json:"completion_date,omitempty"`
	Status         string  `json:"status"`
	Score          *string `json:"score,omitempty"`
	Feedback       string  `json:"feedback,omitempty"`
}
