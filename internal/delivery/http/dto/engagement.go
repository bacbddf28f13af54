package dto

type SubscribeRequest struct {
	Email string `json:"email" form:"email"`
	JobID int64  `json:"job_id" form:"job_id"`
}

type SubscribeResponse struct {
	Status   string `json:"status"`
	Redirect string `json:"redirect,omitempty"`
}

type ContactRequest struct {
	Email       string `json:"email" form:"email"`
	Name        string `json:"name" form:"name"`
	NameCompany string `json:"name_company" form:"name_company"`
	Company     string `json:"company" form:"company"`
	Message     string `json:"message" form:"message"`
}

type JobPostingRequest struct {
	ContactEmail string `json:"contact_email" form:"contact_email"`
	Email        string `json:"email" form:"email"`
	JobTitle     string `json:"job_title" form:"job_title"`
	Company      string `json:"company" form:"company"`
	Description  string `json:"description" form:"description"`
	SalaryRange  string `json:"salary_range" form:"salary_range"`
}
