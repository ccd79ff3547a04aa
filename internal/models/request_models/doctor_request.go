package request_models

type DoctorRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email" binding:"omitempty,email"`
	Address   string `json:"address"`
}
