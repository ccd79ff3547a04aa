package db_models

// Doctor is a shared reference entity, not scoped to a user. Deletion is
// refused at the service layer while any active patient or record still
// references the doctor.
type Doctor struct {
	BaseModel
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}
