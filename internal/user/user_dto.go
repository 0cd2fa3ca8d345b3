package user

type CreateUserRequest struct {
	Name         string   `json:"name" binding:"required"`
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=8"`
	Roles        []string `json:"roles"`
	HireDate     string   `json:"hire_date"`
	ContractType string   `json:"contract_type"`
}

type UpdateContractRequest struct {
	ContractType   string `json:"contract_type" binding:"required"`
	ContractExpiry string `json:"contract_expiry"`
}

type UserResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Roles          []string `json:"roles"`
	HireDate       string   `json:"hire_date,omitempty"`
	ContractType   string   `json:"contract_type,omitempty"`
	ContractExpiry *string  `json:"contract_expiry,omitempty"`
	IsActive       bool     `json:"is_active"`
	CreatedAt      string   `json:"created_at"`
}
