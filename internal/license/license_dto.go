package license

type CreateLicenseRequest struct {
	Name         string `json:"name" binding:"required"`
	Key          string `json:"key" binding:"required"`
	PurchaseDate string `json:"purchase_date"`
	ExpiryDate   string `json:"expiry_date" binding:"required"`
}

type LicenseResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Key             string `json:"key"`
	PurchaseDate    string `json:"purchase_date,omitempty"`
	ExpiryDate      string `json:"expiry_date"`
	Status          string `json:"status"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
}

type StatusCountsResponse struct {
	Active        int64 `json:"active"`
	AboutToExpire int64 `json:"about_to_expire"`
	Expired       int64 `json:"expired"`
}
