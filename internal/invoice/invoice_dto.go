package invoice

type CreateInvoiceRequest struct {
	Number      string  `json:"number" binding:"required"`
	ClientEmail string  `json:"client_email" binding:"required,email"`
	Telephone   string  `json:"telephone"`
	TotalAmount float64 `json:"total_amount" binding:"required,gt=0"`
	InvoiceDate string  `json:"invoice_date" binding:"required"`
}

type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListInvoicesQuery struct {
	Search string `form:"search"`
	Status string `form:"status"`
}
