package todo

type CreateTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Due         string `json:"due" binding:"required"`
	Owner       string `json:"owner"`
}

type UpdateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Due         string `json:"due"`
	Status      string `json:"status"`
	Owner       string `json:"owner"`
}
