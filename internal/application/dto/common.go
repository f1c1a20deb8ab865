package dto

// PageEnvelope sobre uniforme de los listados paginados.
type PageEnvelope[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
}

// ErrorResponse cuerpo de error de las lecturas: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ActionResponse cuerpo de las operaciones de escritura y del consecutivo.
type ActionResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
