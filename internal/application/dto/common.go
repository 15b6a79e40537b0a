package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP. Details lleva los identificadores del
// error cuando aplica (ej. producto/solicitado/disponible en stock insuficiente).
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// InsufficientStockDetails payload del 409 INSUFFICIENT_STOCK.
type InsufficientStockDetails struct {
	ProductID string `json:"producto"`
	Requested int64  `json:"solicitado"`
	Available int64  `json:"disponible"`
}
