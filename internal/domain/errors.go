package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// InsufficientStockError lleva el detalle de qué producto no alcanzó y por cuánto,
// para que el frontend pueda armar un mensaje preciso. errors.Is contra
// ErrInsufficientStock sigue funcionando.
type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: solicitado %d, disponible %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// DuplicateInvoiceNumberError colisión del número de factura externo de una compra.
type DuplicateInvoiceNumberError struct {
	Number string
}

func (e *DuplicateInvoiceNumberError) Error() string {
	return fmt.Sprintf("ya existe una factura de compra con número %s", e.Number)
}

func (e *DuplicateInvoiceNumberError) Unwrap() error { return ErrDuplicate }

// NotFoundError identifica qué recurso faltó (producto, cliente, proveedor, factura).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
