package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInvalidState        = errors.New("estado inválido para esta operación")
	ErrInsufficientLimit   = errors.New("cupo de crédito insuficiente")
	ErrInsufficientFunds   = errors.New("fondos insuficientes en la cuenta")
	ErrCardRejected        = errors.New("solicitud de tarjeta rechazada")
	ErrInvalidUpstreamData = errors.New("el sistema externo devolvió datos inconsistentes")
	ErrGateway             = errors.New("error al comunicarse con el sistema externo")
)
