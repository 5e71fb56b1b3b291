package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso pueden envolverlos con fmt.Errorf("%w: detalle") para dar el motivo concreto;
// la capa HTTP los identifica con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Libro mayor
	ErrInvalidAmount    = errors.New("monto inválido")
	ErrInvalidDirection = errors.New("dirección de asiento inválida")

	// Inventario
	ErrInvalidQuantity     = errors.New("cantidad inválida")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")

	// Nómina
	ErrInvalidSalary = errors.New("salario básico inválido")
	ErrInvalidPeriod = errors.New("periodo de nómina inválido")
	ErrOpenShift     = errors.New("turno abierto sin hora de salida")
)
