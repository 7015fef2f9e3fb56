package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores del motor de tarifas y facturación.
var (
	// ErrInvalidShippingType el tipo de envío no es standard, express ni maritime.
	ErrInvalidShippingType = errors.New("tipo de envío inválido")
	// ErrNoRuleFound no existe tarifa activa para el par (país, tipo de envío).
	// Nunca se interpreta como precio cero: el operador debe crear la tarifa.
	ErrNoRuleFound = errors.New("no existe tarifa para ese país y tipo de envío")
	// ErrPriceUnavailable no se puede facturar: falta la tarifa o la cantidad (peso/volumen).
	ErrPriceUnavailable = errors.New("no se puede generar la factura: tarifa o cantidad no disponible")
	// ErrAlreadyInvoiced el paquete ya tiene una factura generada.
	ErrAlreadyInvoiced = errors.New("el paquete ya tiene una factura generada")
)
