package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrMissingParams    = errors.New("faltan parámetros requeridos")
	ErrUpstream         = errors.New("error del servicio Reciboo")
	ErrInvalidResponse  = errors.New("respuesta del servicio con formato inesperado")
	ErrAlreadyInvoiced  = errors.New("la entrada de mercancía ya fue facturada")
	ErrFileTooLarge     = errors.New("el archivo excede el tamaño máximo")
	ErrFileType         = errors.New("tipo de archivo no permitido")
	ErrGateNotSatisfied = errors.New("no se cumplen los requisitos para avanzar")
	ErrNoSupplier       = errors.New("no hay proveedor seleccionado")
	ErrSubmitInProgress = errors.New("ya hay un envío de factura en curso")
	ErrStaleResponse    = errors.New("respuesta obsoleta descartada")
)
