package domain

import "errors"

// Ошибки валидации входных данных
var (
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidGarmentType = errors.New("garment type out of range")
	ErrWrongSlot          = errors.New("item does not match slot")
)

// Ошибки нехватки ресурсов
var (
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientMaterials = errors.New("insufficient materials")
	ErrOutOfStock            = errors.New("garment out of stock")
)

// Ошибки игрового процесса
var (
	ErrOutsidePrepWindow = errors.New("not allowed outside prep window")
	ErrSlotLocked        = errors.New("slot already locked this session")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrSessionExists     = errors.New("fitting session already open")
	ErrNoActiveSession   = errors.New("no active fitting session")
)
