package domain

import "errors"

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrItemNotAvailable   = errors.New("item not available")
	ErrItemRented         = errors.New("item is currently rented")
	ErrRentalNotFound     = errors.New("rental not found")
	ErrRentalNotActive    = errors.New("rental is not active")
	ErrDuplicateRental    = errors.New("rental already exists")
	ErrInvalidMember      = errors.New("invalid member")
	ErrInvalidItem        = errors.New("invalid item")
	ErrInvalidRental      = errors.New("invalid rental request")
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
