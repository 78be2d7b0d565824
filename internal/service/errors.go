package service

import (
	"Orbit/internal/pkg/analytics"
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid = errors.New("invalid parameter")
	ErrInvalidRange = analytics.ErrInvalidRange
	ErrBrandInvalid = errors.New("invalid brand id")
	UnExpectedError = errors.New("unexpected error, please retry later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid: BadRequest,
	ErrInvalidRange: BadRequest,
	ErrBrandInvalid: BadRequest,
}
