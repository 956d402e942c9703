package service

import "errors"

var (
	// ErrThreadAlreadyAnswered is returned when a thread already has a
	// generated answer.
	ErrThreadAlreadyAnswered = errors.New("thread already has an AI answer")
	// ErrMaterialCorrupted is returned when stored material content or
	// keywords fail to decode.
	ErrMaterialCorrupted = errors.New("material content is corrupted")
)
