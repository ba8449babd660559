package services

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidDirection     = errors.New("invalid attendance direction")
	ErrNotFound             = errors.New("not found")
	ErrNoFace               = errors.New("no face detected")
	ErrInconsistentIdentity = errors.New("embeddings reference a missing intern")
	ErrDimensionMismatch    = errors.New("embedding dimension mismatch")
)
