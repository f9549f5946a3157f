package anim

import "errors"

var (
	ErrUnknownSet      = errors.New("anim: unknown animation set")
	ErrDuplicateKey    = errors.New("anim: duplicate animation key")
	ErrInvalidResource = errors.New("anim: invalid animation resource")
)
