package wardrobe

import "errors"

var (
	ErrUnknownSetType  = errors.New("set type not initialized or does not exist")
	ErrUnknownSet      = errors.New("set does not exist in set type")
	ErrPaletteNotBound = errors.New("palette not bound to set type")
	ErrInvalidGender   = errors.New("gender must be M or F")
	ErrLayerOutOfRange = errors.New("color layer out of range for set")
	ErrUnknownColor    = errors.New("color not in set type palette")
	ErrMissingColors   = errors.New("cannot find colors section in figure data")
	ErrMissingSets     = errors.New("cannot find sets section in figure data")
)
