package premis

import perrors "github.com/KimNorgaard/go-premis/errors"

// Error kinds, re-exported from the errors package.
type (
	ConstructionError  = perrors.ConstructionError
	NotFoundError      = perrors.NotFoundError
	AmbiguousPathError = perrors.AmbiguousPathError
	DecodeError        = perrors.DecodeError
)

// Sentinels for errors.Is.
var (
	ErrConstruction  = perrors.ErrConstruction
	ErrNotFound      = perrors.ErrNotFound
	ErrAmbiguousPath = perrors.ErrAmbiguousPath
	ErrDecode        = perrors.ErrDecode
)
