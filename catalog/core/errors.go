package core

import "errors"

var (
	ErrNilDependency = errors.New("catalog: nil dependency")

	ErrNetwork   = errors.New("comics source is unreachable")
	ErrProtocol  = errors.New("comics source replied with failure status")
	ErrDecode    = errors.New("comics source replied with malformed body")
	ErrNotFound  = errors.New("comic is not found")
	ErrMissingID = errors.New("comic id is missing")
)
