package reassignment

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("service.reassignment: internal error")
)
