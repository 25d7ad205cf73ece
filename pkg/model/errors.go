package model

import "errors"

var (
	// ErrInvalidBatch reports a batch that is neither a container nor a
	// sequence of hooks.
	ErrInvalidBatch = errors.New("model: batch must be a hooks container or a sequence of hooks")
	// ErrNoDocLink is returned by Hook.DocLink when the hook was loaded
	// without a docLinkTemplate.
	ErrNoDocLink = errors.New("model: hook has no doc link template")
)
