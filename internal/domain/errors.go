package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrWordNotFound signals a missing word detail document.
	ErrWordNotFound = errors.New("word not found")
	// ErrAudioNotFound signals a missing audio asset.
	ErrAudioNotFound = errors.New("audio not found")
	// ErrInvalidArgument signals a client-supplied parameter failure.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotEnoughWords signals that the index cannot fill a quiz round.
	ErrNotEnoughWords = errors.New("not enough words for quiz")
	// ErrEmptyIndex signals a missing or empty vocabulary index.
	ErrEmptyIndex = errors.New("vocabulary index is empty")
	// ErrStorageUnavailable signals an object store failure.
	ErrStorageUnavailable = errors.New("object storage unavailable")
)
