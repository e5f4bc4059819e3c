package wordle

import "errors"

var (
	ErrInvalidWordLength = errors.New("invalid word length")
	ErrInvalidLetter     = errors.New("invalid letter")
	ErrEmptyDictionary   = errors.New("empty dictionary")
	ErrDuplicateWord     = errors.New("duplicate word")
	ErrUnknownWord       = errors.New("word not in dictionary")
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrTableMismatch     = errors.New("pair table does not match dictionary")
)
