package stats

import "errors"

var (
	ErrMalformedColumn    = errors.New("malformed month column")
	ErrMissingColumn      = errors.New("missing column")
	ErrDuplicateRegion    = errors.New("duplicate region")
	ErrBadValue           = errors.New("bad value")
	ErrTownWithoutState   = errors.New("town listed before any state header")
	ErrMissingHeader      = errors.New("missing header row")
	ErrUnorderedQuarters  = errors.New("quarters are not strictly increasing")
	ErrNoRecession        = errors.New("no recession found")
	ErrInsufficientSample = errors.New("sample too small for a t-test")
	ErrZeroVariance       = errors.New("both samples have zero variance")
)
