package multierror

import (
	"fmt"
	"strings"
)

type MultiError struct {
	error
}

func (m MultiError) Unwrap() error {
	return m.error
}

type Builder interface {
	Add(errs ...error)
	AllNonNil() []error
	Build() error
}

type builder struct {
	errs []error
}

func NewBuilder(errs ...error) Builder {
	return &builder{
		errs: errs,
	}
}

func (b *builder) Add(errs ...error) {
	b.errs = append(b.errs, errs...)
}

func (b *builder) AllNonNil() []error {
	res := make([]error, 0, len(b.errs))
	for _, err := range b.errs {
		if err != nil {
			res = append(res, err)
		}
	}
	return res
}

// Build combines the accumulated errors into one, or returns nil when none
// were added. Each combined error stays reachable through errors.Is/As.
func (b *builder) Build() error {
	errs := b.AllNonNil()

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		errMsgFmt := "multiple errors:\n" + strings.Repeat("%w\n", len(errs))
		errsAsAny := make([]any, 0, len(errs))
		for _, err := range errs {
			errsAsAny = append(errsAsAny, err)
		}
		return MultiError{
			error: fmt.Errorf(errMsgFmt, errsAsAny...),
		}
	}
}
