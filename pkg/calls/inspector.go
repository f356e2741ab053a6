package calls

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/structspy/structspy/pkg/optional"
	"github.com/structspy/structspy/pkg/spyfw"
)

type Inspector interface {
	FindWithArgument(s *spyfw.Spy, argument any) optional.Optional[mock.Call]
}

type inspector struct{}

func NewInspector() Inspector {
	return &inspector{}
}

// FindWithArgument returns the first recorded call whose argument list
// contains a value equal to argument under testify's default equality. The
// call list is never mutated.
func (i *inspector) FindWithArgument(s *spyfw.Spy, argument any) optional.Optional[mock.Call] {
	if s == nil {
		return optional.Empty[mock.Call]()
	}

	for _, call := range s.Calls {
		for _, arg := range call.Arguments {
			if assert.ObjectsAreEqual(arg, argument) {
				return optional.Of(call)
			}
		}
	}

	return optional.Empty[mock.Call]()
}
