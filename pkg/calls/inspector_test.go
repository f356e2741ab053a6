package calls

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/structspy/structspy/pkg/spyfw"
)

type sampler struct {
	Sample func(vals ...int)
}

func newSampleSpy(t *testing.T) (*sampler, *spyfw.Spy) {
	t.Helper()

	sm := &sampler{Sample: func(...int) {}}
	field := reflect.ValueOf(sm).Elem().FieldByName("Sample")

	s, err := spyfw.Install(field, "Sample")
	require.NoError(t, err)

	return sm, s
}

func TestInspector_FindWithArgument(t *testing.T) {
	t.Run(
		"finds_first_matching_call", func(t *testing.T) {
			assertions := require.New(t)

			sm, s := newSampleSpy(t)
			sm.Sample(1, 2)
			sm.Sample(42, 3)
			sm.Sample(5)
			sm.Sample(42)

			found := NewInspector().FindWithArgument(s, 42)

			assertions.True(found.IsPresent())
			assertions.Equal(mock.Arguments{42, 3}, found.Get().Arguments)
		},
	)
	t.Run(
		"not_found", func(t *testing.T) {
			assertions := require.New(t)

			sm, s := newSampleSpy(t)
			sm.Sample(1)
			sm.Sample(2)

			assertions.True(NewInspector().FindWithArgument(s, 42).IsEmpty())
		},
	)
	t.Run(
		"empty_call_list", func(t *testing.T) {
			assertions := require.New(t)

			_, s := newSampleSpy(t)

			assertions.True(NewInspector().FindWithArgument(s, 42).IsEmpty())
		},
	)
	t.Run(
		"nil_spy", func(t *testing.T) {
			assertions := require.New(t)

			assertions.True(NewInspector().FindWithArgument(nil, 42).IsEmpty())
		},
	)
	t.Run(
		"does_not_mutate_the_call_list", func(t *testing.T) {
			assertions := require.New(t)

			sm, s := newSampleSpy(t)
			sm.Sample(1, 2)
			sm.Sample(42, 3)

			NewInspector().FindWithArgument(s, 42)

			assertions.Equal(2, s.CallCount())
			assertions.Equal(mock.Arguments{1, 2}, s.Calls[0].Arguments)
		},
	)
}
