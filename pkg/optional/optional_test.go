package optional

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptional_Presence(t *testing.T) {
	t.Run(
		"of", func(t *testing.T) {
			assertions := require.New(t)

			o := Of("hello")

			assertions.True(o.IsPresent())
			assertions.False(o.IsEmpty())
			assertions.Equal("hello", o.Get())
		},
	)
	t.Run(
		"of_zero_value", func(t *testing.T) {
			assertions := require.New(t)

			o := Of("")

			assertions.True(o.IsPresent())
			assertions.Equal("", o.Get())
		},
	)
	t.Run(
		"empty", func(t *testing.T) {
			assertions := require.New(t)

			o := Empty[string]()

			assertions.False(o.IsPresent())
			assertions.True(o.IsEmpty())
		},
	)
}

func TestOptional_GetOrDefault(t *testing.T) {
	for _, test := range []struct {
		name     string
		opt      Optional[int]
		expected int
	}{
		{
			name:     "present",
			opt:      Of(7),
			expected: 7,
		},
		{
			name:     "empty",
			opt:      Empty[int](),
			expected: 42,
		},
	} {
		t.Run(
			test.name, func(t *testing.T) {
				assertions := require.New(t)

				assertions.Equal(test.expected, test.opt.GetOrDefault(42))
			},
		)
	}
}

func TestOptional_IfPresent(t *testing.T) {
	assertions := require.New(t)

	seen := make([]int, 0, 1)

	Of(3).IfPresent(
		func(val int) {
			seen = append(seen, val)
		},
	)
	Empty[int]().IfPresent(
		func(val int) {
			seen = append(seen, val)
		},
	)

	assertions.Equal([]int{3}, seen)
}
