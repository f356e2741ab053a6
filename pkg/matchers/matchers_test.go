package matchers

import (
	"testing"

	"github.com/onsi/gomega"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	for _, test := range []struct {
		name     string
		actual   any
		expected bool
	}{
		{
			name:     "empty_string",
			actual:   "",
			expected: true,
		},
		{
			name:     "non_empty_string",
			actual:   "x",
			expected: false,
		},
		{
			name:     "empty_slice",
			actual:   []int{},
			expected: true,
		},
		{
			name:     "non_empty_slice",
			actual:   []int{1},
			expected: false,
		},
		{
			name:     "empty_map",
			actual:   map[string]int{},
			expected: true,
		},
		{
			name:     "nil",
			actual:   nil,
			expected: false,
		},
		{
			name:     "lengthless_value",
			actual:   42,
			expected: false,
		},
	} {
		t.Run(
			test.name, func(t *testing.T) {
				assertions := require.New(t)

				assertions.Equal(test.expected, IsEmpty(test.actual))
			},
		)
	}
}

func TestRegistry(t *testing.T) {
	t.Run(
		"built_in_is_empty", func(t *testing.T) {
			assertions := require.New(t)

			r := NewRegistry()

			p, ok := r.Lookup("isEmpty")
			assertions.True(ok)
			assertions.True(p(""))
			assertions.Equal([]string{"isEmpty"}, r.Names())
		},
	)
	t.Run(
		"register_and_lookup", func(t *testing.T) {
			assertions := require.New(t)

			r := NewRegistry()
			r.Register(
				"isAnswer", func(actual any) bool {
					return actual == 42
				},
			)

			p, ok := r.Lookup("isAnswer")
			assertions.True(ok)
			assertions.True(p(42))
			assertions.False(p(41))
			assertions.Equal([]string{"isAnswer", "isEmpty"}, r.Names())
		},
	)
	t.Run(
		"invalid_registrations_ignored", func(t *testing.T) {
			assertions := require.New(t)

			r := NewRegistry()
			r.Register("", IsEmpty)
			r.Register("broken", nil)

			_, ok := r.Lookup("broken")
			assertions.False(ok)
			assertions.Equal([]string{"isEmpty"}, r.Names())
		},
	)
	t.Run(
		"unknown_matcher_is_an_error", func(t *testing.T) {
			assertions := require.New(t)

			_, err := NewRegistry().Matcher("isTeapot")
			assertions.Error(err)
		},
	)
}

func TestRegistry_GomegaMatcher(t *testing.T) {
	g := gomega.NewWithT(t)

	m, err := NewRegistry().Matcher("isEmpty")
	g.Expect(err).NotTo(gomega.HaveOccurred())

	g.Expect([]string{}).To(m)
	g.Expect("").To(m)
	g.Expect([]string{"x"}).NotTo(m)
	g.Expect(nil).NotTo(m)

	g.Expect(m.FailureMessage("x")).To(gomega.ContainSubstring("to satisfy isEmpty"))
	g.Expect(m.NegatedFailureMessage("")).To(gomega.ContainSubstring("not to satisfy isEmpty"))
}
