package set

type Set[T comparable] interface {
	Contains(v T) bool
	Add(vs ...T)
	Len() int
}

type set[T comparable] struct {
	members map[T]bool
}

func (s *set[T]) Contains(v T) bool {
	return s.members[v]
}

func (s *set[T]) Add(vs ...T) {
	for _, v := range vs {
		s.members[v] = true
	}
}

func (s *set[T]) Len() int {
	return len(s.members)
}

func New[T comparable](vs ...T) Set[T] {
	s := &set[T]{
		members: make(map[T]bool, len(vs)),
	}
	s.Add(vs...)
	return s
}
