package optional

type Optional[T any] interface {
	IsPresent() bool
	IsEmpty() bool
	Get() T
	GetOrDefault(val T) T
	IfPresent(do func(val T))
}

type optional[T any] struct {
	val     T
	present bool
}

func (o *optional[T]) IsPresent() bool {
	return o.present
}

func (o *optional[T]) IsEmpty() bool {
	return !o.present
}

func (o *optional[T]) Get() T {
	return o.val
}

func (o *optional[T]) GetOrDefault(val T) T {
	switch o.present {
	case true:
		return o.val
	default:
		return val
	}
}

func (o *optional[T]) IfPresent(do func(val T)) {
	if o.present {
		do(o.val)
	}
}

func Of[T any](val T) Optional[T] {
	return &optional[T]{
		val:     val,
		present: true,
	}
}

func Empty[T any]() Optional[T] {
	return &optional[T]{}
}
