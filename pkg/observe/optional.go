package observe

import (
	"iter"
	"reflect"
)

var _ Observer[int] = (*Optional[int])(nil)

// Optional holds an observer that may be absent.
// While empty every call succeeds without effect; otherwise calls are forwarded unchanged.
// A nil observer, including a typed nil such as (*T)(nil), leaves it empty.
// The zero value is an empty Optional.
type Optional[T any] struct {
	observer Observer[T]
}

// NewOptional creates an Optional holding observer.
func NewOptional[T any](observer Observer[T]) *Optional[T] {
	return &Optional[T]{observer: present(observer)}
}

// Replace installs observer and returns the previous one, if any.
// No lifecycle method is called on either.
func (o *Optional[T]) Replace(observer Observer[T]) (Observer[T], bool) {
	prev := o.observer
	o.observer = present(observer)
	return prev, prev != nil
}

// Take removes and returns the held observer, if any, leaving o empty.
func (o *Optional[T]) Take() (Observer[T], bool) {
	prev := o.observer
	o.observer = nil
	return prev, prev != nil
}

// IsPresent reports whether an observer is held.
func (o *Optional[T]) IsPresent() bool {
	return o.observer != nil
}

func (o *Optional[T]) OnStart() error {
	if o.observer == nil {
		return nil
	}
	return o.observer.OnStart()
}

func (o *Optional[T]) OnUpdates(updates iter.Seq[T]) error {
	if o.observer == nil {
		return nil
	}
	return o.observer.OnUpdates(updates)
}

func (o *Optional[T]) OnCommit() error {
	if o.observer == nil {
		return nil
	}
	return o.observer.OnCommit()
}

func (o *Optional[T]) OnCompleted() error {
	if o.observer == nil {
		return nil
	}
	return o.observer.OnCompleted()
}

// present returns observer, or nil when it holds a nil pointer, func, map, chan or slice.
func present[T any](observer Observer[T]) Observer[T] {
	if observer == nil {
		return nil
	}
	switch v := reflect.ValueOf(observer); v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		if v.IsNil() {
			return nil
		}
	}
	return observer
}
