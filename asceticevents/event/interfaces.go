package event

import (
	"github.com/krew-solutions/ascetic-events-go/asceticevents/dispatcher"
	"github.com/krew-solutions/ascetic-events-go/asceticevents/disposable"
)

type Observer[T any] func(T)

// Handler is the delivery function of a subscription. It returns false when
// whatever it delivers to no longer exists, and the subscription then
// removes itself without counting a delivery.
type Handler[T any] func(T) bool

type Event[T any] interface {
	Emit(value T)
	Subscribe(observer Observer[T]) disposable.Disposable
	SubscribeOn(d dispatcher.Dispatcher, observer Observer[T]) disposable.Disposable
}
