package event

import (
	"github.com/krew-solutions/ascetic-events-go/asceticevents/dispatcher"
	"github.com/krew-solutions/ascetic-events-go/asceticevents/disposable"
)

type CompositeEventImp[T any] struct {
	delegates []Event[T]
}

func NewCompositeEvent[T any](delegates ...Event[T]) *CompositeEventImp[T] {
	return &CompositeEventImp[T]{delegates: delegates}
}

func (c *CompositeEventImp[T]) Subscribe(observer Observer[T]) disposable.Disposable {
	return c.SubscribeOn(dispatcher.Immediate, observer)
}

func (c *CompositeEventImp[T]) SubscribeOn(d dispatcher.Dispatcher, observer Observer[T]) disposable.Disposable {
	disposables := make([]disposable.Disposable, 0, len(c.delegates))
	for _, delegate := range c.delegates {
		disposables = append(disposables, delegate.SubscribeOn(d, observer))
	}
	return disposable.NewCompositeDisposable(disposables...)
}

func (c *CompositeEventImp[T]) Emit(value T) {
	for _, delegate := range c.delegates {
		delegate.Emit(value)
	}
}
