package subject

import (
	"github.com/krew-solutions/ascetic-events-go/asceticevents/dispatcher"
	"github.com/krew-solutions/ascetic-events-go/asceticevents/disposable"
	"github.com/krew-solutions/ascetic-events-go/asceticevents/option"
)

// Change is what subscribers of a subject receive: the committed value and
// the tag explaining why it changed.
type Change[V, E any] struct {
	Value V
	Tag   E
}

type Observer[V, E any] func(value V, tag E)

type Subject[V, E any] interface {
	Value() V
	Modify(tag option.Option[E], transform func(V) V) V
	Subscribe(observer Observer[V, E]) disposable.Disposable
	SubscribeOn(d dispatcher.Dispatcher, observer Observer[V, E]) disposable.Disposable
}
