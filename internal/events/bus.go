package events

import (
	"reflect"
	"sync"
)

// Bus представляет внутриигровую шину событий: подписка и публикация
// типизированных сообщений, где ключом служит тип полезной нагрузки.
// Доставка синхронная; список подписчиков копируется перед обходом,
// поэтому обработчик может подписываться и отписываться прямо во время
// доставки, не ломая текущую итерацию.
type Bus struct {
	mu     sync.Mutex
	subs   map[reflect.Type][]subscription
	nextID uint64
}

type subscription struct {
	id      uint64
	handler func(any)
}

// NewBus создает новую шину событий
func NewBus() *Bus {
	return &Bus{
		subs: make(map[reflect.Type][]subscription),
	}
}

// Subscribe подписывает обработчик на события типа T.
// Возвращает функцию отписки; повторный вызов отписки безопасен.
func Subscribe[T any](b *Bus, handler func(T)) func() {
	key := reflect.TypeOf((*T)(nil)).Elem()

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[key] = append(b.subs[key], subscription{
		id:      id,
		handler: func(event any) { handler(event.(T)) },
	})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		list := b.subs[key]
		for i, sub := range list {
			if sub.id == id {
				// Заменяем срез копией без удаленного элемента,
				// чтобы не трогать снимок, который сейчас обходится
				next := make([]subscription, 0, len(list)-1)
				next = append(next, list[:i]...)
				next = append(next, list[i+1:]...)
				b.subs[key] = next
				return
			}
		}
	}
}

// Publish доставляет событие всем подписчикам его типа.
// Обход идет по снимку списка, сделанному в момент публикации.
func Publish[T any](b *Bus, event T) {
	key := reflect.TypeOf((*T)(nil)).Elem()

	b.mu.Lock()
	snapshot := b.subs[key]
	b.mu.Unlock()

	for _, sub := range snapshot {
		sub.handler(event)
	}
}
