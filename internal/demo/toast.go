package demo

import (
	"sync"
	"time"
)

// ToastTimeout Время жизни уведомления
const ToastTimeout = 4000 * time.Millisecond

const (
	KindSuccess = "success"
	KindError   = "error"
)

type Toast struct {
	ID   int
	Kind string
	Text string
}

// Flash Серверное flash сообщение страницы
type Flash struct {
	Category string
	Message  string
}

// AfterFunc Запускает f через d, возвращает отмену таймера
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

type ToasterOption func(*Toaster)

func WithAfterFunc(af AfterFunc) ToasterOption {
	return func(t *Toaster) { t.afterFunc = af }
}

// Toaster Единый контейнер уведомлений. Каждое закрывается вручную
// или само через ToastTimeout
type Toaster struct {
	mtx       sync.Mutex
	afterFunc AfterFunc
	nextID    int
	toasts    []Toast
	stops     map[int]func() bool
}

func NewToaster(opts ...ToasterOption) *Toaster {
	t := &Toaster{
		afterFunc: realAfterFunc,
		stops:     make(map[int]func() bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Toaster) Show(kind, text string) int {
	t.mtx.Lock()
	t.nextID++
	id := t.nextID
	t.toasts = append(t.toasts, Toast{ID: id, Kind: kind, Text: text})
	t.mtx.Unlock()

	stop := t.afterFunc(ToastTimeout, func() { t.dismiss(id) })

	t.mtx.Lock()
	if t.has(id) {
		t.stops[id] = stop
	}
	t.mtx.Unlock()
	return id
}

// Close Закрытие по кнопке
func (t *Toaster) Close(id int) bool {
	t.mtx.Lock()
	stop := t.stops[id]
	removed := t.remove(id)
	t.mtx.Unlock()

	if stop != nil {
		stop()
	}
	return removed
}

// AdoptFlashes Переносит flash сообщения в контейнер уведомлений
func (t *Toaster) AdoptFlashes(flashes []Flash) []int {
	ids := make([]int, 0, len(flashes))
	for _, f := range flashes {
		kind := f.Category
		if kind == "" {
			kind = KindSuccess
		}
		ids = append(ids, t.Show(kind, f.Message))
	}
	return ids
}

func (t *Toaster) Toasts() []Toast {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	out := make([]Toast, len(t.toasts))
	copy(out, t.toasts)
	return out
}

func (t *Toaster) dismiss(id int) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.remove(id)
}

func (t *Toaster) has(id int) bool {
	for _, toast := range t.toasts {
		if toast.ID == id {
			return true
		}
	}
	return false
}

func (t *Toaster) remove(id int) bool {
	delete(t.stops, id)
	for i, toast := range t.toasts {
		if toast.ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return true
		}
	}
	return false
}
