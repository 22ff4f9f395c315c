package wheel_state_repo

import (
	"sync"
	"time"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
)

// DefaultIdleTTL Сколько живет открытое окно без действий клиента
const DefaultIdleTTL = 30 * time.Minute

type entry struct {
	wheel   model.ClientWheel
	touched time.Time
}

// StateRepo Реализация репозитория для хранения состояния колеса по клиентам.
// Запись заводит только OpenModal. Закрытое окно без спина запись удаляет,
// окна без действий дольше idleTTL вычищаются при открытии новых
type StateRepo struct {
	mtx       sync.RWMutex
	wheels    map[string]*entry
	idleTTL   time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type Option func(*StateRepo)

func WithIdleTTL(ttl time.Duration) Option {
	return func(r *StateRepo) { r.idleTTL = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(r *StateRepo) { r.now = now }
}

// NewWheelStateRepository Конструктор репозитория с пустым состоянием
func NewWheelStateRepository(opts ...Option) repository.WheelStateRepository {
	r := &StateRepo{
		wheels:  make(map[string]*entry),
		idleTTL: DefaultIdleTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.lastSweep = r.now()
	return r
}

// Wheel Получение состояния колеса клиента.
// Возвращает копию, сессия тоже копируется
func (r *StateRepo) Wheel(clientID string) model.ClientWheel {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	e, ok := r.wheels[clientID]
	if !ok {
		return model.ClientWheel{}
	}
	out := e.wheel
	if e.wheel.Session != nil {
		s := *e.wheel.Session
		out.Session = &s
	}
	return out
}

// OpenModal Открыть окно. Если спин еще крутится, флаг "уже крутили" не сбрасываем
func (r *StateRepo) OpenModal(clientID string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	now := r.now()
	r.sweepLocked(now)

	e, ok := r.wheels[clientID]
	if !ok {
		e = &entry{}
		r.wheels[clientID] = e
	}
	e.touched = now
	e.wheel.ModalOpen = true
	if e.wheel.Session == nil {
		e.wheel.SpunInModal = false
	}
}

// CloseModal Закрыть окно. Анимация в процессе доигрывается
func (r *StateRepo) CloseModal(clientID string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.wheels[clientID]
	if !ok {
		return
	}
	e.wheel.ModalOpen = false
	e.touched = r.now()
	r.dropIfIdle(clientID, e)
}

// BeginSpin Атомарно проверяет, что спин разрешен, и регистрирует сессию.
// plan получает угол, на котором колесо сейчас стоит
func (r *StateRepo) BeginSpin(clientID string, plan func(from float64) model.SpinSession) (model.SpinSession, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.wheels[clientID]
	switch {
	case !ok:
		return model.SpinSession{}, model.ErrModalClosed
	case e.wheel.Session != nil:
		return model.SpinSession{}, model.ErrSpinInFlight
	case !e.wheel.ModalOpen:
		return model.SpinSession{}, model.ErrModalClosed
	case e.wheel.SpunInModal:
		return model.SpinSession{}, model.ErrSpinUsed
	}

	session := plan(e.wheel.RestAngle)
	e.wheel.Session = &session
	e.touched = r.now()
	return session, nil
}

// FinishSpin Уничтожает сессию, колесо остается на restAngle.
// Если окно уже закрыто, запись клиента удаляется
func (r *StateRepo) FinishSpin(clientID string, restAngle float64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.wheels[clientID]
	if !ok {
		return
	}
	e.wheel.Session = nil
	e.wheel.SpunInModal = true
	e.wheel.RestAngle = restAngle
	e.touched = r.now()
	r.dropIfIdle(clientID, e)
}

// Len Число клиентов с состоянием колеса
func (r *StateRepo) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.wheels)
}

func (r *StateRepo) dropIfIdle(clientID string, e *entry) {
	if !e.wheel.ModalOpen && e.wheel.Session == nil {
		delete(r.wheels, clientID)
	}
}

// sweepLocked Раз в idleTTL удаляет окна без спина, брошенные дольше idleTTL
func (r *StateRepo) sweepLocked(now time.Time) {
	if r.idleTTL <= 0 || now.Sub(r.lastSweep) < r.idleTTL {
		return
	}
	r.lastSweep = now

	for id, e := range r.wheels {
		if e.wheel.Session == nil && now.Sub(e.touched) >= r.idleTTL {
			delete(r.wheels, id)
		}
	}
}
