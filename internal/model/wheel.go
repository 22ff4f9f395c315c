package model

import "time"

// Segment - один сектор колеса
type Segment struct {
	Index      int
	Discount   Discount
	Label      string
	Color      string
	StartAngle float64
	EndAngle   float64
}

// Modal - данные окна с колесом для отрисовки на клиенте
type Modal struct {
	Segments     []Segment
	PointerAngle float64
	SpinDuration time.Duration
	SVG          string
}

// PromoWheelState - состояние колеса для конкретного клиента
type PromoWheelState struct {
	Spinning     bool
	ModalOpen    bool
	Discount     *Discount
	Spun         bool
	CurrentAngle float64
}

// SpinPlan - параметры запуска анимации
type SpinPlan struct {
	ChosenIndex int
	Rounds      int
	Jitter      float64
	From        float64
	Target      float64
}

// SpinSession - спин в процессе анимации. Живет только в памяти
type SpinSession struct {
	Plan      SpinPlan
	StartedAt time.Time
	Duration  time.Duration
}

// SpinOutcome - результат завершенного спина
type SpinOutcome struct {
	Plan          SpinPlan
	MeasuredAngle float64
	Segment       int
	Discount      Discount
	Message       string
}

// Badge - плашка с активной скидкой
type Badge struct {
	Discount Discount
	Text     string
	Action   string
	Target   string
}

const (
	BadgeActionOpenModal = "open_modal"
	BadgeActionNavigate  = "navigate"
)

// OrderDiscount - скидка для страницы заказа
type OrderDiscount struct {
	Discount Discount
	Info     string
}

// ClientWheel - состояние окна колеса одного клиента в памяти процесса
type ClientWheel struct {
	ModalOpen   bool
	SpunInModal bool
	Session     *SpinSession
	RestAngle   float64
}
