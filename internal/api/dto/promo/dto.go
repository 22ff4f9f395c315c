package promo

type SegmentResponse struct {
	Index      int     `json:"index"`
	Discount   int     `json:"discount"`
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
}

type ModalResponse struct {
	Open           bool              `json:"open"`
	Segments       []SegmentResponse `json:"segments,omitempty"`
	PointerAngle   float64           `json:"pointer_angle,omitempty"`
	SpinDurationMs int64             `json:"spin_duration_ms,omitempty"`
	SVG            string            `json:"svg,omitempty"`
}

type SpinResponse struct {
	ChosenIndex   int     `json:"chosen_index"`   // Выбранный сектор
	Rounds        int     `json:"rounds"`         // Полных оборотов
	From          float64 `json:"from"`           // Угол до спина
	Target        float64 `json:"target"`         // Угол, на котором колесо остановится
	MeasuredAngle float64 `json:"measured_angle"` // Угол после анимации, [0, 360)
	Segment       int     `json:"segment"`        // Сектор под стрелкой
	Discount      int     `json:"discount"`
	Message       string  `json:"message"`
}

type StateResponse struct {
	Spinning     bool    `json:"spinning"`
	ModalOpen    bool    `json:"modal_open"`
	Discount     *int    `json:"discount"`
	Spun         bool    `json:"spun"`
	CurrentAngle float64 `json:"current_angle"`
}

type CloseResponse struct {
	Closed    bool `json:"closed"`
	Persisted bool `json:"persisted"`
}

type BadgeResponse struct {
	Show     bool   `json:"show"`
	Discount int    `json:"discount,omitempty"`
	Text     string `json:"text,omitempty"`
	Action   string `json:"action,omitempty"`
	Target   string `json:"target,omitempty"`
}

// OrderDiscountResponse Значения для полей discountInput и discountInfo формы заказа
type OrderDiscountResponse struct {
	DiscountInput string `json:"discountInput"`
	DiscountInfo  string `json:"discountInfo"`
}
