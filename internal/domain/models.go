package domain

import "fmt"

// Phase представляет фазу игрового дня
type Phase int

const (
	PhaseNight Phase = iota
	PhasePrep
	PhaseOpen
	PhaseClosed
)

// PhaseCount задает количество фаз в цикле дня
const PhaseCount = 4

func (p Phase) String() string {
	switch p {
	case PhaseNight:
		return "night"
	case PhasePrep:
		return "prep"
	case PhaseOpen:
		return "open"
	case PhaseClosed:
		return "closed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Next возвращает следующую фазу цикла (после Closed снова Night)
func (p Phase) Next() Phase {
	return Phase((int(p) + 1) % PhaseCount)
}

// Material представляет тип сырья для крафта
type Material int

const (
	MaterialCloth Material = iota
	MaterialThread
)

func (m Material) String() string {
	switch m {
	case MaterialCloth:
		return "cloth"
	case MaterialThread:
		return "thread"
	default:
		return fmt.Sprintf("material(%d)", int(m))
	}
}

// Slot представляет слот одежды персонажа
type Slot int

const (
	SlotTop Slot = iota
	SlotBottom
)

func (s Slot) String() string {
	switch s {
	case SlotTop:
		return "top"
	case SlotBottom:
		return "bottom"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// ItemRef идентифицирует предмет каталога: слот + индекс типа внутри слота.
// Сравнимое значение, используется как ключ соответствия заказа и примерки.
type ItemRef struct {
	Slot Slot `json:"slot"`
	Type int  `json:"type"`
}

// ID возвращает строковый идентификатор предмета вида "top_2"
func (r ItemRef) ID() string {
	return fmt.Sprintf("%s_%d", r.Slot, r.Type)
}

// Order представляет неизменяемый шаблон заказа клиента.
// nil в RequiredTop/RequiredBottom означает "подходит любой предмет".
type Order struct {
	RequiredTop    *ItemRef `json:"required_top,omitempty"`
	RequiredBottom *ItemRef `json:"required_bottom,omitempty"`
	Payout         int      `json:"payout"`
}

// StockSnapshot представляет полный снимок склада для персистентности
type StockSnapshot struct {
	Cloth   int   `json:"cloth"`
	Thread  int   `json:"thread"`
	Tops    []int `json:"tops"`
	Bottoms []int `json:"bottoms"`
}

// GarmentCount представляет накопленный счетчик скрафченных предметов по id
type GarmentCount struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// DaySummary представляет итоги игрового дня для сводного экрана
type DaySummary struct {
	Served   int `json:"served"`
	TimedOut int `json:"timed_out"`
	Earned   int `json:"earned"`
}
