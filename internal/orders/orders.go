// Package orders реализует библиотеку заказов и взвешенный случайный
// выбор заказа с фильтром по ступени репутации.
package orders

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/avc/mmdress/internal/domain"
)

// Ступени репутации, ограничивающие доступность заказов
const (
	minStage = 1
	maxStage = 3
)

// Entry представляет запись библиотеки: шаблон заказа, вес выбора
// и диапазон ступеней [MinStage, MaxStage], в котором заказ доступен
type Entry struct {
	Order    domain.Order
	Weight   int
	MinStage int
	MaxStage int
}

// Library представляет неизменяемый пул записей
type Library struct {
	entries []Entry
}

// NewLibrary создает библиотеку из записей
func NewLibrary(entries []Entry) *Library {
	return &Library{entries: entries}
}

// DefaultLibrary возвращает стандартный пул заказов для каталога из
// typesPerSlot типов в каждом слоте
func DefaultLibrary(typesPerSlot int) *Library {
	item := func(slot domain.Slot, typeIndex int) *domain.ItemRef {
		return &domain.ItemRef{Slot: slot, Type: typeIndex % typesPerSlot}
	}

	return NewLibrary([]Entry{
		// Свободные заказы: любой наряд устраивает
		{Order: domain.Order{Payout: 100}, Weight: 4, MinStage: 1, MaxStage: 3},
		// Заказы на один слот
		{Order: domain.Order{RequiredTop: item(domain.SlotTop, 0), Payout: 150}, Weight: 3, MinStage: 1, MaxStage: 2},
		{Order: domain.Order{RequiredBottom: item(domain.SlotBottom, 1), Payout: 150}, Weight: 3, MinStage: 1, MaxStage: 2},
		{Order: domain.Order{RequiredTop: item(domain.SlotTop, 2), Payout: 200}, Weight: 2, MinStage: 2, MaxStage: 3},
		// Полные комплекты для высокой репутации
		{Order: domain.Order{RequiredTop: item(domain.SlotTop, 1), RequiredBottom: item(domain.SlotBottom, 0), Payout: 300}, Weight: 2, MinStage: 2, MaxStage: 3},
		{Order: domain.Order{RequiredTop: item(domain.SlotTop, 3), RequiredBottom: item(domain.SlotBottom, 2), Payout: 450}, Weight: 1, MinStage: 3, MaxStage: 3},
	})
}

// Service выбирает заказы из библиотеки
type Service struct {
	lib    *Library
	rnd    *rand.Rand
	logger *zap.Logger
}

// NewService создает сервис выбора заказов.
// При nil rnd используется источник от текущего времени.
func NewService(lib *Library, rnd *rand.Rand, logger *zap.Logger) *Service {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		lib:    lib,
		rnd:    rnd,
		logger: logger,
	}
}

// GetRandomOrder выполняет взвешенный случайный выбор заказа, доступного
// на ступени stage. Возвращает nil, если ни одна запись не подходит:
// вызывающий трактует это как "заказ не назначен", а не как ошибку.
func (s *Service) GetRandomOrder(stage int) *domain.Order {
	eligible := make([]Entry, 0, len(s.lib.entries))
	total := 0

	for _, e := range s.lib.entries {
		if e.Weight <= 0 {
			continue
		}

		lo := clampStage(e.MinStage)
		hi := clampStage(e.MaxStage)
		if lo > hi {
			lo, hi = hi, lo
		}
		if stage < lo || stage > hi {
			continue
		}

		eligible = append(eligible, e)
		total += e.Weight
	}

	if len(eligible) == 0 {
		return nil
	}

	// Кумулятивный обход: равномерное целое из [0, total) и вычитание
	// весов до ухода остатка в минус
	remainder := s.rnd.Intn(total)
	for _, e := range eligible {
		remainder -= e.Weight
		if remainder < 0 {
			order := e.Order
			return &order
		}
	}

	// Структурно недостижимо при корректных весах; на краевых случаях
	// арифметики возвращаем последнюю подходящую запись
	s.logger.Warn("weighted draw fell through, using last eligible entry")
	order := eligible[len(eligible)-1].Order
	return &order
}

func clampStage(stage int) int {
	if stage < minStage {
		return minStage
	}
	if stage > maxStage {
		return maxStage
	}
	return stage
}
