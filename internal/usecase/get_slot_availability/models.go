package get_slot_availability

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// Request модель запроса доступности слотов на день
type Request struct {
	TenantID int64
	Date     time.Time

	// RequireFeatureEnabled включает проверку crowd-фичи зала
	// Публичная загруженность требует включенную фичу, дашборд владельца
	// и страница бронирования по токену - нет
	RequireFeatureEnabled bool

	// IncludeMembers добавляет списки участников по слотам (дашборд владельца)
	IncludeMembers bool
}

// SlotAvailability состояние одного слота каталога
type SlotAvailability struct {
	SlotID       domain.SlotID
	StartTime    types.TimeString
	EndTime      types.TimeString
	CurrentCount int
	MaxCapacity  int

	// AvailableSpots не бывает отрицательным даже при переполнении
	AvailableSpots int
	OccupancyPct   float64
	CrowdLevel     domain.CrowdLevel
	IsRecommended  bool

	// Members заполняется только при IncludeMembers
	Members []domain.MemberRef
}

// DailyStatistics агрегированная сводка по дню
type DailyStatistics struct {
	TotalBookings              int
	TierCounts                 map[domain.CrowdTier]int
	AverageOccupancyPercentage float64
}

// Response модель ответа: все слоты каталога в фиксированном порядке
type Response struct {
	TenantID int64
	Date     time.Time
	Slots    []SlotAvailability
	Stats    DailyStatistics
}
