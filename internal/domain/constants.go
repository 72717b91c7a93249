package domain

// Default configuration values
const (
	// DefaultSlotCapacity вместимость слота, когда у зала нет конфигурации
	DefaultSlotCapacity = 20

	// DefaultPatternWindowDays окно анализа истории для определения привычного слота
	DefaultPatternWindowDays = 30
)

// Slot catalog constants
const (
	// OpeningHour час открытия зала (первый слот начинается в 06:00)
	OpeningHour = 6

	// ClosingHour час закрытия зала (последний слот заканчивается в 22:00)
	ClosingHour = 22

	// SlotDurationMinutes длительность каждого слота каталога
	SlotDurationMinutes = 60
)

// Crowd classification thresholds (нижние границы в процентах, включительно)
const (
	ThresholdAlmostFull = 70
	ThresholdCongested  = 85
	ThresholdFull       = 95

	// RecommendThreshold слот рекомендуется, пока заполненность не превышает этот процент
	RecommendThreshold = 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, которые занимают место в слоте
// Используются для подсчёта заполненности и проверки уникальности брони на день
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses статусы, не учитываемые при подсчёте заполненности
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
