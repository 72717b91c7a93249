package domain

// CrowdTier уровень загруженности слота
type CrowdTier string

const (
	TierSafe       CrowdTier = "SAFE"
	TierAlmostFull CrowdTier = "ALMOST_FULL"
	TierCongested  CrowdTier = "CONGESTED"
	TierFull       CrowdTier = "FULL"
)

// CrowdLevel классификация заполненности слота
// Severity - порядковая серьезность (0..3), растет вместе с уровнем
type CrowdLevel struct {
	Tier     CrowdTier
	Severity int
	Advisory string
}

const (
	advisorySafe       = "свободно, отличное время для тренировки"
	advisoryAlmostFull = "зал заполняется, возможно стоит выбрать другое время"
	advisoryCongested  = "зал почти заполнен, ожидайте очередь на тренажёры"
	advisoryFull       = "зал переполнен, настоятельно рекомендуем выбрать другой слот"
)

// OccupancyPercentage returns current/max as a percentage; max <= 0 yields 0
func OccupancyPercentage(current, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(current) / float64(max) * 100
}

// Classify maps slot occupancy to a crowd tier
// Монотонна по current при фиксированном max; переполнение (current > max)
// остается FULL - флаг переполнения выставляет BookingLedger, не классификатор
func Classify(current, max int) CrowdLevel {
	pct := OccupancyPercentage(current, max)

	switch {
	case pct >= ThresholdFull:
		return CrowdLevel{Tier: TierFull, Severity: 3, Advisory: advisoryFull}
	case pct >= ThresholdCongested:
		return CrowdLevel{Tier: TierCongested, Severity: 2, Advisory: advisoryCongested}
	case pct >= ThresholdAlmostFull:
		return CrowdLevel{Tier: TierAlmostFull, Severity: 1, Advisory: advisoryAlmostFull}
	default:
		return CrowdLevel{Tier: TierSafe, Severity: 0, Advisory: advisorySafe}
	}
}

// IsRecommended сообщает, стоит ли предлагать слот участнику при бронировании
func IsRecommended(current, max int) bool {
	return OccupancyPercentage(current, max) <= RecommendThreshold
}
