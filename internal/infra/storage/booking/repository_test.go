package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateArg(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	assert.NoError(t, err)

	// Усеченный день форматируется в тот же календарный день независимо
	// от зоны - timestamp-параметр при касте к DATE мог бы сместить день
	assert.Equal(t, "2026-09-01", dateArg(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-09-01", dateArg(time.Date(2026, 9, 1, 0, 0, 0, 0, moscow)))
	assert.Equal(t, "2026-09-01", dateArg(time.Date(2026, 9, 1, 14, 23, 0, 0, time.UTC)))
}
