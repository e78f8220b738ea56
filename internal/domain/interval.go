package domain

import (
	"fmt"

	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// Interval полуоткрытый временной интервал [Start, End) в пределах одного дня
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate проверяет формат границ и что Start строго раньше End
func (i Interval) Validate() error {
	if err := i.Start.Validate(); err != nil {
		return err
	}
	if err := i.End.Validate(); err != nil {
		return err
	}
	if !i.Start.IsBefore(i.End) {
		return fmt.Errorf("interval start %s must be before end %s", i.Start, i.End)
	}
	return nil
}

// Overlaps проверяет реальное пересечение двух полуоткрытых интервалов
// Граничащие интервалы (конец одного равен началу другого) не пересекаются:
// бронирование до 10:00 и бронирование с 10:00 совместимы.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// Contains проверяет, что other целиком лежит внутри i
// Совпадающие границы допустимы: окно 09:00-12:00 содержит заявку 09:00-09:30.
func (i Interval) Contains(other Interval) bool {
	return !other.Start.IsBefore(i.Start) && !i.End.IsBefore(other.End)
}

// ContainsInstant проверяет, что момент t покрыт интервалом [Start, End)
func (i Interval) ContainsInstant(t types.TimeString) bool {
	return !t.IsBefore(i.Start) && t.IsBefore(i.End)
}

// DurationMinutes возвращает длину интервала в минутах
func (i Interval) DurationMinutes() int {
	return i.End.Minutes() - i.Start.Minutes()
}

func (i Interval) String() string {
	return fmt.Sprintf("%s-%s", i.Start, i.End)
}
