package domain

import (
	"fmt"
	"time"
)

// WorkingHours рабочие часы бизнеса на конкретную дату
// Задаются владельцем целиком (replace-on-write), окон может быть несколько
// (например, утро и вечер с перерывом на обед).
type WorkingHours struct {
	BusinessID int64
	Date       time.Time
	Windows    []Interval

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет окна: каждое корректно (start < end),
// окна попарно не пересекаются. Порядок окон на входе не важен.
func (w *WorkingHours) Validate() error {
	for _, window := range w.Windows {
		if err := window.Validate(); err != nil {
			return err
		}
	}
	for i := 0; i < len(w.Windows); i++ {
		for j := i + 1; j < len(w.Windows); j++ {
			if w.Windows[i].Overlaps(w.Windows[j]) {
				return fmt.Errorf("working hour windows %s and %s overlap",
					w.Windows[i], w.Windows[j])
			}
		}
	}
	return nil
}
