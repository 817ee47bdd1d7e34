package care

import "time"

// NextDueDate calcula el próximo vencimiento a partir del día de completado
// (no del vencimiento anterior): completar tarde no acumula atraso.
func NextDueDate(t Task, completedAt time.Time) time.Time {
	y, m, d := completedAt.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	switch t.IntervalType {
	case IntervalDaily:
		return today.AddDate(0, 0, 1)
	case IntervalWeekly:
		return today.AddDate(0, 0, 7)
	case IntervalMonthly:
		return addMonthClamped(y, m, d)
	case IntervalCustomDays:
		days := 1
		if t.IntervalDays != nil && *t.IntervalDays > 0 {
			days = *t.IntervalDays
		}
		return today.AddDate(0, 0, days)
	}
	// tipo desconocido: no se mueve
	return t.NextDueDate
}

// addMonthClamped: mismo día del mes siguiente, recortado al último día válido
// (31 ene -> 28/29 feb). time.AddDate normalizaría a marzo.
func addMonthClamped(y int, m time.Month, d int) time.Time {
	ny, nm := y, m+1
	if nm > time.December {
		nm = time.January
		ny++
	}
	if last := daysIn(ny, nm); d > last {
		d = last
	}
	return time.Date(ny, nm, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(y int, m time.Month) int {
	// día 0 del mes siguiente = último día de m
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
