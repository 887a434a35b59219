package calendar

import "time"

// Французские подписи дней и месяцев для календарных представлений портала

// WeekdayName возвращает название дня недели по-французски
func WeekdayName(weekday time.Weekday) string {
	names := map[time.Weekday]string{
		time.Monday:    "Lundi",
		time.Tuesday:   "Mardi",
		time.Wednesday: "Mercredi",
		time.Thursday:  "Jeudi",
		time.Friday:    "Vendredi",
		time.Saturday:  "Samedi",
		time.Sunday:    "Dimanche",
	}
	return names[weekday]
}

// WeekdayShort возвращает краткое название дня недели по-французски
func WeekdayShort(weekday time.Weekday) string {
	names := map[time.Weekday]string{
		time.Monday:    "Lun",
		time.Tuesday:   "Mar",
		time.Wednesday: "Mer",
		time.Thursday:  "Jeu",
		time.Friday:    "Ven",
		time.Saturday:  "Sam",
		time.Sunday:    "Dim",
	}
	return names[weekday]
}

// MonthName возвращает название месяца по-французски
func MonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Janvier",
		time.February:  "Février",
		time.March:     "Mars",
		time.April:     "Avril",
		time.May:       "Mai",
		time.June:      "Juin",
		time.July:      "Juillet",
		time.August:    "Août",
		time.September: "Septembre",
		time.October:   "Octobre",
		time.November:  "Novembre",
		time.December:  "Décembre",
	}
	return names[month]
}
