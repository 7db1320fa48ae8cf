// Package period переводит именованные периоды (неделя, месяц, квартал, год)
// в окна дат относительно текущего момента и считает процентные изменения
// между соседними окнами.
package period

import (
	"math"
	"strconv"
	"time"
)

// Name - именованный относительный период.
type Name string

// Поддерживаемые периоды.
const (
	Week    Name = "week"
	Month   Name = "month"
	Quarter Name = "quarter"
	Year    Name = "year"
)

// Names перечисляет все периоды в порядке возрастания длины.
var Names = []Name{Week, Month, Quarter, Year}

// Parse возвращает период по строке из запроса. Неизвестное или пустое
// значение трактуется как месяц.
func Parse(s string) Name {
	switch Name(s) {
	case Week, Month, Quarter, Year:
		return Name(s)
	default:
		return Month
	}
}

// Window - интервал [Start, End] с включёнными границами.
type Window struct {
	Start time.Time
	End   time.Time
}

// Resolve строит окно периода, заканчивающееся в now.
//
// Начало окна: 7 дней назад (week), первое число текущего месяца (month),
// первое число месяца три месяца назад (quarter), 1 января (year).
func Resolve(p Name, now time.Time) Window {
	y, m, _ := now.Date()
	loc := now.Location()

	var start time.Time
	switch p {
	case Week:
		start = now.AddDate(0, 0, -7)
	case Quarter:
		start = time.Date(y, m-3, 1, 0, 0, 0, 0, loc)
	case Year:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	}
	return Window{Start: start, End: now}
}

// Previous возвращает окно той же длины, заканчивающееся непосредственно
// перед началом текущего.
func (w Window) Previous() Window {
	length := w.End.Sub(w.Start)
	end := w.Start.Add(-time.Microsecond)
	return Window{Start: w.Start.Add(-length), End: end}
}

// Contains сообщает, попадает ли t в окно.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// YearStart возвращает 1 января года, в котором находится now.
func YearStart(now time.Time) time.Time {
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
}

// DayBounds возвращает начало текущих и следующих суток.
func DayBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return today, today.AddDate(0, 0, 1)
}

// Weeks возвращает n недельных окон, самое раннее первым. Окно i
// начинается за 7*i дней до now и длится 6 дней.
func Weeks(now time.Time, n int) []Window {
	weeks := make([]Window, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := now.AddDate(0, 0, -7*i)
		weeks = append(weeks, Window{Start: start, End: start.AddDate(0, 0, 6)})
	}
	return weeks
}

// Change считает изменение current относительно previous в процентах
// и форматирует его с одним знаком после запятой и явным плюсом для
// неотрицательных значений. При нулевом previous возвращает "0.0%".
func Change(current, previous float64) string {
	if previous == 0 {
		return "0.0%"
	}
	change := (current - previous) / previous * 100
	formatted := strconv.FormatFloat(change, 'f', 1, 64)
	if change >= 0 {
		return "+" + formatted + "%"
	}
	return formatted + "%"
}

// Round2 округляет сумму до двух знаков после запятой.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
