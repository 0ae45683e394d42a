package get_month_availability

// Request модель запроса доступности на месяц
type Request struct {
	Year  int // Год, например 2026
	Month int // Месяц, 1-12
}

// Slot один слот дня с остаточной вместимостью
type Slot struct {
	Start     string // "09:00"
	End       string // "12:00"
	Remaining int    // Сколько мест осталось в слоте
}

// Day один день месяца
// У закрытого дня слотов нет
type Day struct {
	Date  string // "2026-03-10"
	Slots []Slot
}

// Response календарь месяца: каждая дата месяца присутствует ровно один раз,
// в порядке возрастания
type Response struct {
	Year  int
	Month int
	Days  []Day
}
