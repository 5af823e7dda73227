package domain

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the days in report order, Monday first.
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func ParseWeekday(s string) (Weekday, bool) {
	for _, day := range Weekdays {
		if string(day) == s {
			return day, true
		}
	}
	return "", false
}

type AttendanceRecord struct {
	WorkerID   string `json:"workerId"`
	WorkerName string `json:"workerName"` // snapshot of the worker's name at creation, never resynchronized
	Monday     bool   `json:"monday"`
	Tuesday    bool   `json:"tuesday"`
	Wednesday  bool   `json:"wednesday"`
	Thursday   bool   `json:"thursday"`
	Friday     bool   `json:"friday"`
	Saturday   bool   `json:"saturday"`
	Sunday     bool   `json:"sunday"`
}

func (r *AttendanceRecord) day(day Weekday) *bool {
	switch day {
	case Monday:
		return &r.Monday
	case Tuesday:
		return &r.Tuesday
	case Wednesday:
		return &r.Wednesday
	case Thursday:
		return &r.Thursday
	case Friday:
		return &r.Friday
	case Saturday:
		return &r.Saturday
	case Sunday:
		return &r.Sunday
	}
	return nil
}

func (r *AttendanceRecord) Present(day Weekday) bool {
	if p := r.day(day); p != nil {
		return *p
	}
	return false
}

func (r *AttendanceRecord) Toggle(day Weekday) {
	if p := r.day(day); p != nil {
		*p = !*p
	}
}

// PresentDays counts the days marked present across the week.
func (r *AttendanceRecord) PresentDays() int {
	count := 0
	for _, day := range Weekdays {
		if r.Present(day) {
			count++
		}
	}
	return count
}
