package utils

import (
	"math/rand"

	"github.com/sitecrew-dev/attendance-tracker/backend/internal/domain"
)

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph",
	"Jessica", "Thomas", "Sarah", "Daniel", "Karen",
}
var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin",
}

func GenerateRandomWorkerName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

// GenerateRandomPresentDays picks a random subset of the week using a
// Fisher-Yates shuffle; the subset may be empty.
func GenerateRandomPresentDays() []domain.Weekday {
	days := make([]domain.Weekday, len(domain.Weekdays))
	copy(days, domain.Weekdays[:])

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	return days[:rand.Intn(len(days)+1)]
}
