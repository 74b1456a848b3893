package view

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/UnibsMatt/roomates/internal/api"
)

const (
	MinAge = 18
	MaxAge = 100
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s+\-()]{6,20}$`)
)

// ApplicationForm is the raw candidacy form as posted by the browser.
type ApplicationForm struct {
	FullName string
	Email    string
	Phone    string
	Course   string
	Sex      string
	Age      string
	Message  string
}

// Validate runs the field-level pre-checks. A non-empty result blocks
// submission before any network call; the backend remains the authority.
func (f ApplicationForm) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.FullName) == "" {
		errs["full_name"] = "Il nome completo è obbligatorio."
	}
	switch email := strings.TrimSpace(f.Email); {
	case email == "":
		errs["email"] = "L'email è obbligatoria."
	case !emailPattern.MatchString(email):
		errs["email"] = "Inserisci un indirizzo email valido."
	}
	if phone := strings.TrimSpace(f.Phone); phone != "" && !phonePattern.MatchString(phone) {
		errs["phone"] = "Inserisci un numero di telefono valido."
	}
	if strings.TrimSpace(f.Course) == "" {
		errs["course"] = "Il corso/programma è obbligatorio."
	}
	switch f.Sex {
	case "M", "F", "O":
	default:
		errs["sex"] = "Il sesso è obbligatorio."
	}
	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil {
		errs["age"] = "L'età è obbligatoria."
	} else if age < MinAge || age > MaxAge {
		errs["age"] = "L'età deve essere compresa tra 18 e 100 anni."
	}
	return errs
}

// Payload builds the wire payload from a validated form: strings trimmed,
// blank optionals left out entirely.
func (f ApplicationForm) Payload() api.ApplicationPayload {
	age, _ := strconv.Atoi(strings.TrimSpace(f.Age))
	return api.ApplicationPayload{
		FullName: strings.TrimSpace(f.FullName),
		Email:    strings.TrimSpace(f.Email),
		Phone:    strings.TrimSpace(f.Phone),
		Course:   strings.TrimSpace(f.Course),
		Sex:      f.Sex,
		Age:      age,
		Message:  strings.TrimSpace(f.Message),
	}
}
