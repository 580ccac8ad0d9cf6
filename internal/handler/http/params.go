package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/pickprod/pickprod-backend-go/internal/pkg/validator"
)

// periodFromQuery reads the month/year pair every period-scoped endpoint
// takes from the query string.
func periodFromQuery(r *http.Request) (month, year int, err error) {
	month, err = strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		return 0, 0, fmt.Errorf("query parameter 'month' is required and must be a number")
	}
	year, err = strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, fmt.Errorf("query parameter 'year' is required and must be a number")
	}
	if !validator.IsValidPeriod(month, year) {
		return 0, 0, fmt.Errorf("month must be 1-12 and year in a plausible range")
	}
	return month, year, nil
}

func intQuery(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
