package colors

import (
	"net/http"

	"github.com/fatih/color"
)

var (
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
)

// HTTPStatus colors 'code' by class: 2xx/3xx green, 4xx yellow, 5xx red
func HTTPStatus(code int) string {
	switch {
	case code >= http.StatusInternalServerError:
		return Red(code)
	case code >= http.StatusBadRequest:
		return Yellow(code)
	default:
		return Green(code)
	}
}
