package utils

import (
	"log"
	"os"
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

func FileExist(filePath string) bool {
	var err error

	if _, err = os.Stat(filePath); os.IsNotExist(err) {
		return false
	}

	if err != nil {
		log.Panic(err)
	}

	return true
}

func CreateDirIfNotExist(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return err
		}
	}

	return nil
}

// Digits returns 'value' with every non-digit character removed
func Digits(value string) string {
	return nonDigits.ReplaceAllString(value, "")
}

// Humanize turns a snake_case key into space separated words e.g. "first_name" -> "first name"
func Humanize(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
