// Package services holds the business rules between the HTTP controllers
// and the repository. Services return apperr values for every business
// failure; controllers only bind, call and respond.
package services

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[a-zA-Z]{2,}$`)

func isEmail(s string) bool { return emailPattern.MatchString(s) }

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func isNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }

func isDuplicate(err error) bool { return errors.Is(err, gorm.ErrDuplicatedKey) }
