package repository

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
