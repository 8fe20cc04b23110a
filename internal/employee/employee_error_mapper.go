package employee

import (
	"errors"

	employeeerrors "go-ems/internal/employee/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return employeeerrors.ErrEmployeeNotFound
	}

	// Unique-index violation: a concurrent create with the same email
	// won the race, surface it the same way as the pre-check.
	if mongo.IsDuplicateKeyError(err) {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}
