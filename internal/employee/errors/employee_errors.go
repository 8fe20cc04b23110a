package employeeerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmail = apperror.New(
		apperror.CodeInvalidInput,
		"Please add a valid email",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeType = apperror.New(
		apperror.CodeInvalidInput,
		"Employee type must be one of Full-time, Part-time, Contract, Intern",
		http.StatusBadRequest,
	)
	ErrInvalidJoinDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid joinDate format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrSearchQueryRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Search query is required",
		http.StatusBadRequest,
	)
)
