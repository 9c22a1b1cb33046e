package api

import (
	"regexp"
	"strings"
	"time"
)

// Telefono: exactamente 10 dígitos.
var telephoneRe = regexp.MustCompile(`^[0-9]{10}$`)

func validateOwnerFields(req ownerFieldsRequest) []fieldError {
	var errs []fieldError
	errs = appendRequired(errs, "firstName", req.FirstName)
	errs = appendRequired(errs, "lastName", req.LastName)
	errs = appendRequired(errs, "address", req.Address)
	errs = appendRequired(errs, "city", req.City)
	if !telephoneRe.MatchString(req.Telephone) {
		errs = append(errs, fieldError{Field: "telephone", Message: "must be exactly 10 digits"})
	}
	return errs
}

// validatePetFields valida los constraints de boundary; la existencia del
// type la resuelve el servicio contra el store.
func validatePetFields(req petFieldsRequest, now time.Time) []fieldError {
	var errs []fieldError
	errs = appendRequired(errs, "name", req.Name)
	if req.Type.ID <= 0 {
		errs = append(errs, fieldError{Field: "type", Message: "must reference an existing pet type"})
	}
	if strings.TrimSpace(req.BirthDate) != "" {
		bd, err := parseDate(req.BirthDate)
		if err != nil {
			errs = append(errs, fieldError{Field: "birthDate", Message: "must be YYYY-MM-DD"})
		} else if bd.After(now) {
			errs = append(errs, fieldError{Field: "birthDate", Message: "must not be in the future"})
		}
	}
	return errs
}

func validateVisitFields(req visitFieldsRequest) []fieldError {
	var errs []fieldError
	errs = appendRequired(errs, "description", req.Description)
	if strings.TrimSpace(req.Date) != "" {
		if _, err := parseDate(req.Date); err != nil {
			errs = append(errs, fieldError{Field: "date", Message: "must be YYYY-MM-DD"})
		}
	}
	return errs
}

func validateNamed(name string) []fieldError {
	return appendRequired(nil, "name", name)
}

func validateVetFields(req vetFieldsRequest) []fieldError {
	var errs []fieldError
	errs = appendRequired(errs, "firstName", req.FirstName)
	errs = appendRequired(errs, "lastName", req.LastName)
	for _, sp := range req.Specialties {
		if strings.TrimSpace(sp.Name) == "" {
			errs = append(errs, fieldError{Field: "specialties", Message: "specialty name must not be empty"})
			break
		}
	}
	return errs
}

func validateUser(req userRequest) []fieldError {
	var errs []fieldError
	errs = appendRequired(errs, "username", req.Username)
	errs = appendRequired(errs, "password", req.Password)
	if len(req.Roles) == 0 {
		errs = append(errs, fieldError{Field: "roles", Message: "user must have at least one role"})
	}
	for _, r := range req.Roles {
		if strings.TrimSpace(r.Name) == "" {
			errs = append(errs, fieldError{Field: "roles", Message: "role name must not be empty"})
			break
		}
	}
	return errs
}

func appendRequired(errs []fieldError, field, value string) []fieldError {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, fieldError{Field: field, Message: "must not be empty"})
	}
	return errs
}
