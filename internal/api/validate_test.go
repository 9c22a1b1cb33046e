package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fields(errs []fieldError) []string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fe.Field)
	}
	return out
}

func TestValidateOwnerFields(t *testing.T) {
	ok := ownerFieldsRequest{
		FirstName: "Sherlock",
		LastName:  "Holmes",
		Address:   "221B Baker Street",
		City:      "London",
		Telephone: "6085551023",
	}
	require.Empty(t, validateOwnerFields(ok))

	bad := ok
	bad.FirstName = "  "
	bad.Telephone = "555-1023"
	require.ElementsMatch(t, []string{"firstName", "telephone"}, fields(validateOwnerFields(bad)))

	tooLong := ok
	tooLong.Telephone = "60855510234"
	require.Equal(t, []string{"telephone"}, fields(validateOwnerFields(tooLong)))
}

func TestValidatePetFields(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	ok := petFieldsRequest{Name: "Leo", BirthDate: "2020-09-07", Type: petTypeRequest{ID: 1}}
	require.Empty(t, validatePetFields(ok, now))

	noType := petFieldsRequest{Name: "Leo"}
	require.Equal(t, []string{"type"}, fields(validatePetFields(noType, now)))

	future := ok
	future.BirthDate = "2030-01-01"
	require.Equal(t, []string{"birthDate"}, fields(validatePetFields(future, now)))

	garbled := ok
	garbled.BirthDate = "07/09/2020"
	require.Equal(t, []string{"birthDate"}, fields(validatePetFields(garbled, now)))

	// birthDate es opcional
	noDate := petFieldsRequest{Name: "Leo", Type: petTypeRequest{ID: 1}}
	require.Empty(t, validatePetFields(noDate, now))
}

func TestValidateVisitFields(t *testing.T) {
	require.Empty(t, validateVisitFields(visitFieldsRequest{Description: "checkup"}))
	require.Equal(t, []string{"description"}, fields(validateVisitFields(visitFieldsRequest{})))
	require.Equal(t, []string{"date"}, fields(validateVisitFields(visitFieldsRequest{Description: "x", Date: "bad"})))
}

func TestValidateUser(t *testing.T) {
	ok := userRequest{Username: "susan", Password: "s3cret", Roles: []roleRequest{{Name: "OWNER_ADMIN"}}}
	require.Empty(t, validateUser(ok))

	noRoles := userRequest{Username: "susan", Password: "s3cret"}
	require.Equal(t, []string{"roles"}, fields(validateUser(noRoles)))

	blankRole := userRequest{Username: "susan", Password: "s3cret", Roles: []roleRequest{{Name: " "}}}
	require.Equal(t, []string{"roles"}, fields(validateUser(blankRole)))
}
