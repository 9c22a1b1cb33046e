package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"petclinic-rest/internal/adapters/auth/jwt"
	"petclinic-rest/internal/router"
)

func TestHTTP_EndToEnd_ClinicFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	vetAdmin := reqUser{id: "staff-1", roles: "VET_ADMIN"}
	ownerAdmin := reqUser{id: "staff-2", roles: "OWNER_ADMIN"}

	// 1) Vet-admin da de alta el catálogo de tipos
	catID := createResource(t, ts.URL, "/api/pettypes", vetAdmin, map[string]any{"name": "cat"})
	_ = createResource(t, ts.URL, "/api/pettypes", vetAdmin, map[string]any{"name": "dog"})

	// 2) Owner-admin registra un owner
	ownerID := createResource(t, ts.URL, "/api/owners", ownerAdmin, map[string]any{
		"firstName": "Sherlock",
		"lastName":  "Holmes",
		"address":   "221B Baker Street",
		"city":      "London",
		"telephone": "6085551023",
	})

	// 3) Pet Leo colgado del owner
	petID := createResource(t, ts.URL, "/api/owners/"+strconv.Itoa(ownerID)+"/pets", ownerAdmin, map[string]any{
		"name":      "Leo",
		"birthDate": "2020-09-07",
		"type":      map[string]any{"id": catID, "name": "cat"},
	})

	// 4) Visita para Leo
	visitID := createResource(t, ts.URL, "/api/owners/"+strconv.Itoa(ownerID)+"/pets/"+strconv.Itoa(petID)+"/visits", ownerAdmin, map[string]any{
		"date":        "2024-03-01",
		"description": "rabies shot",
	})
	if visitID == 0 {
		t.Fatalf("expected visit id")
	}

	// 5) El owner sale hidratado con su pet y la visita
	{
		st, body := doReq(t, ts.URL, "GET", "/api/owners/"+strconv.Itoa(ownerID), ownerAdmin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get owner, got %d body=%s", st, string(body))
		}
		var owner struct {
			Pets []struct {
				Name   string `json:"name"`
				Type   struct{ Name string }
				Visits []struct {
					Description string `json:"description"`
				} `json:"visits"`
			} `json:"pets"`
		}
		if err := json.Unmarshal(body, &owner); err != nil {
			t.Fatalf("unmarshal owner: %v", err)
		}
		if len(owner.Pets) != 1 || owner.Pets[0].Name != "Leo" {
			t.Fatalf("expected pet Leo, got %+v", owner.Pets)
		}
		if len(owner.Pets[0].Visits) != 1 || owner.Pets[0].Visits[0].Description != "rabies shot" {
			t.Fatalf("expected 1 visit, got %+v", owner.Pets[0].Visits)
		}
	}

	// 6) Filtro por prefijo de apellido, case-insensitive
	{
		st, body := doReq(t, ts.URL, "GET", "/api/owners?lastName=hol", ownerAdmin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 filter, got %d", st)
		}
		var owners []json.RawMessage
		_ = json.Unmarshal(body, &owners)
		if len(owners) != 1 {
			t.Fatalf("expected 1 owner for prefix hol, got %d", len(owners))
		}
	}
	{
		// sin matches => 200 con lista vacía, no 404
		st, body := doReq(t, ts.URL, "GET", "/api/owners?lastName=Zzz", ownerAdmin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 empty filter, got %d", st)
		}
		var owners []json.RawMessage
		if err := json.Unmarshal(body, &owners); err != nil || owners == nil || len(owners) != 0 {
			t.Fatalf("expected empty array body, got %s", string(body))
		}
	}

	// 7) Update de owner => 204
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/owners/"+strconv.Itoa(ownerID), ownerAdmin, map[string]any{
			"firstName": "Sherlock",
			"lastName":  "Holmes",
			"address":   "221B Baker Street",
			"city":      "London",
			"telephone": "6085559999",
		})
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 update owner, got %d body=%s", st, string(body))
		}
	}

	// 8) Borrar el pet type "cat" cascadea el pet Leo y sus visitas
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/pettypes/"+strconv.Itoa(catID), vetAdmin, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete pettype, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/pets/"+strconv.Itoa(petID), ownerAdmin, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 pet after cascade, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/visits/"+strconv.Itoa(visitID), ownerAdmin, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 visit after cascade, got %d", st)
		}
	}
	{
		// el owner sobrevive, sin pets
		st, body := doReq(t, ts.URL, "GET", "/api/owners/"+strconv.Itoa(ownerID), ownerAdmin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 owner after cascade, got %d", st)
		}
		var owner struct {
			Pets []json.RawMessage `json:"pets"`
		}
		_ = json.Unmarshal(body, &owner)
		if len(owner.Pets) != 0 {
			t.Fatalf("expected 0 pets after cascade, got %d", len(owner.Pets))
		}
	}
}

func TestHTTP_RoleGating(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	vetAdmin := reqUser{id: "staff-1", roles: "VET_ADMIN"}
	ownerAdmin := reqUser{id: "staff-2", roles: "OWNER_ADMIN"}
	anon := reqUser{}

	// sin identidad => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/owners", anon, nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 anonymous, got %d", st)
		}
	}
	// rol equivocado => 403
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/owners", vetAdmin, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 vet-admin on owners, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/vets", ownerAdmin, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 owner-admin on vets, got %d", st)
		}
	}
	// pettypes: lectura abierta a ambos roles, mutación solo vet-admin
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/pettypes", ownerAdmin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 owner-admin reads pettypes, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/pettypes", ownerAdmin, map[string]any{"name": "cat"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 owner-admin creates pettype, got %d", st)
		}
	}
	// users: solo ADMIN
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/users", ownerAdmin, map[string]any{
			"username": "x", "password": "y", "enabled": true,
			"roles": []map[string]any{{"name": "OWNER_ADMIN"}},
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 non-admin creates user, got %d", st)
		}
	}
	{
		admin := reqUser{id: "root", roles: "ADMIN"}
		st, body := doReq(t, ts.URL, "POST", "/api/users", admin, map[string]any{
			"username": "x", "password": "y", "enabled": true,
			"roles": []map[string]any{{"name": "OWNER_ADMIN"}},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 admin creates user, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_OwnerValidation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerAdmin := reqUser{id: "staff-2", roles: "OWNER_ADMIN"}

	st, body := doReq(t, ts.URL, "POST", "/api/owners", ownerAdmin, map[string]any{
		"firstName": "Sherlock",
		"lastName":  "Holmes",
		"address":   "221B Baker Street",
		"city":      "London",
		"telephone": "not-a-phone",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 bad telephone, got %d body=%s", st, string(body))
	}

	var resp struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal validation body: %v body=%s", err, string(body))
	}
	found := false
	for _, fe := range resp.Errors {
		if fe.Field == "telephone" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected telephone field error, got %+v", resp.Errors)
	}
}

func TestHTTP_SpecialtyInUse(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	vetAdmin := reqUser{id: "staff-1", roles: "VET_ADMIN"}

	spID := createResource(t, ts.URL, "/api/specialties", vetAdmin, map[string]any{"name": "surgery"})
	vetID := createResource(t, ts.URL, "/api/vets", vetAdmin, map[string]any{
		"firstName":   "Rafael",
		"lastName":    "Ortega",
		"specialties": []map[string]any{{"name": "surgery"}},
	})

	// especialidad referenciada => 409
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/specialties/"+strconv.Itoa(spID), vetAdmin, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 specialty in use, got %d", st)
		}
	}

	// liberada la referencia, el delete pasa
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/vets/"+strconv.Itoa(vetID), vetAdmin, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete vet, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/specialties/"+strconv.Itoa(spID), vetAdmin, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete specialty, got %d", st)
		}
	}
}

func TestHTTP_JWTAuth(t *testing.T) {
	verifier := jwt.NewVerifier("test-secret")
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: verifier}))
	defer ts.Close()

	// sin token => 401
	{
		req, _ := http.NewRequest("GET", ts.URL+"/api/owners", nil)
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", res.StatusCode)
		}
	}

	// token válido con el rol correcto => 200
	token, err := verifier.Sign("staff-2", []string{"ROLE_OWNER_ADMIN"}, time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	{
		req, _ := http.NewRequest("GET", ts.URL+"/api/owners", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 with token, got %d", res.StatusCode)
		}
	}

	// los headers de debug no cuentan cuando hay verifier
	{
		req, _ := http.NewRequest("GET", ts.URL+"/api/owners", nil)
		req.Header.Set("X-Debug-User-ID", "staff-2")
		req.Header.Set("X-Debug-Roles", "OWNER_ADMIN")
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 debug headers with verifier, got %d", res.StatusCode)
		}
	}
}

type reqUser struct {
	id    string
	roles string
}

func createResource(t *testing.T, baseURL, path string, u reqUser, payload map[string]any) int {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, u, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 POST %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID int `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == 0 {
		t.Fatalf("POST %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, u reqUser, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if u.id != "" {
		req.Header.Set("X-Debug-User-ID", u.id)
		req.Header.Set("X-Debug-Roles", u.roles)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
