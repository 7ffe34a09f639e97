package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Daskott/contactbook/server/auth"
	"github.com/Daskott/contactbook/server/auth/key"
	"github.com/Daskott/contactbook/server/models"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func logIn(rw http.ResponseWriter, r *http.Request) {
	data := loginRequest{}

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		writeResponse(rw, ResponsePayload{Message: "Malformed JSON body."}, http.StatusBadRequest)
		return
	}

	fieldErrs, err := validationErrors(validate.Struct(data), nil)
	if err != nil {
		writeError(rw, err)
		return
	}

	if len(fieldErrs) > 0 {
		writeValidationErrors(rw, fieldErrs)
		return
	}

	user, err := models.FindUserWithPassword(r.Context(), strings.ToLower(strings.TrimSpace(*data.Email)))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(rw, err)
		return
	}

	if user == nil || !auth.CheckPasswordHash(*data.Password, user.Password) {
		writeResponse(rw, ResponsePayload{Message: "The provided credentials are incorrect."}, http.StatusUnauthorized)
		return
	}

	claims := auth.NewTokenClaims(user.ID, user.AccountID, user.FirstName, user.LastName, settings.tokenTTL)
	token, err := auth.EncodeJWT(claims, authKeyPair)
	if err != nil {
		writeError(rw, err)
		return
	}

	writeJSON(rw, loginResponse{Token: token, TokenType: "Bearer", ExpiresAt: claims.ExpiresAt}, http.StatusOK)
}

func jwks(rw http.ResponseWriter, r *http.Request) {
	publicJWK, err := authKeyPair.JWK()
	if err != nil {
		writeError(rw, err)
		return
	}

	writeJSON(rw, key.ExportJWKAsJWKS(publicJWK), http.StatusOK)
}

func currentUser(rw http.ResponseWriter, r *http.Request) {
	user, err := models.FindUserBy(r.Context(), "id", claimsFromContext(r.Context()).Subject)
	if err != nil {
		writeError(rw, err)
		return
	}

	writeResponse(rw, ResponsePayload{Data: user}, http.StatusOK)
}

// ---------------------------------------------------------------------------------//
// Contacts
// --------------------------------------------------------------------------------//

func listContacts(rw http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.NewContactFilter(query.Get("search"), query.Get("trashed"), query.Get("status"))

	contacts, paging, err := models.FetchContacts(
		r.Context(),
		claimsFromContext(r.Context()).AccountID,
		filter,
		pageFromQuery(query),
	)
	if err != nil {
		writeError(rw, err)
		return
	}

	links, meta := newPageLinksAndMeta(r, paging)
	writeResponse(rw, ResponsePayload{Data: models.NewContactResources(contacts), Links: links, Meta: meta}, http.StatusOK)
}

func findContact(rw http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		writeNotFound(rw)
		return
	}

	contact, err := models.FindContact(r.Context(), claimsFromContext(r.Context()).AccountID, id, models.WITH_DELETED)
	if err != nil {
		writeError(rw, err)
		return
	}

	writeResponse(rw, ResponsePayload{Data: models.NewContactResource(contact)}, http.StatusOK)
}

func createContact(rw http.ResponseWriter, r *http.Request) {
	accountID := claimsFromContext(r.Context()).AccountID

	input, ok := decodeAndValidateContactInput(rw, r, accountID)
	if !ok {
		return
	}

	contact := models.Contact{}
	input.ApplyTo(&contact, timeNow().UTC())

	err := models.CreateContact(r.Context(), accountID, &contact)
	if err != nil {
		writeError(rw, err)
		return
	}

	writeResponse(rw, ResponsePayload{Data: models.NewContactResource(&contact)}, http.StatusCreated)
}

func updateContact(rw http.ResponseWriter, r *http.Request) {
	accountID := claimsFromContext(r.Context()).AccountID

	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		writeNotFound(rw)
		return
	}

	// Trashed contacts have to be restored before they can be updated
	contact, err := models.FindContact(r.Context(), accountID, id, models.ACTIVE_ONLY)
	if err != nil {
		writeError(rw, err)
		return
	}

	input, ok := decodeAndValidateContactInput(rw, r, accountID)
	if !ok {
		return
	}

	input.ApplyTo(contact, timeNow().UTC())

	err = contact.Save(r.Context())
	if err != nil {
		writeError(rw, err)
		return
	}

	writeResponse(rw, ResponsePayload{Data: models.NewContactResource(contact)}, http.StatusOK)
}

func deleteContact(rw http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		writeNotFound(rw)
		return
	}

	contact, err := models.FindContact(r.Context(), claimsFromContext(r.Context()).AccountID, id, models.ACTIVE_ONLY)
	if err != nil {
		writeError(rw, err)
		return
	}

	err = contact.SoftDelete(r.Context())
	if err != nil {
		writeError(rw, err)
		return
	}

	writeNoContent(rw)
}

func restoreContact(rw http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		writeNotFound(rw)
		return
	}

	contact, err := models.FindContact(r.Context(), claimsFromContext(r.Context()).AccountID, id, models.WITH_DELETED)
	if err != nil {
		writeError(rw, err)
		return
	}

	err = contact.Restore(r.Context())
	if err != nil {
		writeError(rw, err)
		return
	}

	writeNoContent(rw)
}

func dashboardStats(rw http.ResponseWriter, r *http.Request) {
	stats, err := models.CurrentContactStats(
		r.Context(),
		claimsFromContext(r.Context()).AccountID,
		timeNow(),
		settings.timeZone,
	)
	if err != nil {
		writeError(rw, err)
		return
	}

	writeJSON(rw, stats, http.StatusOK)
}

func routeNotFound(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Set("Content-Type", "application/json")
	writeNotFound(rw)
}

// decodeAndValidateContactInput writes the 400/422/500 response itself
// and returns ok=false when the body can't be used
func decodeAndValidateContactInput(rw http.ResponseWriter, r *http.Request, accountID uint) (*models.ContactInput, bool) {
	input, typeErrs, err := models.DecodeContactInput(r.Body)
	if err != nil {
		writeResponse(rw, ResponsePayload{Message: "Malformed JSON body."}, http.StatusBadRequest)
		return nil, false
	}

	fieldErrs, err := validateContactInput(r.Context(), accountID, input, typeErrs)
	if err != nil {
		writeError(rw, err)
		return nil, false
	}

	if len(fieldErrs) > 0 {
		writeValidationErrors(rw, fieldErrs)
		return nil, false
	}

	return input, true
}
