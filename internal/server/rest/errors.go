package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophsocial/internal/common"
)

type errorMapping struct {
	target error
	status int
	field  string
	msg    string
}

// errorMappings translate service sentinels to the field-keyed bodies API
// clients already understand.
var errorMappings = []errorMapping{
	{common.ErrEmailExists, http.StatusBadRequest, "email", "Email already exists"},
	{common.ErrAlreadyFollowed, http.StatusBadRequest, "alreadyfollowed", "User already followed this user"},
	{common.ErrNotFollowed, http.StatusBadRequest, "notfollowed", "You have not yet followed this user"},
	{common.ErrSelfFollow, http.StatusBadRequest, "cannotfollowself", "You cannot follow yourself"},
	{common.ErrorNotFound, http.StatusNotFound, "usernotfound", "No user found"},
}

func (s *RESTServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			writeJSON(w, m.status, map[string]string{m.field: m.msg})
			return
		}
	}

	s.logger.Error(r.Context(), "request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
