package controllers

import (
	"errors"
	"net/http"

	"tilecrm-backend/services"
	"tilecrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// respondError maps a service error onto the response: validation failures
// are 400, missing records 404 and anything else a logged 500.
func respondError(c *gin.Context, err error, notFoundMsg, failMsg string) {
	var verrs utils.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		utils.RespondWithValidation(c, verrs)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, notFoundMsg)
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg(failMsg)
		utils.RespondWithError(c, http.StatusInternalServerError, failMsg)
	}
}

func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
