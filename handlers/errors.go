package handlers

import (
	"errors"
	"net/http"

	"meetblock/services/timeblock"
	"meetblock/utils"

	"github.com/gin-gonic/gin"
)

// statusByCode maps service error codes to HTTP statuses.
var statusByCode = map[string]int{
	timeblock.CodeValidation:      http.StatusBadRequest,
	timeblock.CodeForbidden:       http.StatusForbidden,
	timeblock.CodeOutOfWindow:     http.StatusForbidden,
	timeblock.CodeNotFound:        http.StatusNotFound,
	timeblock.CodeConflict:        http.StatusConflict,
	timeblock.CodeExpired:         http.StatusConflict,
	timeblock.CodeNotYet:          http.StatusConflict,
	timeblock.CodeAlreadyTerminal: http.StatusConflict,
}

// respondError translates a service error into a JSON error response.
func respondError(c *gin.Context, err error) {
	var svcErr *timeblock.Error
	if errors.As(err, &svcErr) {
		status, ok := statusByCode[svcErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		utils.JSONError(c, status, svcErr.Message, svcErr.Code)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
}
