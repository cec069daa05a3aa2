package apierr

import "net/http"

func EntityNotFound(path string) *Error {
	return New(CodeEntityNotFound, http.StatusNotFound, "No entity at path "+path)
}

func InvalidQuery(param string) *Error {
	return New(CodeInvalidQuery, http.StatusBadRequest, "Invalid query parameter '"+param+"'")
}

func InternalError(cause error) *Error {
	return Wrap(CodeInternalError, http.StatusInternalServerError, "Internal server error", cause)
}
