// Copyright (c) 2026 Pulseboard. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts common body decoding patterns and claim extraction, ensuring
consistent error handling and type safety across handlers.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/pulseboard/pulseboard/internal/platform/apperr"
	"github.com/pulseboard/pulseboard/internal/platform/ctxutil"
	"github.com/pulseboard/pulseboard/internal/platform/sec"
	"github.com/pulseboard/pulseboard/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Claims extracts the authenticated claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the claims.

Returns:
  - *sec.AuthClaims: The authenticated identity claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}
