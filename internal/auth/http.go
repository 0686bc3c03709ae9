// Copyright (c) 2026 Pulseboard. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pulseboard/pulseboard/internal/platform/middleware"
	requestutil "github.com/pulseboard/pulseboard/internal/platform/request"
	"github.com/pulseboard/pulseboard/internal/platform/respond"
	"github.com/pulseboard/pulseboard/internal/platform/validate"
)

// # HTTP Transport

// Handler exposes the authentication endpoints over HTTP.
type Handler struct {
	authService *Service
}

// NewHandler creates the HTTP transport for the authentication service.
func NewHandler(authService *Service) *Handler {
	return &Handler{authService: authService}
}

// Routes assembles the authentication router.
//
// Public:
//   - POST /register
//   - POST /login
//
// Protected (bearer token required):
//   - GET /me
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/me", handler.currentUser)
	})

	return router
}

// registerRequest is the payload for POST /register.
type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

/*
register handles POST /register.

Description: Validates the enrollment payload, delegates to the service, and
on success responds with the freshly issued session token only — the client
follows up with GET /me for profile data.
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var body registerRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, body.Username).
		MinLen(FieldUsername, body.Username, MinUsernameLength).
		Required(FieldEmail, body.Email).
		Email(FieldEmail, body.Email).
		Required(FieldPassword, body.Password).
		MinLen(FieldPassword, body.Password, MinPasswordLength).
		Custom(FieldPassword, len(body.Password) > MaxPasswordBytes, "Maximum 72 characters").
		Required(FieldFirstName, body.FirstName).
		Required(FieldLastName, body.LastName)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:  body.Username,
		Email:     body.Email,
		Password:  body.Password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldToken: session.Token})
}

// loginRequest is the payload for POST /login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
login handles POST /login.

Description: Validates presence of both credentials, then authenticates. The
response carries the token together with the account so the dashboard can
render the signed-in state without an extra round trip.
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var body loginRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, body.Username).
		Required(FieldPassword, body.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		FieldToken: session.Token,
		FieldUser:  session.User,
	})
}

/*
currentUser handles GET /me.

Description: Resolves the bearer identity to a fresh database record. The
password hash never serializes (json:"-" on the entity).
*/
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.GetCurrentUser(request.Context(), claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
