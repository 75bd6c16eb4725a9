package api

import (
	"net/http"

	"github.com/jcortes-dev/portfolio-backend/database"
	"github.com/jcortes-dev/portfolio-backend/errs"
	"github.com/jcortes-dev/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	issuer    tokenIssuer
}

func newAuthHandler(userRepo *database.UserRepo, issuer tokenIssuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		issuer:    issuer,
	}
}

// login performs the password-grant exchange. Credentials arrive
// form-encoded (username carries the email), not as JSON.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed login form"))
			return
		}

		email := r.PostFormValue("username")
		password := r.PostFormValue("password")
		if email == "" || password == "" {
			h.responder.WriteError(w, errs.NewBadCredentialsError())
			return
		}

		user, err := h.userRepo.FindByEmail(email)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadCredentialsError())
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
			h.responder.WriteError(w, errs.NewBadCredentialsError())
			return
		}

		if !user.IsActive {
			h.responder.WriteError(w, errs.NewInactiveUserError())
			return
		}

		token, err := h.issuer.issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not issue access token"))
			return
		}

		h.responder.WriteJSON(w, Token{AccessToken: token, TokenType: "bearer"})
	}
}

// me returns the authenticated user's profile.
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// register bootstraps the first admin account. Once any user exists,
// registration is closed.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := h.userRepo.Count()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count users", "users", err))
			return
		}
		if count > 0 {
			h.responder.WriteError(w, errs.NewForbiddenError("registration is closed, contact an admin"))
			return
		}

		var payload UserCreate
		if apiErr := decodeStrict(r, &payload); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if payload.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if payload.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not hash password"))
			return
		}

		user := models.User{
			Email:          payload.Email,
			HashedPassword: string(hashed),
			FullName:       payload.FullName,
			IsActive:       true,
			IsAdmin:        true,
		}

		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		h.logger.Info().Str("email", user.Email).Msg("First admin registered")
		h.responder.WriteJSON(w, user)
	}
}
