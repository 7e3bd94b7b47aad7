package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storage-rental-api/internal/adapters/identity"
	"storage-rental-api/internal/models"
	"storage-rental-api/internal/stores"
	"storage-rental-api/pkg/lambda"
)

// UserHandler handles user-related requests. When accounts is non-nil,
// user creation first provisions an account in the external identity
// service and skips the local write if provisioning fails.
type UserHandler struct {
	records  stores.RecordStore
	accounts identity.AccountService
	logger   *logrus.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(records stores.RecordStore, accounts identity.AccountService, logger *logrus.Logger) *UserHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &UserHandler{
		records:  records,
		accounts: accounts,
		logger:   logger,
	}
}

// HandleList returns every user record (GET /users)
func (h *UserHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	users, err := h.records.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return lambda.Respond(http.StatusOK, users), nil
}

// HandleGet returns one user by id (GET /users/{userid})
func (h *UserHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	userID := req.PathParams["userid"]
	if userID == "" {
		return lambda.Respond(http.StatusBadRequest, map[string]string{
			"error": "Missing path parameter: userid",
		}), nil
	}

	user, err := h.records.Get(ctx, userID)
	if err != nil {
		if stores.IsNotFound(err) {
			return lambda.Respond(http.StatusNotFound, map[string]string{
				"message": "User not found",
			}), nil
		}
		return nil, err
	}
	return lambda.Respond(http.StatusOK, user), nil
}

// HandleCreate creates a user (POST /users). Beyond email, userid and
// password, the payload is schemaless: all caller-supplied attributes
// are stored as sent, with the server stamping userid and timestamp.
func (h *UserHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	payload, err := models.ParseUserPayload(req.Body)
	if err != nil {
		return lambda.Respond(http.StatusBadRequest, map[string]string{"error": err.Error()}), nil
	}
	if err := payload.ValidateEmail(); err != nil {
		return lambda.Respond(http.StatusBadRequest, map[string]string{"error": err.Error()}), nil
	}

	email, _ := payload.Email()
	userID, ok := payload.UserID()
	if !ok {
		userID = uuid.New().String()
	}

	if h.accounts != nil {
		if resp, err := h.provisionAccount(ctx, email, payload.Password()); resp != nil || err != nil {
			return resp, err
		}
	}

	rec := payload.Stamp(userID, time.Now().Format(time.RFC3339Nano))
	if err := h.records.Put(ctx, userID, rec); err != nil {
		return nil, err
	}

	h.logger.WithFields(logrus.Fields{
		"userid": userID,
		"email":  email,
	}).Info("User created")

	return lambda.Respond(http.StatusCreated, rec), nil
}

// provisionAccount mirrors the user into the identity service before the
// local write. A non-nil response means provisioning failed with a
// client-attributable cause.
func (h *UserHandler) provisionAccount(ctx context.Context, email, tempPassword string) (*lambda.Response, error) {
	_, err := h.accounts.CreateAccount(ctx, email, map[string]string{
		"email":          email,
		"email_verified": "false",
	}, tempPassword)
	if err == nil {
		return nil, nil
	}

	switch {
	case errors.Is(err, identity.ErrAccountExists):
		return lambda.Respond(http.StatusBadRequest, map[string]string{
			"message": "User already exists.",
		}), nil
	case errors.Is(err, identity.ErrInvalidParameter):
		return lambda.Respond(http.StatusBadRequest, map[string]string{
			"message": "Invalid parameters: " + err.Error(),
		}), nil
	default:
		return nil, fmt.Errorf("error creating identity account: %w", err)
	}
}

// HandleUpdate fully replaces a user record (PUT /users/{userid}).
// Fields absent from the body do not survive; userid is forced to the
// path id and timestamp is refreshed.
func (h *UserHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	userID := req.PathParams["userid"]
	if userID == "" {
		return lambda.Respond(http.StatusBadRequest, map[string]string{
			"error": "Missing path parameter: userid",
		}), nil
	}

	payload, err := models.ParseUserPayload(req.Body)
	if err != nil {
		return lambda.Respond(http.StatusBadRequest, map[string]string{"error": err.Error()}), nil
	}

	rec := payload.Stamp(userID, time.Now().Format(time.RFC3339Nano))
	if err := h.records.Put(ctx, userID, rec); err != nil {
		return nil, err
	}

	h.logger.WithField("userid", userID).Info("User updated")
	return lambda.Respond(http.StatusOK, rec), nil
}

// HandleDelete removes a user by id (DELETE /users/{userid})
func (h *UserHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	userID := req.PathParams["userid"]
	if userID == "" {
		return lambda.Respond(http.StatusBadRequest, map[string]string{
			"error": "Missing path parameter: userid",
		}), nil
	}

	existed, err := h.records.Delete(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !existed {
		return lambda.Respond(http.StatusNotFound, map[string]string{
			"message": "User not found",
		}), nil
	}

	h.logger.WithField("userid", userID).Info("User deleted")
	return lambda.Respond(http.StatusNoContent, nil), nil
}
