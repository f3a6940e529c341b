package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/simula-invest-be/internal/apperror"
	"github.com/hongminglow/simula-invest-be/internal/auth"
	"github.com/hongminglow/simula-invest-be/internal/http/respond"
	"github.com/hongminglow/simula-invest-be/internal/models"
	"github.com/hongminglow/simula-invest-be/internal/models/dto"
	"github.com/hongminglow/simula-invest-be/internal/storage"
	"github.com/hongminglow/simula-invest-be/internal/validation"
)

const (
	msgSimulationIDRequired = "Simulation ID is required"
	msgSimulationNotFound   = "Simulation not found or not owned by user"
)

// SimulationHandler serves the owner-scoped simulation endpoints.
type SimulationHandler struct {
	store     storage.SimulationStore
	validator *validation.Validator
	logger    logrus.FieldLogger
}

// NewSimulationHandler constructs the handler.
func NewSimulationHandler(store storage.SimulationStore, v *validation.Validator, logger logrus.FieldLogger) *SimulationHandler {
	return &SimulationHandler{store: store, validator: v, logger: logger}
}

// Register expects r to already sit behind the auth gate.
func (h *SimulationHandler) Register(r chi.Router) {
	r.Post("/log-Simulation", h.handleCreate)
	r.Get("/get-Simulations", h.handleList)
	r.Delete("/delete-Simulation", h.handleDelete)
	r.Patch("/patch-simulation", h.handlePatch)
}

func (h *SimulationHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	var req dto.CreateSimulationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	req.Trim()
	if err := h.checkSimulation(req, "Error creating simulation"); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	created, err := h.store.CreateSimulation(r.Context(), req.Simulation(userID))
	if err != nil {
		respond.Error(w, r, h.logger, apperror.NewInternal("Error creating simulation", err))
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *SimulationHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	sims, err := h.store.ListSimulations(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, h.logger, apperror.NewInternal("Error fetching simulations", err))
		return
	}
	if sims == nil {
		sims = []models.Simulation{}
	}
	respond.JSON(w, http.StatusOK, sims)
}

func (h *SimulationHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	var req dto.DeleteSimulationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	if err := h.checkSimulationID(req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	err = h.store.DeleteSimulation(r.Context(), userID, *req.SimulationID)
	switch {
	case err == nil:
		respond.Message(w, http.StatusOK, "Simulation deleted successfully")
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, r, h.logger, apperror.NewNotFound(msgSimulationNotFound, err))
	default:
		respond.Error(w, r, h.logger, apperror.NewInternal("Error deleting simulation", err))
	}
}

func (h *SimulationHandler) handlePatch(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	var req dto.PatchSimulationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	if err := h.checkSimulationID(req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	current, err := h.store.FindSimulation(r.Context(), userID, *req.SimulationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, r, h.logger, apperror.NewNotFound(msgSimulationNotFound, err))
			return
		}
		respond.Error(w, r, h.logger, apperror.NewInternal("Error updating simulation", err))
		return
	}

	merged := req.Apply(current)
	if err := h.checkSimulation(merged, "Error updating simulation"); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	next := merged.Simulation(userID)
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt

	updated, err := h.store.UpdateSimulation(r.Context(), next)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, r, h.logger, apperror.NewNotFound(msgSimulationNotFound, err))
			return
		}
		respond.Error(w, r, h.logger, apperror.NewInternal("Error updating simulation", err))
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// checkSimulation maps failed rules to a single client message. Absent
// required fields win over the stock price rule, which wins over the rest.
func (h *SimulationHandler) checkSimulation(req dto.CreateSimulationRequest, faultMsg string) error {
	res, err := h.validator.Check(req)
	if err != nil {
		return apperror.NewInternal(faultMsg, err)
	}
	switch {
	case res.Valid():
		return nil
	case res.Missing():
		return apperror.NewBadRequest("Missing required fields")
	case res.HasField("valor", "required_if"):
		return apperror.NewBadRequest("Value is required for stock simulations")
	case res.HasField("tipo", "oneof"):
		return apperror.NewBadRequest("Invalid simulation type")
	default:
		return apperror.NewBadRequest("Invalid simulation fields")
	}
}

// checkSimulationID rejects an absent or non-positive simulationId.
func (h *SimulationHandler) checkSimulationID(req any) error {
	res, err := h.validator.Check(req)
	if err != nil {
		return apperror.NewInternal("Internal server error", err)
	}
	if !res.Valid() {
		return apperror.NewBadRequest(msgSimulationIDRequired)
	}
	return nil
}

func requireUser(r *http.Request) (int64, error) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return 0, apperror.NewInternal("Internal server error", errors.New("handler reached without an authenticated user"))
	}
	return userID, nil
}
