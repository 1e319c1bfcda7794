package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetingintel-team/meeting-intel/errors"
	"github.com/meetingintel-team/meeting-intel/internal/adapter/dto"
	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
	"github.com/meetingintel-team/meeting-intel/internal/domain/repositories"
)

// ClientHandler manages clients and their task tracker project mappings
type ClientHandler struct {
	clients repositories.ClientRepository
	logger  *zap.Logger
}

// NewClientHandler creates a new client handler
func NewClientHandler(clients repositories.ClientRepository, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, logger: logger}
}

// Create registers a new client
func (ch *ClientHandler) Create(c echo.Context) error {
	var req dto.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(ch.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ch.logger, c, errors.ErrValidation(err.Error()))
	}

	existing, err := ch.clients.GetByName(req.Name)
	if err != nil {
		return HandleError(ch.logger, c, errors.ErrDBQueryFailed("get client", err))
	}
	if existing != nil {
		return HandleError(ch.logger, c, errors.ErrAlreadyExists("client"))
	}

	client := entities.NewClient(req.Name)
	client.TelegramChatID = req.TelegramChatID
	if err := ch.clients.Save(client); err != nil {
		return HandleError(ch.logger, c, errors.ErrDBQueryFailed("save client", err))
	}

	ch.logger.Info("✅ Client created", zap.String("client_id", client.ID.String()))
	return HandleSuccess(ch.logger, c, dto.NewClientResponse(client, nil))
}

// List returns all clients with their project mappings
func (ch *ClientHandler) List(c echo.Context) error {
	clients, err := ch.clients.List()
	if err != nil {
		return HandleError(ch.logger, c, errors.ErrDBQueryFailed("list clients", err))
	}

	out := make([]dto.ClientResponse, 0, len(clients))
	for _, client := range clients {
		mapping, err := ch.clients.GetMappingByClient(client.ID)
		if err != nil {
			return HandleError(ch.logger, c, errors.ErrDBQueryFailed("get project mapping", err))
		}
		out = append(out, dto.NewClientResponse(client, mapping))
	}
	return HandleSuccess(ch.logger, c, out)
}

// Get returns one client with its project mapping
func (ch *ClientHandler) Get(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(ch.logger, c, errors.ErrInvalidArgument("invalid client id"))
	}

	client, err := ch.clients.GetByID(clientID)
	if err != nil {
		return HandleError(ch.logger, c, errors.ErrDBQueryFailed("get client", err))
	}
	if client == nil {
		return HandleError(ch.logger, c, errors.ErrNotFound("client"))
	}

	mapping, err := ch.clients.GetMappingByClient(clientID)
	if err != nil {
		return HandleError(ch.logger, c, errors.ErrDBQueryFailed("get project mapping", err))
	}
	return HandleSuccess(ch.logger, c, dto.NewClientResponse(client, mapping))
}

// Update changes client fields
func (ch *ClientHandler) Update(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(ch.logger, c, errors.ErrInvalidArgument("invalid client id"))
	}

	var req dto.UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(ch.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ch.logger, c, errors.ErrValidation(err.Error()))
	}

	client, err := ch.clients.GetByID(clientID)
	if err != nil {
		return HandleError(ch.logger, c, errors.ErrDBQueryFailed("get client", err))
	}
	if client == nil {
		return HandleError(ch.logger, c, errors.ErrNotFound("client"))
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.TelegramChatID != nil {
		client.TelegramChatID = req.TelegramChatID
	}
	if err := ch.clients.Update(client); err != nil {
		return HandleError(ch.logger, c, errors.ErrDBQueryFailed("update client", err))
	}

	mapping, _ := ch.clients.GetMappingByClient(clientID)
	return HandleSuccess(ch.logger, c, dto.NewClientResponse(client, mapping))
}

// Delete removes a client and its mapping
func (ch *ClientHandler) Delete(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(ch.logger, c, errors.ErrInvalidArgument("invalid client id"))
	}

	if err := ch.clients.Delete(clientID); err != nil {
		return HandleError(ch.logger, c, errors.ErrDBQueryFailed("delete client", err))
	}
	return HandleSuccess(ch.logger, c, map[string]string{"status": "deleted"})
}

// SetMapping binds the client to a task tracker project
func (ch *ClientHandler) SetMapping(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(ch.logger, c, errors.ErrInvalidArgument("invalid client id"))
	}

	var req dto.SetMappingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(ch.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ch.logger, c, errors.ErrValidation(err.Error()))
	}

	client, err := ch.clients.GetByID(clientID)
	if err != nil {
		return HandleError(ch.logger, c, errors.ErrDBQueryFailed("get client", err))
	}
	if client == nil {
		return HandleError(ch.logger, c, errors.ErrNotFound("client"))
	}

	if err := ch.clients.SaveMapping(entities.NewProjectMapping(clientID, req.ProjectID)); err != nil {
		return HandleError(ch.logger, c, errors.ErrDBQueryFailed("save project mapping", err))
	}
	return HandleSuccess(ch.logger, c, map[string]string{
		"client_id":  clientID.String(),
		"project_id": req.ProjectID,
	})
}
