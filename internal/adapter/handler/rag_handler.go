package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetingintel-team/meeting-intel/errors"
	"github.com/meetingintel-team/meeting-intel/internal/adapter/dto"
	"github.com/meetingintel-team/meeting-intel/internal/usecase/rag"
)

// RAGHandler exposes retrieval over the indexed transcript corpus
type RAGHandler struct {
	retriever *rag.Retriever
	indexer   *rag.Indexer
	logger    *zap.Logger
}

// NewRAGHandler creates a new RAG handler
func NewRAGHandler(retriever *rag.Retriever, indexer *rag.Indexer, logger *zap.Logger) *RAGHandler {
	return &RAGHandler{retriever: retriever, indexer: indexer, logger: logger}
}

// Ask answers a question from the indexed meetings with citations
func (rh *RAGHandler) Ask(c echo.Context) error {
	var req dto.AskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(rh.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(rh.logger, c, errors.ErrValidation(err.Error()))
	}

	scope := rag.AskScope{ClientID: req.ClientID, MeetingID: req.MeetingID}
	answer, err := rh.retriever.Ask(c.Request().Context(), req.Question, req.TopK, scope)
	if err != nil {
		return HandleError(rh.logger, c, err)
	}
	return HandleSuccess(rh.logger, c, answer)
}

// IndexAll indexes every transcript not yet in the vector store
func (rh *RAGHandler) IndexAll(c echo.Context) error {
	result, err := rh.indexer.IndexAll(c.Request().Context())
	if err != nil {
		// A partial pass still reports what succeeded
		var appErr errors.AppError
		if result != nil && stdErrors.As(err, &appErr) && appErr.Code == errors.ErrorCode_PARTIAL_FAILURE {
			return c.JSON(appErr.HTTPCode, map[string]interface{}{
				"code":    appErr.Code,
				"message": appErr.Message,
				"data":    result,
			})
		}
		return HandleError(rh.logger, c, err)
	}
	return HandleSuccess(rh.logger, c, result)
}
