package timesheet

import (
	"net/http"

	"github.com/leanh1541989-hash/taphoa39/internal/events"
	"github.com/leanh1541989-hash/taphoa39/internal/messaging/kafka"
	"github.com/leanh1541989-hash/taphoa39/internal/records"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/apperror"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	repo        *Repository
	broadcaster kafka.Broadcaster
	logger      *zap.Logger
}

func NewHandler(repo *Repository, broadcaster kafka.Broadcaster, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("timesheet.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.handler")
	}
	return &Handler{repo: repo, broadcaster: broadcaster, logger: l}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	list, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Create(c *gin.Context) {
	var payload records.Record
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "JSON body is required", err.Error())
		return
	}

	rec, err := h.repo.Append(c.Request.Context(), payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	id := records.StringField(rec, "id")
	kafka.Emit(c.Request.Context(), h.broadcaster, h.logger,
		events.NewRecordChanged("time_sheet_added", kind, id, c.GetString("request_id"), rec))
	response.Committed(c, http.StatusCreated, "Time sheet added successfully", id, rec)
}
