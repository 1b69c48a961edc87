package employee

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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
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

func (h *Handler) GetByID(c *gin.Context) {
	rec, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) Create(c *gin.Context) {
	var payload records.Record
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "JSON body is required", err.Error())
		return
	}

	rec, err := h.repo.Add(c.Request.Context(), payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	id := records.StringField(rec, "id")
	kafka.Emit(c.Request.Context(), h.broadcaster, h.logger,
		events.NewRecordChanged("employee_added", kind, id, c.GetString("request_id"), rec))
	response.Committed(c, http.StatusCreated, "Employee added successfully", id, rec)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	var payload records.Record
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "JSON body is required", err.Error())
		return
	}

	updates, err := h.repo.Update(c.Request.Context(), id, payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	kafka.Emit(c.Request.Context(), h.broadcaster, h.logger,
		events.NewRecordChanged("employee_updated", kind, id, c.GetString("request_id"), updates))
	response.Committed(c, http.StatusOK, "Employee updated successfully", id, updates)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	kafka.Emit(c.Request.Context(), h.broadcaster, h.logger,
		events.NewRecordChanged("employee_deleted", kind, id, c.GetString("request_id"), nil))
	response.Committed(c, http.StatusOK, "Employee deleted successfully", id, nil)
}
