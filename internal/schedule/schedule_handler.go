package schedule

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
	l := zap.L().Named("schedule.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.handler")
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

func (h *Handler) Filter(c *gin.Context) {
	var q RangeFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	list, err := h.repo.QueryRange(c.Request.Context(), q.FromDate, q.ToDate)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Save(c *gin.Context) {
	var payload records.Record
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "JSON body is required", err.Error())
		return
	}

	rec, err := h.repo.Save(c.Request.Context(), payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	id := records.StringField(rec, "id")
	kafka.Emit(c.Request.Context(), h.broadcaster, h.logger,
		events.NewRecordChanged("work_schedule_saved", kind, id, c.GetString("request_id"), rec))
	response.Committed(c, http.StatusOK, "Work schedule saved successfully", id, rec)
}
