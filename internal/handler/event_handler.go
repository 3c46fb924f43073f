package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cfl/internal/logic"
	"github.com/gin-gonic/gin"
)

// EventHandler 事件日志处理器
type EventHandler struct {
	eventLogic *logic.EventLogic
}

// NewEventHandler 创建事件日志处理器
func NewEventHandler(eventLogic *logic.EventLogic) *EventHandler {
	return &EventHandler{
		eventLogic: eventLogic,
	}
}

// GetEvents 获取事件列表
func (h *EventHandler) GetEvents(c *gin.Context) {
	campaignAddress := c.Query("campaign")
	eventType := c.Query("type")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	events, total, err := h.eventLogic.GetEvents(campaignAddress, eventType, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	pagination := Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}

	SuccessResponse(c, http.StatusOK, "获取事件列表成功", gin.H{
		"events":     events,
		"pagination": pagination,
	})
}
