package handler

import (
	"errors"
	"log"
	"time"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	service *usecase.TodoService
}

func NewTodoHandler(service *usecase.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Text       string    `json:"text" binding:"required,notblank"`
		CompleteBy time.Time `json:"complete_by"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.service.CreateTodo(c.Request.Context(), userID.(string), req.Text, req.CompleteBy)
	if err != nil {
		h.respondTodoError(c, "add todo", err)
		return
	}

	utils.Created(c, dto.ToTodoResponse(todo))
}

func (h *TodoHandler) GetUserTodos(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	todos, err := h.service.GetUserTodos(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("getTodos error: %v", err)
		utils.InternalError(c, "Failed to fetch todos")
		return
	}

	utils.Success(c, dto.ToTodoResponses(todos))
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Text       string    `json:"text" binding:"required,notblank"`
		Completed  bool      `json:"completed"`
		CompleteBy time.Time `json:"complete_by"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	todoID := c.Param("id")
	updates := &model.Todo{
		Text:       req.Text,
		Completed:  req.Completed,
		CompleteBy: req.CompleteBy,
	}

	todo, err := h.service.UpdateTodo(c.Request.Context(), userID.(string), todoID, updates)
	if err != nil {
		h.respondTodoError(c, "update todo", err)
		return
	}

	utils.Success(c, dto.ToTodoResponse(todo))
}

func (h *TodoHandler) ToggleTodo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	todoID := c.Param("id")
	todo, err := h.service.ToggleTodo(c.Request.Context(), userID.(string), todoID)
	if err != nil {
		h.respondTodoError(c, "toggle todo", err)
		return
	}

	utils.Success(c, dto.ToTodoResponse(todo))
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	todoID := c.Param("id")
	if err := h.service.DeleteTodo(c.Request.Context(), userID.(string), todoID); err != nil {
		h.respondTodoError(c, "delete todo", err)
		return
	}

	utils.Success(c, gin.H{"id": todoID})
}

func (h *TodoHandler) respondTodoError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, model.ErrTodoNotFound):
		utils.NotFound(c, "Todo not found")
	case errors.Is(err, model.ErrTextRequired),
		errors.Is(err, model.ErrTextTooLong),
		errors.Is(err, model.ErrDeadlinePast):
		utils.BadRequest(c, err.Error())
	default:
		log.Printf("%s error: %v", op, err)
		utils.InternalError(c, "Failed to "+op)
	}
}
