package handler

import (
	"errors"
	"log"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	service *usecase.NotesService
}

func NewNoteHandler(service *usecase.NotesService) *NoteHandler {
	return &NoteHandler{service: service}
}

type noteRequest struct {
	Text string `json:"text" binding:"required,notblank"`
}

// GetPairNotes lists every note shared between the caller and :friendId,
// oldest first.
func (h *NoteHandler) GetPairNotes(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	friendID := c.Param("friendId")
	notes, err := h.service.GetPairNotes(c.Request.Context(), userID.(string), friendID)
	if err != nil {
		log.Printf("getPairNotes error: %v", err)
		utils.InternalError(c, "Failed to fetch notes")
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	friendID := c.Param("friendId")
	note, err := h.service.CreateNote(c.Request.Context(), userID.(string), friendID, req.Text)
	if err != nil {
		h.respondNoteError(c, "add note", err)
		return
	}

	utils.Created(c, dto.ToNoteResponse(note))
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	noteID := c.Param("noteId")
	note, err := h.service.UpdateNote(c.Request.Context(), userID.(string), noteID, req.Text)
	if err != nil {
		h.respondNoteError(c, "update note", err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	noteID := c.Param("noteId")
	if err := h.service.DeleteNote(c.Request.Context(), userID.(string), noteID); err != nil {
		h.respondNoteError(c, "delete note", err)
		return
	}

	utils.Success(c, gin.H{"id": noteID})
}

// respondNoteError maps service errors onto the response envelope.
func (h *NoteHandler) respondNoteError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, model.ErrNoteNotFound):
		utils.NotFound(c, "Note not found")
	case errors.Is(err, model.ErrNotCreator):
		utils.Forbidden(c, "Not allowed to modify this note")
	case errors.Is(err, model.ErrTextRequired), errors.Is(err, model.ErrTextTooLong):
		utils.BadRequest(c, err.Error())
	default:
		log.Printf("%s error: %v", op, err)
		utils.InternalError(c, "Failed to "+op)
	}
}
