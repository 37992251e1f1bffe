package httpHandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roomhub/usecases"
)

type RoomHandler struct {
	rooms *usecases.RoomUseCase
}

func NewRoomHandler(rooms *usecases.RoomUseCase) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// Home handles GET /. The optional q param filters rooms by topic name, room
// name or description; absent or empty q matches everything.
func (h *RoomHandler) Home(c *gin.Context) {
	term := c.Query("q")

	rooms, count, err := h.rooms.SearchRooms(term)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}
	topics, err := h.rooms.ListTopics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list topics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rooms":      rooms,
		"topics":     topics,
		"room_count": count,
	})
}

// GetRoom handles GET /room/:id.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.rooms.GetRoom(c.Param("id"))
	if err != nil {
		h.writeError(c, err, usecases.RoomInput{})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// NewRoomForm handles GET /room/new: the blank form plus topic choices.
func (h *RoomHandler) NewRoomForm(c *gin.Context) {
	topics, err := h.rooms.ListTopics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list topics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"form":   usecases.RoomInput{},
		"topics": topics,
	})
}

// CreateRoom handles POST /room/new. The creating user becomes the host.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	user, ok := UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var input usecases.RoomInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data", "form": input})
		return
	}

	room, err := h.rooms.CreateRoom(user, input)
	if err != nil {
		h.writeError(c, err, input)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "room created",
		"room":    room,
	})
}

// EditRoomForm handles GET /room/:id/update: the form prefilled with the
// room's current values. Non-hosts are denied before anything is shown.
func (h *RoomHandler) EditRoomForm(c *gin.Context) {
	user, ok := UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	room, err := h.rooms.GetRoom(c.Param("id"))
	if err != nil {
		h.writeError(c, err, usecases.RoomInput{})
		return
	}
	if room.HostID != user.ID {
		c.String(http.StatusForbidden, usecases.ErrNotHost.Error())
		return
	}

	topics, err := h.rooms.ListTopics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list topics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"form": usecases.RoomInput{
			Name:        room.Name,
			Topic:       room.Topic.Name,
			Description: room.Description,
		},
		"topics": topics,
	})
}

// UpdateRoom handles POST /room/:id/update.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	user, ok := UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var input usecases.RoomInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data", "form": input})
		return
	}

	room, err := h.rooms.UpdateRoom(user, c.Param("id"), input)
	if err != nil {
		h.writeError(c, err, input)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "room updated",
		"room":    room,
	})
}

// ConfirmDeleteRoom handles GET /room/:id/delete: the confirmation view.
// Nothing is removed until the follow-up POST.
func (h *RoomHandler) ConfirmDeleteRoom(c *gin.Context) {
	user, ok := UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	room, err := h.rooms.GetRoom(c.Param("id"))
	if err != nil {
		h.writeError(c, err, usecases.RoomInput{})
		return
	}
	if room.HostID != user.ID {
		c.String(http.StatusForbidden, usecases.ErrNotHost.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":    room,
		"confirm": "POST to this URL to delete the room",
	})
}

// DeleteRoom handles POST /room/:id/delete: the confirmed second step.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	user, ok := UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.rooms.DeleteRoom(user, c.Param("id")); err != nil {
		h.writeError(c, err, usecases.RoomInput{})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "room deleted"})
}

// writeError maps workflow errors to responses: not-found to 404, the
// ownership denial to a plain-text 403 distinct from not-found, anything else
// to a 400 that echoes the submitted form so the caller can re-render it.
func (h *RoomHandler) writeError(c *gin.Context, err error, input usecases.RoomInput) {
	switch {
	case errors.Is(err, usecases.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecases.ErrNotHost):
		c.String(http.StatusForbidden, err.Error())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "form": input})
	}
}
