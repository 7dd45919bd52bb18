package handlers

import (
	"net/http"
	"time"

	"meetblock/middleware"
	"meetblock/services/timeblock"

	"github.com/gin-gonic/gin"
)

// TimeBlockHandler exposes the lifecycle transitions over HTTP.
type TimeBlockHandler struct {
	Service timeblock.TimeBlockService
}

// NewTimeBlockHandler constructs a TimeBlockHandler.
func NewTimeBlockHandler(svc timeblock.TimeBlockService) *TimeBlockHandler {
	return &TimeBlockHandler{Service: svc}
}

// CreateTimeBlock publishes a new availability for the caller.
func (h *TimeBlockHandler) CreateTimeBlock(c *gin.Context) {
	var input struct {
		Start time.Time `json:"start" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	block, err := h.Service.Create(c.Request.Context(), middleware.CallerID(c), input.Start)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Your time block was created successfully.",
		"timeBlock": block,
	})
}

// DeleteTimeBlock removes one of the caller's unclaimed blocks.
func (h *TimeBlockHandler) DeleteTimeBlock(c *gin.Context) {
	err := h.Service.Delete(c.Request.Context(), c.Param("timeBlockId"), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Your time block was deleted successfully."})
}

// RequestTimeBlock places the caller's claim on an open block.
func (h *TimeBlockHandler) RequestTimeBlock(c *gin.Context) {
	var input struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	block, err := h.Service.RequestClaim(c.Request.Context(), c.Param("timeBlockId"), middleware.CallerID(c), input.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Your meeting request was sent successfully.",
		"timeBlock": block,
	})
}

// UnsendRequest withdraws the caller's pending claim.
func (h *TimeBlockHandler) UnsendRequest(c *gin.Context) {
	block, err := h.Service.UnsendClaim(c.Request.Context(), c.Param("timeBlockId"), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Your meeting request was withdrawn.",
		"timeBlock": block,
	})
}

// RespondToRequest accepts or rejects the pending claim on the caller's block.
func (h *TimeBlockHandler) RespondToRequest(c *gin.Context) {
	var input struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	block, err := h.Service.Respond(c.Request.Context(), c.Param("timeBlockId"), middleware.CallerID(c), *input.Accept)
	if err != nil {
		respondError(c, err)
		return
	}
	msg := "The request was rejected successfully."
	if *input.Accept {
		msg = "The request was accepted successfully."
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   msg,
		"timeBlock": block,
	})
}

// CancelMeeting cancels an accepted meeting the caller participates in.
func (h *TimeBlockHandler) CancelMeeting(c *gin.Context) {
	block, err := h.Service.Cancel(c.Request.Context(), c.Param("timeBlockId"), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Your meeting was canceled.",
		"timeBlock": block,
	})
}

// MarkMeetingMet records whether a past meeting actually occurred.
func (h *TimeBlockHandler) MarkMeetingMet(c *gin.Context) {
	var input struct {
		Met *bool `json:"met" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	block, err := h.Service.MarkMet(c.Request.Context(), c.Param("timeBlockId"), middleware.CallerID(c), *input.Met)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Your meeting status was updated successfully.",
		"timeBlock": block,
	})
}
