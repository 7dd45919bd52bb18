package handlers

import (
	"net/http"

	"meetblock/middleware"

	"github.com/gin-gonic/gin"
)

// ListTimeBlocks returns every block the caller appears in.
func (h *TimeBlockHandler) ListTimeBlocks(c *gin.Context) {
	blocks, err := h.Service.ListByUser(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

// ListOccurred returns the caller's past meetings.
func (h *TimeBlockHandler) ListOccurred(c *gin.Context) {
	blocks, err := h.Service.ListOccurred(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

// ListNeedingMetResponse returns the caller's meetings awaiting a met mark.
func (h *TimeBlockHandler) ListNeedingMetResponse(c *gin.Context) {
	blocks, err := h.Service.ListNeedingMetResponse(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

// ListUnclaimed returns a user's open availabilities.
func (h *TimeBlockHandler) ListUnclaimed(c *gin.Context) {
	blocks, err := h.Service.ListUnclaimedByOwner(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

// ListSentRequests returns the caller's unanswered sent requests.
func (h *TimeBlockHandler) ListSentRequests(c *gin.Context) {
	blocks, err := h.Service.ListPendingRequests(c.Request.Context(), middleware.CallerID(c), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

// ListReceivedRequests returns unanswered requests on the caller's blocks.
func (h *TimeBlockHandler) ListReceivedRequests(c *gin.Context) {
	blocks, err := h.Service.ListPendingRequests(c.Request.Context(), middleware.CallerID(c), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

// ListUpcoming returns the caller's upcoming accepted meetings.
func (h *TimeBlockHandler) ListUpcoming(c *gin.Context) {
	blocks, err := h.Service.ListUpcoming(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

// GetStats returns a user's derived meeting statistics.
func (h *TimeBlockHandler) GetStats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Statistics were fetched successfully.",
		"statistics": stats,
	})
}

// GetCalendarAccess reports whether a user may request others' blocks.
func (h *TimeBlockHandler) GetCalendarAccess(c *gin.Context) {
	ok, err := h.Service.HasCalendarAccess(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasAccess": ok})
}

// GetOpenAvailability reports whether a user's profile shows open slots.
func (h *TimeBlockHandler) GetOpenAvailability(c *gin.Context) {
	ok, err := h.Service.HasOpenAvailability(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasAvailability": ok})
}
