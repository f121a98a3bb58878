package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/watchparty/signaling/internal/core"
	"github.com/watchparty/signaling/internal/domain"
)

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// handleCreateRoom mints a fresh room and hands the code back. The room is
// empty until someone joins over the websocket.
func handleCreateRoom(rooms *core.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		code, err := rooms.CreateRoom()
		if err != nil {
			if errors.Is(err, domain.ErrCodeSpaceExhausted) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not allocate room code"})
				return
			}
			log.Error().Err(err).Str("module", "adapters.http").Msg("create room")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": code})
	}
}

// handleGetRoom reports a read-only snapshot: who is in the room and
// whether the host is online. It never mutates room state.
func handleGetRoom(rooms *core.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := domain.NormalizeRoomCode(c.Param("code"))
		room, ok := rooms.GetRoom(code)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrRoomNotFound.Error()})
			return
		}
		snap := room.Snapshot()
		c.JSON(http.StatusOK, gin.H{"room": code, "meta": snap})
	}
}
