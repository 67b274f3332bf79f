package controllers

import (
	"strconv"
	"time"

	"shareit/apperr"
	"shareit/app"
	"shareit/cache"
	"shareit/db"
	"shareit/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserIDHeader carries the caller identity on every identity-scoped
// endpoint. The value is trusted as-is; authentication is out of scope.
const UserIDHeader = "X-Sharer-User-Id"

// Srv wires the controllers' shared dependencies.
type Srv struct {
	Users    *services.UserService
	Items    *services.ItemService
	Bookings *services.BookingService
	Requests *services.RequestService
	Logger   *zerolog.Logger
}

func NewSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	search := cache.NewSearchCache(a.RDB, time.Duration(a.Config.Cache.SearchTTLSeconds)*time.Second)
	return &Srv{
		Users:    services.NewUserService(repo, a.Logger),
		Items:    services.NewItemService(repo, search, a.Logger),
		Bookings: services.NewBookingService(repo, a.Logger),
		Requests: services.NewRequestService(repo, a.Logger),
		Logger:   a.Logger,
	}
}

// --- helpers ---

func callerID(c *gin.Context) (int64, error) {
	raw := c.GetHeader(UserIDHeader)
	if raw == "" {
		return 0, apperr.Validation("%s header is required", UserIDHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("%s header must be a positive integer", UserIDHeader)
	}
	return id, nil
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("path parameter %s must be a positive integer", name)
	}
	return id, nil
}
