package controllers

import (
	"net/http"
	"strconv"

	"shareit/apperr"
	"shareit/models"
	"shareit/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct{ *Srv }

func NewBookingController(s *Srv) *BookingController { return &BookingController{Srv: s} }

// POST /bookings
func (bc *BookingController) Create(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, bc.Logger, err)
		return
	}
	var in services.BookingCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, bc.Logger, apperr.Validation("invalid request body: %s", err))
		return
	}
	b, err := bc.Bookings.Create(c.Request.Context(), uid, in)
	if err != nil {
		apperr.Respond(c, bc.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// PATCH /bookings/:id?approved=
func (bc *BookingController) Decide(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, bc.Logger, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		apperr.Respond(c, bc.Logger, err)
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		apperr.Respond(c, bc.Logger, apperr.Validation("approved query parameter must be a boolean"))
		return
	}
	b, err := bc.Bookings.Decide(c.Request.Context(), uid, id, approved)
	if err != nil {
		apperr.Respond(c, bc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /bookings/:id
func (bc *BookingController) Get(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, bc.Logger, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		apperr.Respond(c, bc.Logger, err)
		return
	}
	b, err := bc.Bookings.Get(c.Request.Context(), uid, id)
	if err != nil {
		apperr.Respond(c, bc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /bookings?state= — bookings made by the caller
func (bc *BookingController) ListForRenter(c *gin.Context) {
	bc.list(c, false)
}

// GET /bookings/owner?state= — bookings on the caller's items
func (bc *BookingController) ListForOwner(c *gin.Context) {
	bc.list(c, true)
}

func (bc *BookingController) list(c *gin.Context, owner bool) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, bc.Logger, err)
		return
	}
	raw := c.Query("state")
	state, err := models.ParseBookingState(raw)
	if err != nil {
		apperr.Respond(c, bc.Logger, apperr.UnsupportedState(raw))
		return
	}
	bookings, err := bc.Bookings.List(c.Request.Context(), uid, owner, state)
	if err != nil {
		apperr.Respond(c, bc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
