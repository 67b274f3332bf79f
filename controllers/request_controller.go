package controllers

import (
	"net/http"
	"strconv"

	"shareit/apperr"
	"shareit/services"

	"github.com/gin-gonic/gin"
)

type RequestController struct{ *Srv }

func NewRequestController(s *Srv) *RequestController { return &RequestController{Srv: s} }

// POST /requests
func (rc *RequestController) Create(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, rc.Logger, err)
		return
	}
	var in services.RequestCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, rc.Logger, apperr.Validation("invalid request body: %s", err))
		return
	}
	req, err := rc.Requests.Create(c.Request.Context(), uid, in)
	if err != nil {
		apperr.Respond(c, rc.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// GET /requests — the caller's own want-ads
func (rc *RequestController) ListOwn(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, rc.Logger, err)
		return
	}
	reqs, err := rc.Requests.ListOwn(c.Request.Context(), uid)
	if err != nil {
		apperr.Respond(c, rc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// GET /requests/all?from=&size=
func (rc *RequestController) ListOthers(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, rc.Logger, err)
		return
	}
	from, err := strconv.ParseInt(c.DefaultQuery("from", "0"), 10, 64)
	if err != nil {
		apperr.Respond(c, rc.Logger, apperr.Validation("from query parameter must be an integer"))
		return
	}
	size, err := strconv.ParseInt(c.DefaultQuery("size", "10"), 10, 64)
	if err != nil {
		apperr.Respond(c, rc.Logger, apperr.Validation("size query parameter must be an integer"))
		return
	}
	reqs, err := rc.Requests.ListOthers(c.Request.Context(), uid, from, size)
	if err != nil {
		apperr.Respond(c, rc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// GET /requests/:id
func (rc *RequestController) Get(c *gin.Context) {
	if _, err := callerID(c); err != nil {
		apperr.Respond(c, rc.Logger, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		apperr.Respond(c, rc.Logger, err)
		return
	}
	req, err := rc.Requests.Get(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, rc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
