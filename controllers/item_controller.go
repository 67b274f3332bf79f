package controllers

import (
	"net/http"

	"shareit/apperr"
	"shareit/services"

	"github.com/gin-gonic/gin"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

// POST /items
func (ic *ItemController) Create(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	var in services.ItemCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, ic.Logger, apperr.Validation("invalid request body: %s", err))
		return
	}
	it, err := ic.Items.Create(c.Request.Context(), uid, in)
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// GET /items — the caller's own items, enriched
func (ic *ItemController) ListOwned(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	items, err := ic.Items.ListOwned(c.Request.Context(), uid)
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GET /items/:id
func (ic *ItemController) Get(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	it, err := ic.Items.Get(c.Request.Context(), id, uid)
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// PATCH /items/:id
func (ic *ItemController) Update(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	var in services.ItemPatch
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, ic.Logger, apperr.Validation("invalid request body: %s", err))
		return
	}
	it, err := ic.Items.Update(c.Request.Context(), uid, id, in)
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// GET /items/search?text=
func (ic *ItemController) Search(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	items, err := ic.Items.Search(c.Request.Context(), uid, c.Query("text"))
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /items/:id/comment
func (ic *ItemController) AddComment(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	var in struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, ic.Logger, apperr.Validation("invalid request body: %s", err))
		return
	}
	cm, err := ic.Items.AddComment(c.Request.Context(), uid, itemID, in.Text)
	if err != nil {
		apperr.Respond(c, ic.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}
