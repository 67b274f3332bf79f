package controllers

import (
	"net/http"

	"shareit/apperr"
	"shareit/services"

	"github.com/gin-gonic/gin"
)

type UserController struct{ *Srv }

func NewUserController(s *Srv) *UserController { return &UserController{Srv: s} }

// POST /users
func (uc *UserController) Create(c *gin.Context) {
	var in services.UserCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, uc.Logger, apperr.Validation("invalid request body: %s", err))
		return
	}
	u, err := uc.Users.Create(c.Request.Context(), in)
	if err != nil {
		apperr.Respond(c, uc.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// GET /users
func (uc *UserController) List(c *gin.Context) {
	users, err := uc.Users.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, uc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /users/:id
func (uc *UserController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperr.Respond(c, uc.Logger, err)
		return
	}
	u, err := uc.Users.Get(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, uc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PATCH /users/:id
func (uc *UserController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperr.Respond(c, uc.Logger, err)
		return
	}
	var in services.UserPatch
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, uc.Logger, apperr.Validation("invalid request body: %s", err))
		return
	}
	u, err := uc.Users.Update(c.Request.Context(), id, in)
	if err != nil {
		apperr.Respond(c, uc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /users/:id
func (uc *UserController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperr.Respond(c, uc.Logger, err)
		return
	}
	u, err := uc.Users.Delete(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, uc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
