package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexCourivaud/ShareTech2/services"
)

type TagController struct {
	Tags *services.TagService
}

func (tc *TagController) List(c *gin.Context) {
	if _, ok := actorFrom(c); !ok {
		return
	}
	tags, err := tc.Tags.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (tc *TagController) Get(c *gin.Context) {
	if _, ok := actorFrom(c); !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	tag, err := tc.Tags.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (tc *TagController) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var in struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag, err := tc.Tags.Create(actor, in.Name, in.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (tc *TagController) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := tc.Tags.Delete(actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
