package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexCourivaud/ShareTech2/services"
)

type CommentController struct {
	Comments *services.CommentService
}

func (cc *CommentController) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in struct {
		Content string `json:"content"`
	}
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := cc.Comments.Update(actor, id, in.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (cc *CommentController) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := cc.Comments.Delete(actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func (cc *CommentController) ListReplies(c *gin.Context) {
	if _, ok := actorFrom(c); !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	replies, err := cc.Comments.ListReplies(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, replies)
}

func (cc *CommentController) CreateReply(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in struct {
		Content string `json:"content"`
	}
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := cc.Comments.Reply(actor, id, in.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}
