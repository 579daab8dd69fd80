package controllers

import (
	"net/http"
	"strconv"

	"journify/metrics"
	"journify/services"

	"github.com/gin-gonic/gin"
)

const defaultTopEntries = 10

// LikeController identifies voters by client IP, as resolved through the
// router's trusted proxies.
type LikeController struct {
	likes  *services.LikeService
	voters *services.VoterIdentifier
}

func NewLikeController(likes *services.LikeService, voters *services.VoterIdentifier) *LikeController {
	return &LikeController{likes: likes, voters: voters}
}

func (c *LikeController) voter(ctx *gin.Context) string {
	return c.voters.FromAddr(ctx.ClientIP())
}

func (c *LikeController) LikeEntry(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	res, err := c.likes.Like(ctx.Request.Context(), id, c.voter(ctx))
	if err != nil {
		respondError(ctx, err, "entry")
		return
	}

	metrics.ObserveToggle(metrics.ActionLike, !res.AlreadyLiked)
	message := "Successfully liked the entry"
	if res.AlreadyLiked {
		message = "already liked"
	}
	ctx.JSON(http.StatusOK, gin.H{"message": message, "likes_count": res.LikesCount, "liked": true})
}

func (c *LikeController) UnlikeEntry(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	res, err := c.likes.Unlike(ctx.Request.Context(), id, c.voter(ctx))
	if err != nil {
		respondError(ctx, err, "entry")
		return
	}

	metrics.ObserveToggle(metrics.ActionUnlike, res.WasLiked)
	message := "Successfully unliked the entry"
	if !res.WasLiked {
		message = "not liked"
	}
	ctx.JSON(http.StatusOK, gin.H{"message": message, "likes_count": res.LikesCount, "liked": false})
}

func (c *LikeController) GetLiked(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	liked, err := c.likes.HasLiked(ctx.Request.Context(), id, c.voter(ctx))
	if err != nil {
		respondError(ctx, err, "entry")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (c *LikeController) GetEntryLikes(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	count, err := c.likes.LikesCount(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "entry")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"likes_count": count})
}

// GetTopEntries returns the top N leaderboard, N from ?top= (default 10).
func (c *LikeController) GetTopEntries(ctx *gin.Context) {
	top, err := strconv.Atoi(ctx.DefaultQuery("top", strconv.Itoa(defaultTopEntries)))
	if err != nil || top <= 0 {
		top = defaultTopEntries
	}

	list, err := c.likes.TopEntries(ctx.Request.Context(), top)
	if err != nil {
		respondError(ctx, err, "entry")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"list": list})
}
