package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"linkadmin/internal/services"
)

type UrlHandler struct {
	urlService  services.UrlService
	userService services.UserService
}

func NewUrlHandler(urlService services.UrlService, userService services.UserService) *UrlHandler {
	return &UrlHandler{urlService: urlService, userService: userService}
}

func (h *UrlHandler) ownerID(c *gin.Context) (int64, bool) {
	email, ok := currentEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return 0, false
	}
	user, err := h.userService.GetUserByEmail(email)
	if err != nil {
		respondError(c, err)
		return 0, false
	}
	return user.ID, true
}

// @Summary      Create short url
// @Tags         Urls
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Router       /api/v1/urls [post]
func (h *UrlHandler) Create(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}
	var req struct {
		OriginalUrl string `json:"original_url" binding:"required,url"`
		Description string `json:"description" binding:"omitempty,max=200"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.urlService.CreateUrl(userID, services.CreateUrlRequest{
		OriginalUrl: req.OriginalUrl,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// @Summary      List urls
// @Tags         Urls
// @Produce      json
// @Param        limit    query     int     false  "Page size"
// @Param        offset   query     int     false  "Page offset"
// @Param        sort_by  query     string  false  "created_at|updated_at|short_code"
// @Param        order    query     string  false  "asc|desc"
// @Success      200      {object}  map[string]interface{}
// @Router       /api/v1/urls [get]
func (h *UrlHandler) List(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.urlService.ListUrls(userID, c.Query("sort_by"), c.Query("order"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary      Get url
// @Tags         Urls
// @Produce      json
// @Param        id   path      int  true  "Url id"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/urls/{id} [get]
func (h *UrlHandler) Get(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	url, err := h.urlService.GetUrl(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// @Summary      Update url
// @Tags         Urls
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Url id"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/urls/{id} [patch]
func (h *UrlHandler) Update(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		OriginalUrl string `json:"original_url" binding:"omitempty,url"`
		Description string `json:"description" binding:"omitempty,max=200"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.urlService.UpdateUrl(userID, id, services.UpdateUrlRequest{
		OriginalUrl: req.OriginalUrl,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// @Summary      Delete url
// @Tags         Urls
// @Produce      json
// @Param        id   path      int  true  "Url id"
// @Success      200  {object}  map[string]string
// @Router       /api/v1/urls/{id} [delete]
func (h *UrlHandler) Delete(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.urlService.DeleteUrl(userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Url deleted"})
}
