package handlers

import (
	"net/http"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const postFileFormField = "file"

type PostHandler struct {
	*BaseHandler
	postService services.PostService
}

func NewPostHandler(base *BaseHandler, postService services.PostService) *PostHandler {
	return &PostHandler{
		BaseHandler: base,
		postService: postService,
	}
}

func (h *PostHandler) RegisterRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	posts.Use(h.RequireAuth(), middleware.RequirePermission(auth.PermPostsRead))
	{
		write := middleware.RequirePermission(auth.PermPostsWrite)
		posts.GET("", h.ListMyPosts)
		posts.POST("", write, h.CreatePost)
		posts.GET("/:id", h.GetPost)
		posts.PATCH("/:id", write, h.UpdatePost)
		posts.DELETE("/:id", write, h.DeletePost)
	}
}

// ListMyPosts godoc
// @Summary Caller's posts
// @Description Filter by status, search title and caption, sort newest or oldest
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param status query string false "all, draft or published"
// @Param q query string false "Search text"
// @Param sort query string false "newest or oldest"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PostListResponse
// @Router /api/v1/posts [get]
func (h *PostHandler) ListMyPosts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ListPostsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.postService.ListMyPosts(c.Request.Context(), h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreatePost godoc
// @Summary Create a post
// @Description Upload a new file or reuse a URL from the media library
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file false "Image or video"
// @Param library_url formData string false "URL picked from the media library"
// @Param title formData string false "Title"
// @Param caption formData string false "Caption"
// @Param category formData string false "Category"
// @Param status formData string false "draft or published"
// @Success 201 {object} dto.PostDTO
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	file, ok := h.FormFile(c, postFileFormField)
	if !ok {
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), h.GetDB(c), userID, &req, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary Get one of the caller's posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.PostDTO
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost godoc
// @Summary Edit a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body dto.UpdatePostRequest true "Fields to change"
// @Success 200 {object} dto.PostDTO
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/posts/{id} [patch]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Description The media file stays in the library
// @Tags posts
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 204
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
