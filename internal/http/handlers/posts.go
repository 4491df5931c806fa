package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/blogcart-be/internal/auth"
	"github.com/hongminglow/blogcart-be/internal/http/respond"
	"github.com/hongminglow/blogcart-be/internal/middleware"
	"github.com/hongminglow/blogcart-be/internal/models"
	"github.com/hongminglow/blogcart-be/internal/models/dto"
	"github.com/hongminglow/blogcart-be/internal/storage"
)

// PostsHandler owns the blog post CRUD endpoints. Reads are public;
// mutations require authentication and post ownership.
type PostsHandler struct {
	store  storage.PostStore
	logger *zap.Logger
}

// NewPostsHandler constructs the handler.
func NewPostsHandler(store storage.PostStore, logger *zap.Logger) *PostsHandler {
	return &PostsHandler{store: store, logger: logger}
}

// Register attaches post routes, gating mutations behind requireUser.
func (h *PostsHandler) Register(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Post("/", h.handleCreate)
			r.Put("/{id}", h.handleUpdate)
			r.Delete("/{id}", h.handleDelete)
		})
	})
}

func (h *PostsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	var req dto.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		respond.Message(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	post, err := h.store.CreatePost(r.Context(), models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: user.ID,
	})
	if err != nil {
		h.logger.Error("create post failed", zap.String("author_id", user.ID), zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error creating post")
		return
	}

	respond.JSON(w, http.StatusCreated, dto.PostCreatedResponse{
		Message: "Post created successfully",
		Post:    post,
	})
}

func (h *PostsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		h.logger.Error("list posts failed", zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error fetching posts")
		return
	}
	respond.JSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.store.FindPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("fetch post failed", zap.String("post_id", id), zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error fetching post")
		return
	}
	respond.JSON(w, http.StatusOK, post)
}

func (h *PostsHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	id := chi.URLParam(r, "id")

	// An absent body is a valid update that changes nothing.
	var req dto.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Message(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	post, err := h.store.FindPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("fetch post failed", zap.String("post_id", id), zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error updating post")
		return
	}

	if !auth.CanMutate(post.AuthorID, user) {
		respond.Message(w, http.StatusForbidden, "You can update only your own posts")
		return
	}

	// Omitted fields keep their stored values.
	title := req.Title
	if strings.TrimSpace(title) == "" {
		title = post.Title
	}
	content := req.Content
	if strings.TrimSpace(content) == "" {
		content = post.Content
	}

	updated, err := h.store.UpdatePost(r.Context(), id, title, content)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("update post failed", zap.String("post_id", id), zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error updating post")
		return
	}

	respond.JSON(w, http.StatusOK, dto.PostUpdatedResponse{
		Message:     "Post updated successfully",
		UpdatedPost: updated,
	})
}

func (h *PostsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	id := chi.URLParam(r, "id")

	post, err := h.store.FindPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("fetch post failed", zap.String("post_id", id), zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error deleting post")
		return
	}

	if !auth.CanMutate(post.AuthorID, user) {
		respond.Message(w, http.StatusForbidden, "You can delete only your own posts")
		return
	}

	if err := h.store.DeletePost(r.Context(), id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.logger.Error("delete post failed", zap.String("post_id", id), zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error deleting post")
		return
	}

	respond.Message(w, http.StatusOK, "Post deleted successfully")
}
