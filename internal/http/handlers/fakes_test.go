package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hongminglow/blogcart-be/internal/auth"
	"github.com/hongminglow/blogcart-be/internal/middleware"
	"github.com/hongminglow/blogcart-be/internal/models"
	"github.com/hongminglow/blogcart-be/internal/storage"
)

// In-memory stores standing in for the Postgres implementations. They honor
// the same sentinel errors so handler translation paths are exercised.

type memUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]models.User)}
}

func (m *memUserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return user, nil
}

func (m *memUserStore) FindUserByID(_ context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (m *memUserStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (m *memUserStore) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

type memPostStore struct {
	mu    sync.Mutex
	posts map[string]models.Post
}

func newMemPostStore() *memPostStore {
	return &memPostStore{posts: make(map[string]models.Post)}
}

func (m *memPostStore) CreatePost(_ context.Context, post models.Post) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	m.posts[post.ID] = post
	return post, nil
}

func (m *memPostStore) ListPosts(_ context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	posts := make([]models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (m *memPostStore) FindPostByID(_ context.Context, id string) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return models.Post{}, storage.ErrNotFound
	}
	return post, nil
}

func (m *memPostStore) UpdatePost(_ context.Context, id, title, content string) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return models.Post{}, storage.ErrNotFound
	}
	post.Title = title
	post.Content = content
	post.UpdatedAt = time.Now()
	m.posts[id] = post
	return post, nil
}

func (m *memPostStore) DeletePost(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

type memProductStore struct {
	mu       sync.Mutex
	products map[string]models.Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: make(map[string]models.Product)}
}

func (m *memProductStore) CreateProduct(_ context.Context, product models.Product) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = uuid.NewString()
	product.CreatedAt = time.Now()
	m.products[product.ID] = product
	return product, nil
}

func (m *memProductStore) ListProducts(_ context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := make([]models.Product, 0, len(m.products))
	for _, product := range m.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	return products, nil
}

func (m *memProductStore) FindProductByID(_ context.Context, id string) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return models.Product{}, storage.ErrNotFound
	}
	return product, nil
}

func (m *memProductStore) SearchProducts(_ context.Context, filter storage.ProductFilter) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []models.Product{}
	for _, product := range m.products {
		if matchesFilter(product, filter) {
			matched = append(matched, product)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

func matchesFilter(p models.Product, f storage.ProductFilter) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	for _, tag := range f.Tags {
		found := false
		for _, have := range p.Tags {
			if have == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	return true
}

// testEnv wires the handlers against in-memory stores behind a real router,
// the same shape the server package builds in production.
type testEnv struct {
	users    *memUserStore
	posts    *memPostStore
	products *memProductStore
	tokens   *auth.TokenManager
	server   *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	users := newMemUserStore()
	posts := newMemPostStore()
	products := newMemProductStore()
	tokens := auth.NewTokenManager("test-secret", "blogcart-test", time.Hour)

	noLimit := func(next http.Handler) http.Handler { return next }
	requireUser := middleware.RequireUser(tokens, users, logger)

	r := chi.NewRouter()
	NewUsersHandler(users, tokens, logger).Register(r, noLimit)
	NewPostsHandler(posts, logger).Register(r, requireUser)
	NewProductsHandler(products, logger).Register(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return &testEnv{users: users, posts: posts, products: products, tokens: tokens, server: ts}
}

// seedUser creates a user directly in the store and returns it with a
// valid token.
func (e *testEnv) seedUser(t *testing.T, name, email string) (models.User, string) {
	t.Helper()
	user, err := e.users.CreateUser(context.Background(), models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "unused",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := e.tokens.Generate(user.ID)
	if err != nil {
		t.Fatalf("seed token: %v", err)
	}
	return user, token
}
