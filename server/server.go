// Package server exposes the storefront as a local HTTP API.
package server

import (
	"github.com/gin-gonic/gin"

	"marketplus/catalog"
	"marketplus/state"
	"marketplus/view"
)

// Server wires the commerce store, catalog client, and view composition
// behind a gin router.
type Server struct {
	store   *state.Store
	catalog *catalog.Client
	browser *view.Browser
}

// New constructs a Server over the given store and catalog client.
func New(store *state.Store, c *catalog.Client) *Server {
	return &Server{
		store:   store,
		catalog: c,
		browser: view.NewBrowser(c),
	}
}

// Router builds the gin engine with all storefront routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger())

	api := r.Group("/api")

	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)
	api.GET("/categories", s.listCategories)

	api.GET("/wishlist", s.getWishlist)
	api.POST("/wishlist/:id", s.addToWishlist)
	api.DELETE("/wishlist/:id", s.removeFromWishlist)

	api.GET("/cart", s.getCart)
	api.POST("/cart/:id", s.addToCart)
	api.PUT("/cart/:id", s.updateCartQuantity)
	api.DELETE("/cart/:id", s.removeFromCart)
	api.DELETE("/cart", s.clearCart)

	api.POST("/checkout", s.checkout)
	api.GET("/history", s.getHistory)

	api.POST("/login", s.login)
	api.POST("/logout", s.logout)
	api.GET("/session", s.getSession)

	admin := api.Group("/admin", s.requireAdmin)
	admin.POST("/products", s.createProduct)
	admin.PUT("/products/:id", s.updateProduct)
	admin.DELETE("/products/:id", s.deleteProduct)

	return r
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}
