package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplus/domain"
)

// statusFor maps catalog errors onto HTTP statuses: a missing product is the
// client's problem, a failed upstream call is the gateway's.
func statusFor(err error) int {
	switch {
	case domain.IsProductNotFoundError(err):
		return http.StatusNotFound
	case domain.IsRequestFailedError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return id, true
}

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.browser.Products(c.Request.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	p, err := s.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.browser.Categories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) getWishlist(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Wishlist())
}

func (s *Server) addToWishlist(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	p, err := s.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if err := s.store.AddToWishlist(p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.store.Wishlist())
}

func (s *Server) removeFromWishlist(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := s.store.RemoveFromWishlist(id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.store.Wishlist())
}

func (s *Server) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.store.Cart(), "total": s.store.CartTotal()})
}

func (s *Server) addToCart(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	p, err := s.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if err := s.store.AddToCart(p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": s.store.Cart(), "total": s.store.CartTotal()})
}

func (s *Server) updateCartQuantity(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.UpdateCartQuantity(id, body.Quantity); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": s.store.Cart(), "total": s.store.CartTotal()})
}

func (s *Server) removeFromCart(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := s.store.RemoveFromCart(id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": s.store.Cart(), "total": s.store.CartTotal()})
}

func (s *Server) clearCart(c *gin.Context) {
	if err := s.store.ClearCart(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": s.store.Cart(), "total": 0})
}

func (s *Server) checkout(c *gin.Context) {
	rec, err := s.store.Checkout()
	if err != nil {
		fail(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) getHistory(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.History())
}

func (s *Server) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ok, err := s.store.Login(body.Email, body.Password)
	if err != nil {
		fail(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.NewInvalidCredentialError().Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": true})
}

func (s *Server) logout(c *gin.Context) {
	if err := s.store.Logout(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": false})
}

func (s *Server) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"isAdmin": s.store.IsAdmin()})
}

func (s *Server) requireAdmin(c *gin.Context) {
	if !s.store.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin login required"})
		return
	}
	c.Next()
}

func (s *Server) createProduct(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := domain.ValidateInput(in, true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.catalog.CreateProduct(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := domain.ValidateInput(in, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.catalog.UpdateProduct(c.Request.Context(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	dp, err := s.catalog.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dp)
}
