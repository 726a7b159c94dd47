package routes

import (
	"net/http"

	"vitrina/auth"
	"vitrina/cart"
	"vitrina/middleware"
	"vitrina/nav"
	"vitrina/orders"
	"vitrina/products"
	"vitrina/ratelim"
	"vitrina/users"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddUserRoutes(router *httprouter.Router) {
	router.GET("/api/users/me", middleware.Authenticate(users.GetCurrentUser))
	router.GET("/api/users", middleware.RequireRole("admin", users.GetAllUsers))
	router.PATCH("/api/users/profile", middleware.Authenticate(users.UpdateOwnProfile))
	router.PATCH("/api/users/accept-terms", middleware.Authenticate(users.AcceptTerms))
	router.PATCH("/api/user/:userid", middleware.RequireRole("admin", users.UpdateUser))
	router.PATCH("/api/user/:userid/toggle-status", middleware.RequireRole("admin", users.ToggleStatus))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", ratelim.RateLimit(products.GetProducts))
	router.GET("/api/products/indicators", middleware.RequireRole("admin", products.GetIndicators))
	router.GET("/api/product/:productid", ratelim.RateLimit(products.GetProduct))
	router.POST("/api/products", middleware.RequireRole("admin", products.CreateProduct))
	router.PATCH("/api/product/:productid", middleware.RequireRole("admin", products.UpdateProduct))
	router.DELETE("/api/product/:productid", middleware.RequireRole("admin", products.DeleteProduct))
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.GET("/api/cart/summary", middleware.Authenticate(cart.GetCartSummary))
	router.POST("/api/cart/items", middleware.Authenticate(cart.AddToCart))
	router.PUT("/api/cart/items/:productid", middleware.Authenticate(cart.UpdateCartItem))
	router.DELETE("/api/cart/items/:productid", middleware.Authenticate(cart.RemoveCartItem))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
	router.GET("/ws/cart", cart.WatchCart)
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/orders", ratelim.RateLimit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/orders/my-orders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders", middleware.RequireRole("admin", orders.GetOrders))
	router.GET("/api/order/:orderid", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/order/:orderid/invoice", middleware.Authenticate(orders.PrintInvoice))
	router.PATCH("/api/order/:orderid/status", middleware.RequireRole("admin", orders.UpdateOrderStatus))
}

func AddNavRoutes(router *httprouter.Router) {
	router.GET("/api/nav/breadcrumbs", ratelim.RateLimit(nav.GetBreadcrumbs))
}
