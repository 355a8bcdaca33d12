package routes

import (
	"net/http"

	"swaadha/admin"
	"swaadha/attributes"
	"swaadha/auth"
	"swaadha/banners"
	"swaadha/brands"
	"swaadha/cart"
	"swaadha/catalog"
	"swaadha/checkout"
	"swaadha/hero"
	"swaadha/insta"
	"swaadha/middleware"
	"swaadha/models"
	"swaadha/offers"
	"swaadha/orderfeed"
	"swaadha/orders"
	"swaadha/pos"
	"swaadha/products"
	"swaadha/ratelim"
	"swaadha/reports"
	"swaadha/reviews"
	"swaadha/wishlist"

	"github.com/julienschmidt/httprouter"
)

// staff covers both console roles; subadmin page access is enforced by
// the console UI against the pages list on the account.
var staff = []models.Role{models.RoleAdmin, models.RoleSubadmin}

func adminOnly(h httprouter.Handle) httprouter.Handle {
	return middleware.RequireRole(models.RoleAdmin)(h)
}

func staffOnly(h httprouter.Handle) httprouter.Handle {
	return middleware.RequireRole(staff...)(h)
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
	router.ServeFiles("/static/categorypic/*filepath", http.Dir("static/categorypic"))
	router.ServeFiles("/static/brandpic/*filepath", http.Dir("static/brandpic"))
	router.ServeFiles("/static/bannerpic/*filepath", http.Dir("static/bannerpic"))
	router.ServeFiles("/static/heropic/*filepath", http.Dir("static/heropic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/users", adminOnly(admin.GetUsers))
	router.PATCH("/api/admin/users/:id/block", adminOnly(admin.BlockUser))
	router.PATCH("/api/admin/users/:id/unblock", adminOnly(admin.UnblockUser))

	router.GET("/api/admin/subadmins", adminOnly(admin.GetSubadmins))
	router.POST("/api/admin/subadmins", adminOnly(admin.CreateSubadmin))
	router.PUT("/api/admin/subadmins/:id", adminOnly(admin.UpdateSubadmin))
	router.DELETE("/api/admin/subadmins/:id", adminOnly(admin.DeleteSubadmin))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/categories", catalog.GetCategories)
	router.POST("/api/categories", staffOnly(catalog.CreateCategory))
	router.PUT("/api/categories/:id", staffOnly(catalog.UpdateCategory))
	router.DELETE("/api/categories/:id", staffOnly(catalog.DeleteCategory))
	router.PATCH("/api/categories/:id/home", staffOnly(catalog.ToggleCategoryHome))

	router.GET("/api/subcategories", catalog.GetSubcategories)
	router.POST("/api/subcategories", staffOnly(catalog.CreateSubcategory))
	router.PUT("/api/subcategories/:id", staffOnly(catalog.UpdateSubcategory))
	router.DELETE("/api/subcategories/:id", staffOnly(catalog.DeleteSubcategory))

	router.GET("/api/subsubcategories", catalog.GetSubSubcategories)
	router.POST("/api/subsubcategories", staffOnly(catalog.CreateSubSubcategory))
	router.PUT("/api/subsubcategories/:id", staffOnly(catalog.UpdateSubSubcategory))
	router.DELETE("/api/subsubcategories/:id", staffOnly(catalog.DeleteSubSubcategory))
}

func AddBrandRoutes(router *httprouter.Router) {
	router.GET("/api/brands", brands.GetBrands)
	router.POST("/api/brands", staffOnly(brands.CreateBrand))
	router.PUT("/api/brands/:id", staffOnly(brands.UpdateBrand))
	router.DELETE("/api/brands/:id", staffOnly(brands.DeleteBrand))
}

func AddAttributeRoutes(router *httprouter.Router) {
	router.GET("/api/attributes", attributes.GetAttributes)
	router.POST("/api/attributes", staffOnly(attributes.CreateAttribute))
	router.DELETE("/api/attributes/:id", staffOnly(attributes.DeleteAttribute))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", middleware.OptionalAuth(products.GetProducts))
	router.GET("/api/products/:id", products.GetProduct)
	router.GET("/api/home", products.GetHomeCatalog)

	router.POST("/api/products", staffOnly(products.CreateProduct))
	router.PUT("/api/products/:id", staffOnly(products.UpdateProduct))
	router.DELETE("/api/products/:id", staffOnly(products.DeleteProduct))
	router.PATCH("/api/products/:id/active", staffOnly(products.ToggleActive))

	router.GET("/api/restock", staffOnly(products.RestockList))
	router.PATCH("/api/restock/:id", staffOnly(products.AdjustStock))
	router.GET("/api/products/:id/labels", staffOnly(products.BarcodeLabels))
}

func AddReviewRoutes(router *httprouter.Router) {
	router.GET("/api/products/:id/reviews", reviews.GetReviews)
	router.POST("/api/products/:id/reviews", middleware.Authenticate(reviews.CreateReview))
	router.DELETE("/api/products/:id/reviews/:reviewId", middleware.Authenticate(reviews.DeleteReview))
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.GET("/api/cart/totals", middleware.Authenticate(cart.GetTotals))
	router.POST("/api/cart", middleware.Authenticate(cart.AddToCart))
	router.POST("/api/cart/merge", middleware.Authenticate(cart.MergeCart))
	router.PATCH("/api/cart/:id", middleware.Authenticate(cart.UpdateQuantity))
	router.DELETE("/api/cart/:id", middleware.Authenticate(cart.RemoveLine))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
}

func AddWishlistRoutes(router *httprouter.Router) {
	router.GET("/api/wishlist", middleware.Authenticate(wishlist.GetWishlist))
	router.POST("/api/wishlist", middleware.Authenticate(wishlist.AddToWishlist))
	router.DELETE("/api/wishlist/:productId", middleware.Authenticate(wishlist.RemoveFromWishlist))
}

func AddCheckoutRoutes(router *httprouter.Router) {
	router.POST("/api/checkout", ratelim.RateLimit(middleware.Authenticate(checkout.Checkout)))
	router.POST("/api/checkout/confirm", ratelim.RateLimit(middleware.Authenticate(checkout.ConfirmPayment)))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.GET("/api/orders", staffOnly(orders.GetOrders))
	router.GET("/api/orders/:id", staffOnly(orders.GetOrder))
	router.PATCH("/api/orders/:id/status", staffOnly(orders.UpdateStatus))
	router.GET("/api/my/orders", middleware.Authenticate(orders.MyOrders))
}

func AddPosRoutes(router *httprouter.Router) {
	router.POST("/api/pos/orders", staffOnly(pos.PlaceOrder))
	router.GET("/api/pos/orders", staffOnly(pos.GetPosOrders))
	router.GET("/api/pos/customers", staffOnly(pos.GetCustomers))
	router.POST("/api/pos/customers", staffOnly(pos.CreateCustomer))
}

func AddOfferRoutes(router *httprouter.Router) {
	router.GET("/api/offers", offers.GetOffers)
	router.POST("/api/offers", staffOnly(offers.CreateOffer))
	router.PUT("/api/offers/:id", staffOnly(offers.UpdateOffer))
	router.PATCH("/api/offers/:id/toggle", staffOnly(offers.ToggleOffer))
	router.DELETE("/api/offers/:id", staffOnly(offers.DeleteOffer))
}

func AddBannerRoutes(router *httprouter.Router) {
	router.GET("/api/banners", banners.GetBanners)
	router.POST("/api/banners", staffOnly(banners.CreateBanner))
	router.PATCH("/api/banners/:id/toggle", staffOnly(banners.ToggleBanner))
	router.DELETE("/api/banners/:id", staffOnly(banners.DeleteBanner))

	router.GET("/api/notifbanner", banners.GetNotifBanner)
	router.PUT("/api/notifbanner", staffOnly(banners.UpsertNotifBanner))
}

func AddHeroRoutes(router *httprouter.Router) {
	router.GET("/api/hero", hero.GetSliders)
	router.POST("/api/hero", staffOnly(hero.CreateSlider))
	router.PATCH("/api/hero/:id/activate", staffOnly(hero.ActivateSlider))
	router.DELETE("/api/hero/:id", staffOnly(hero.DeleteSlider))
}

func AddInstaRoutes(router *httprouter.Router) {
	router.GET("/api/insta", insta.GetLinks)
	router.POST("/api/insta", staffOnly(insta.CreateLink))
	router.PATCH("/api/insta/:id/toggle", staffOnly(insta.TogglePublished))
	router.DELETE("/api/insta/:id", staffOnly(insta.DeleteLink))
}

func AddReportRoutes(router *httprouter.Router) {
	router.GET("/api/reports/dashboard", staffOnly(reports.Dashboard))
	router.GET("/api/reports/orders", staffOnly(reports.OrderReport))
	router.GET("/api/reports/products", staffOnly(reports.ProductReport))
}

func AddOrderFeedRoutes(router *httprouter.Router, hub *orderfeed.Hub) {
	router.GET("/ws/orders", orderfeed.WebSocketHandler(hub))
}
