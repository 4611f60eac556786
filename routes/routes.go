package routes

import (
	"nexstore/controllers/admin"
	"nexstore/controllers/auth"
	"nexstore/controllers/catalog"
	"nexstore/controllers/orders"
	"nexstore/controllers/sms"
	"nexstore/controllers/user"
	"nexstore/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", middlewares.AuthRateLimiter(5), auth.Signup)
	authRoutes.Post("/login", middlewares.AuthRateLimiter(10), auth.Login)
	authRoutes.Post("/reset-password", middlewares.AuthRateLimiter(5), auth.ResetPassword)

	api.Get("/packages/list", catalog.List)

	// SMS ingestion from the phone forwarder app
	api.Post("/sms/receive", sms.Receive)

	userRoutes := api.Group("/user", middlewares.UserAuth)
	userRoutes.Get("/profile", user.Profile)
	userRoutes.Get("/wallet", user.Wallet)
	userRoutes.Get("/orders", user.Orders)

	orderRoutes := api.Group("/orders", middlewares.UserAuth)
	orderRoutes.Post("/create", orders.Create)
	orderRoutes.Post("/wallet-load", orders.WalletLoad)
	orderRoutes.Post("/verify-payment", orders.VerifyPayment)
	orderRoutes.Get("/:id", orders.Get)
	orderRoutes.Put("/:id/uid", orders.UpdateUID)

	api.Post("/admin/login", middlewares.AuthRateLimiter(10), auth.AdminLogin)
	api.Post("/admin/init", admin.Init)

	adminRoutes := api.Group("/admin", middlewares.AdminAuth)
	adminRoutes.Post("/reset-password", auth.ResetPassword)
	adminRoutes.Get("/dashboard", admin.Dashboard)
	adminRoutes.Get("/actions", admin.ListActions)

	adminRoutes.Get("/orders", admin.ListOrders)
	adminRoutes.Get("/orders/:id", admin.GetOrder)
	adminRoutes.Put("/orders/:id", admin.UpdateOrder)
	adminRoutes.Post("/orders/:id/mark-success", admin.MarkSuccess)
	adminRoutes.Post("/orders/:id/retry", admin.Retry)
	adminRoutes.Post("/orders/:id/refund", admin.Refund)
	adminRoutes.Post("/orders/:id/process", admin.Process)

	adminRoutes.Get("/automation/queue", admin.AutomationQueue)
	adminRoutes.Post("/automation/process-all", admin.ProcessAll)
	adminRoutes.Get("/review-queue", admin.ReviewQueue)

	adminRoutes.Get("/sms", admin.ListSms)
	adminRoutes.Post("/sms/input", admin.InputSms)
	adminRoutes.Post("/sms/match/:smsId", admin.MatchSms)

	adminRoutes.Get("/packages", admin.ListPackages)
	adminRoutes.Post("/packages", admin.CreatePackage)
	adminRoutes.Put("/packages/:id", admin.UpdatePackage)
	adminRoutes.Delete("/packages/:id", admin.DeletePackage)

	adminRoutes.Get("/garena-accounts", admin.ListGarenaAccounts)
	adminRoutes.Post("/garena-accounts", admin.CreateGarenaAccount)
	adminRoutes.Put("/garena-accounts/:id", admin.UpdateGarenaAccount)
	adminRoutes.Delete("/garena-accounts/:id", admin.DeleteGarenaAccount)

	adminRoutes.Get("/users", admin.ListUsers)
	adminRoutes.Post("/users", admin.CreateUser)
	adminRoutes.Put("/users/:id", admin.UpdateUser)
	adminRoutes.Delete("/users/:id", admin.DeleteUser)
	adminRoutes.Post("/users/:id/wallet/recharge", admin.Recharge)
	adminRoutes.Post("/users/:id/wallet/redeem", admin.Redeem)
}
