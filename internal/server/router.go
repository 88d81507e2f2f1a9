package server

import (
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/sessions"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/example/ministore/internal/config"
	"github.com/example/ministore/internal/datamodels/user"
	"github.com/example/ministore/internal/repository/mongodb"
	"github.com/example/ministore/internal/service"
	"github.com/example/ministore/internal/session"
	webcontrollers "github.com/example/ministore/web/controllers"
)

// RegisterRoutes registers the storefront HTTP routes. Shoppers log in
// with role "user"; their identity and cart live in a per-cookie session.
func RegisterRoutes(app *iris.Application, cfg *config.Config, db *mongo.Database, mgr *session.Manager) {
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)

	userSvc := service.NewUserService(userRepo, &cfg.JWT)
	productSvc := service.NewProductService(productRepo)
	orderSvc := service.NewOrderService(orderRepo)

	sess := sessions.New(sessions.Config{
		Cookie:  "ministore_session",
		Expires: 24 * time.Hour,
	})
	app.Use(sess.Handler())

	app.Get("/", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "msg": "mini store"})
	})

	// Form-style login/logout for browser frontends.
	userCtrl := webcontrollers.NewUserController(userSvc, mgr)
	app.Post("/user/login", userCtrl.PostLogin)
	app.Get("/user/logout", userCtrl.Logout)

	api := app.Party("/api")

	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// JSON login for the store tab. The required role is part of the
	// authenticate call: an admin credential is rejected here exactly
	// like a wrong password.
	api.Post("/login", func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		id, err := userSvc.Authenticate(ctx.Request().Context(), req.Username, req.Password, user.RoleUser)
		if err != nil {
			fail(ctx, err)
			return
		}
		s := mgr.Get(sess.Start(ctx).ID())
		s.SetUser(id)
		s.ClearCart()
		zap.L().Info("shopper logged in", zap.String("username", id.Username))
		ok(ctx, id)
	})

	// Everything below requires a logged-in shopper session.
	authAPI := api.Party("/", func(ctx iris.Context) {
		s := mgr.Get(sess.Start(ctx).ID())
		if s.User() == nil {
			ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"code": 401, "msg": "login required"})
			return
		}
		ctx.Values().Set("session", s)
		ctx.Next()
	})

	current := func(ctx iris.Context) *session.Session {
		return ctx.Values().Get("session").(*session.Session)
	}

	authAPI.Get("/products", func(ctx iris.Context) {
		list, err := productSvc.List(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, list)
	})

	// Add to cart: the product is looked up now and its name/price are
	// snapshotted into the session cart.
	authAPI.Post("/cart", func(ctx iris.Context) {
		var req struct {
			ProductID string `json:"product_id"`
			Qty       int64  `json:"qty"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if req.Qty < 1 {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"code": 400, "msg": "quantity must be at least 1"})
			return
		}
		pid, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"code": 400, "msg": "invalid product id"})
			return
		}
		p, err := productSvc.GetByID(ctx.Request().Context(), pid)
		if err != nil {
			fail(ctx, err)
			return
		}
		s := current(ctx)
		s.AddItem(p, req.Qty)
		ok(ctx, iris.Map{"items": s.Items(), "total": s.Total()})
	})

	authAPI.Get("/cart", func(ctx iris.Context) {
		s := current(ctx)
		ok(ctx, iris.Map{"items": s.Items(), "total": s.Total()})
	})

	authAPI.Delete("/cart", func(ctx iris.Context) {
		current(ctx).ClearCart()
		ok(ctx, iris.Map{"items": []struct{}{}, "total": 0})
	})

	// Place the order from the session cart. The cart is cleared only
	// after the store accepted the record, so a failed placement stays
	// retryable.
	authAPI.Post("/orders", func(ctx iris.Context) {
		s := current(ctx)
		id := s.User()
		o, err := orderSvc.Place(ctx.Request().Context(), id.ID, id.Username, s.Items())
		if err != nil {
			fail(ctx, err)
			return
		}
		s.ClearCart()
		zap.L().Info("order placed",
			zap.String("username", id.Username),
			zap.String("order_id", o.ID.Hex()),
			zap.Float64("total", o.Total))
		ok(ctx, o)
	})

	authAPI.Get("/orders", func(ctx iris.Context) {
		id := current(ctx).User()
		list, err := orderSvc.ListByUser(ctx.Request().Context(), id.ID)
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, list)
	})
}
