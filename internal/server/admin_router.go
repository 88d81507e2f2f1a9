package server

import (
	"strconv"

	"github.com/kataras/iris/v12"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/example/ministore/internal/auth"
	"github.com/example/ministore/internal/config"
	"github.com/example/ministore/internal/datamodels/user"
	"github.com/example/ministore/internal/repository/mongodb"
	"github.com/example/ministore/internal/service"
)

// RegisterAdminRoutes registers the admin HTTP routes, usually served on
// a separate port from the storefront. All management endpoints require a
// JWT carrying the admin role.
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config, db *mongo.Database) {
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)

	userSvc := service.NewUserService(userRepo, &cfg.JWT)
	productSvc := service.NewProductService(productRepo)
	orderSvc := service.NewOrderService(orderRepo)

	api := app.Party("/api")

	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// Admin login. The role requirement is part of the authenticate
	// call: a shopper credential fails here like a wrong password.
	api.Post("/login", func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		token, id, err := userSvc.Login(ctx.Request().Context(), req.Username, req.Password, user.RoleAdmin)
		if err != nil {
			fail(ctx, err)
			return
		}
		zap.L().Info("admin logged in", zap.String("username", id.Username))
		ok(ctx, iris.Map{"token": token, "identity": id})
	})

	authAPI := api.Party("/", func(ctx iris.Context) {
		token := ctx.GetHeader("Authorization")
		if token == "" {
			ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"code": 401, "msg": "missing token"})
			return
		}
		claims, err := auth.ParseToken(&cfg.JWT, token)
		if err != nil || claims.Role != user.RoleAdmin {
			ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"code": 401, "msg": "invalid token"})
			return
		}
		ctx.Values().Set("user_id", claims.UserID)
		ctx.Values().Set("username", claims.Username)
		ctx.Next()
	})

	// ---------- user management ----------

	authAPI.Post("/users", func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		u, err := userSvc.Create(ctx.Request().Context(), req.Username, req.Password, req.Role)
		if err != nil {
			fail(ctx, err)
			return
		}
		zap.L().Info("user created",
			zap.String("username", u.Username),
			zap.String("role", u.Role),
			zap.String("by", ctx.Values().GetString("username")))
		ok(ctx, u)
	})

	authAPI.Get("/users", func(ctx iris.Context) {
		list, err := userSvc.List(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, list)
	})

	authAPI.Get("/users/{id:string}/orders", func(ctx iris.Context) {
		uid, err := primitive.ObjectIDFromHex(ctx.Params().Get("id"))
		if err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"code": 400, "msg": "invalid user id"})
			return
		}
		list, err := orderSvc.ListByUser(ctx.Request().Context(), uid)
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, list)
	})

	// ---------- catalog management ----------

	authAPI.Post("/products", func(ctx iris.Context) {
		var req struct {
			Name  string  `json:"name"`
			Price float64 `json:"price"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		p, err := productSvc.Add(ctx.Request().Context(), req.Name, req.Price)
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, p)
	})

	authAPI.Get("/products", func(ctx iris.Context) {
		list, err := productSvc.List(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, list)
	})

	// ---------- orders and stats ----------

	authAPI.Get("/orders", func(ctx iris.Context) {
		limit, err := strconv.Atoi(ctx.URLParamDefault("limit", "20"))
		if err != nil || limit <= 0 {
			limit = 20
		}
		list, err := orderSvc.ListRecent(ctx.Request().Context(), limit)
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, list)
	})

	authAPI.Get("/stats", func(ctx iris.Context) {
		ok(ctx, service.GetMonitor().Snapshot())
	})
}
