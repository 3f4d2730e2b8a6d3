package routes

import (
	"github.com/gorilla/mux"
	"github.com/retailnet/orders-api/app/configs"
	"github.com/retailnet/orders-api/app/handlers"
	"github.com/retailnet/orders-api/app/middlewares"
	"github.com/retailnet/orders-api/app/repositories"
	"github.com/retailnet/orders-api/app/services"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, env configs.ENV) *mux.Router {
	rnd := render.New()

	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)
	shopRepo := repositories.NewShopRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	productInfoRepo := repositories.NewProductInfoRepository(db)
	parameterRepo := repositories.NewParameterRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)

	mailer := services.NewMailer(services.MailConfig{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})
	notifier := services.NewNotificationService(mailer)

	importer := services.NewImporterService(db, userRepo, shopRepo, categoryRepo, productRepo, productInfoRepo, parameterRepo, notifier)
	basketSvc := services.NewBasketService(db, orderRepo, orderItemRepo, productInfoRepo)
	orderSvc := services.NewOrderService(db, orderRepo, orderItemRepo, contactRepo, shopRepo, userRepo, notifier)

	catalog := handlers.NewCatalogHandler(shopRepo, categoryRepo, productInfoRepo, rnd)
	partner := handlers.NewPartnerHandler(importer, orderSvc, shopRepo, rnd)
	basket := handlers.NewBasketHandler(basketSvc, rnd)
	order := handlers.NewOrderHandler(orderSvc, rnd)
	contact := handlers.NewContactHandler(contactRepo, rnd)

	router := mux.NewRouter()

	router.HandleFunc("/shops", catalog.ListShops).Methods("GET")
	router.HandleFunc("/category", catalog.ListCategories).Methods("GET")
	router.HandleFunc("/products", catalog.ListProducts).Methods("GET")

	priv := router.NewRoute().Subrouter()
	priv.Use(middlewares.Auth(tokenRepo, rnd))

	priv.HandleFunc("/partner/update", partner.Update).Methods("POST")
	priv.HandleFunc("/partner/state", partner.GetState).Methods("GET")
	priv.HandleFunc("/partner/state", partner.SetState).Methods("POST")
	priv.HandleFunc("/partner/orders", partner.Orders).Methods("GET")

	priv.HandleFunc("/basket", basket.Get).Methods("GET")
	priv.HandleFunc("/basket", basket.AddItems).Methods("POST", "PUT")
	priv.HandleFunc("/basket", basket.DeleteItems).Methods("DELETE")

	priv.HandleFunc("/order", order.List).Methods("GET")
	priv.HandleFunc("/order", order.Place).Methods("POST")
	priv.HandleFunc("/order/{id}/state", order.Advance).Methods("POST")

	priv.HandleFunc("/user/contact", contact.List).Methods("GET")
	priv.HandleFunc("/user/contact", contact.Create).Methods("POST")

	return router
}
