package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Doneddie/kampala-closet/handlers"
	"github.com/Doneddie/kampala-closet/repository"
	"github.com/Doneddie/kampala-closet/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var db *sql.DB
var rdb *redis.Client

func main() {
	_ = godotenv.Load()
	initLogger()
	initDB()
	defer db.Close()
	defer rdb.Close()

	uR, err := repository.NewUserRepository(db)
	sR, err2 := repository.NewSessionRepository(rdb, context.Background())
	pR, _ := repository.NewProductRepository(db)
	cartR, _ := repository.NewCartRepository(rdb, context.Background())
	if err != nil {
		panic(err)
	}
	zap.S().Infof("db connected")
	if err2 != nil {
		panic(err2)
	}
	zap.S().Infof("redis connected")

	smtpPort, _ := strconv.Atoi(getenv("SMTP_PORT", "587"))
	hp := handlers.HandlerParams{
		UsrService:      services.NewUserService(uR, sR),
		CatalogService:  services.NewCatalogService(pR),
		CrtService:      services.NewCartService(pR, cartR),
		CheckoutService: services.NewCheckoutService(cartR, getenv("WHATSAPP_PHONE", "1234567890")),
		MailService: services.NewMailService(
			os.Getenv("SMTP_HOST"),
			smtpPort,
			os.Getenv("SMTP_USERNAME"),
			os.Getenv("SMTP_PASSWORD"),
			getenv("CONTACT_FROM", "noreply@kampala-closet.com"),
			getenv("CONTACT_TO", "hello@boutique.com"),
		),
	}
	ha := handlers.NewHandler(hp)
	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)
	subAuth := router.NewRoute().Subrouter()
	subAuth.Use(ha.AuthMiddleware)
	subManAuth := router.NewRoute().Subrouter()
	subManAuth.Use(ha.ManagerAuthMiddleware)

	router.HandleFunc("/", ha.Welcome)
	router.HandleFunc("/users/signin", ha.Signin).Methods("POST")
	router.HandleFunc("/users/signup", ha.Signup).Methods("POST")
	subAuth.HandleFunc("/users/refresh", ha.Refresh)
	subAuth.HandleFunc("/users/logout", ha.Logout)
	subAuth.HandleFunc("/users/change_password", ha.ChangePassword)
	subAuth.HandleFunc("/users/me", ha.Me).Methods("GET")

	router.HandleFunc("/products", ha.GetProducts).Methods("GET")
	router.HandleFunc("/products/featured", ha.GetFeaturedProducts).Methods("GET")
	router.HandleFunc("/products/{id}", ha.GetProduct).Methods("GET")
	subManAuth.HandleFunc("/products/create", ha.CreateProduct).Methods("POST")
	subManAuth.HandleFunc("/products/{id}/update", ha.UpdateProduct).Methods("POST")
	subManAuth.HandleFunc("/products/{id}/delete", ha.DeleteProduct).Methods("DELETE")
	router.HandleFunc("/categories", ha.GetCategories).Methods("GET")

	router.HandleFunc("/cart", ha.GetCart).Methods("GET")
	subAuth.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	subAuth.HandleFunc("/cart/checkout", ha.Checkout).Methods("POST")
	subAuth.HandleFunc("/cart/{id}/quantity", ha.UpdateCartItemQuantity).Methods("POST")
	subAuth.HandleFunc("/cart/{id}", ha.DeleteCartItem).Methods("DELETE")

	router.HandleFunc("/contact", ha.Contact).Methods("POST")

	addr := getenv("LISTEN_ADDR", ":8080")
	zap.S().Infof("starting server on %s", addr)
	http.ListenAndServe(addr, router)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func initLogger() {
	var cfg zap.Config
	if getenv("LOG_MODE", "development") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

func initDB() {
	host := os.Getenv("DATABASE_HOST")
	port := os.Getenv("DATABASE_PORT")
	user := os.Getenv("DATABASE_USER")
	pass := os.Getenv("DATABASE_PASSWORD")
	dbname := os.Getenv("DATABASE_NAME")
	var err error

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, dbname)
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		panic(err)
	}

	redis_host := os.Getenv("REDIS_HOST")
	redis_port := os.Getenv("REDIS_PORT")

	rdb = redis.NewClient(&redis.Options{
		Addr:     redis_host + ":" + redis_port,
		Password: "",
		DB:       0,
	})
	ctx, cncl := context.WithTimeout(context.Background(), 5*time.Second)
	defer cncl()
	if status := rdb.Ping(ctx); status.Err() != nil {
		panic("redis is not working: " + status.Err().Error())
	}
}
