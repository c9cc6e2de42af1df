package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/Doneddie/kampala-closet/entities"
	"github.com/Doneddie/kampala-closet/models"
	"github.com/Doneddie/kampala-closet/services"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handler struct {
	us   services.UserService
	cats services.CatalogService
	crs  services.CartService
	cks  services.CheckoutService
	ms   services.MailService
}

type HandlerParams struct {
	UsrService      services.UserService
	CatalogService  services.CatalogService
	CrtService      services.CartService
	CheckoutService services.CheckoutService
	MailService     services.MailService
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		us:   params.UsrService,
		cats: params.CatalogService,
		crs:  params.CrtService,
		cks:  params.CheckoutService,
		ms:   params.MailService,
	}
}

// defaultPriceCap stands in for "no upper bound" when max_price is absent.
var defaultPriceCap = decimal.NewFromInt(1000000)

func parseFilterCriteria(query url.Values) (criteria entities.FilterCriteria, err error) {
	criteria = entities.FilterCriteria{
		Search:   query.Get("q"),
		Category: query.Get("category"),
		PriceMin: decimal.Zero,
		PriceMax: defaultPriceCap,
	}
	if criteria.Category == "" {
		criteria.Category = entities.CategoryAll
	}
	if v := query.Get("min_price"); v != "" {
		d, e := decimal.NewFromString(v)
		if e != nil || d.IsNegative() {
			err = models.ErrBadRequest
			return
		}
		criteria.PriceMin = d
	}
	if v := query.Get("max_price"); v != "" {
		d, e := decimal.NewFromString(v)
		if e != nil || d.IsNegative() {
			err = models.ErrBadRequest
			return
		}
		criteria.PriceMax = d
	}
	return
}

func (h *Handler) currentUserEmail(r *http.Request) (email string, ok bool) {
	c, err := r.Cookie("sessionId")
	if err != nil {
		return
	}
	user, ex := h.us.CurrentUser(c.Value)
	if !ex {
		return
	}
	return user.Email, true
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	name := "guest"
	if email, ok := h.currentUserEmail(r); ok {
		name = email
	}
	w.Write([]byte("Hello, " + name + "!"))
}

//user

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		zap.S().Errorf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	creds.Role = "user"

	_, err = h.us.SignupRequest(creds)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	var sessionId string

	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		zap.S().Errorf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	_, sessionId, err = h.us.SigninRequest(creds.Email, creds.Password)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   sessionId,
		Path:    "/",
		Expires: time.Now().Add(24 * time.Hour),
		// redis 30 min
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	sessionId := c.Value
	err := h.us.RefreshRequest(sessionId)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   sessionId,
		Path:    "/",
		Expires: time.Now().Add(24 * time.Hour),
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	sessionId := c.Value

	err := h.us.DeleteSessionRequest(sessionId)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   "",
		Path:    "/",
		Expires: time.Now(),
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	sessionId := c.Value

	data := models.PasswordData{}
	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		zap.S().Errorf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err = h.us.ChangePasswordRequest(sessionId, data.OldPassword, data.NewPassword)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   "",
		Path:    "/",
		Expires: time.Now(),
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("sessionId")
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	user, ex := h.us.CurrentUser(c.Value)
	if !ex {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJson(w, user)
}

// catalog

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseFilterCriteria(r.URL.Query())
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	prods, err := h.cats.GetCatalog(criteria)
	if err != nil {
		// a failed fetch degrades to an empty catalog, the view never breaks
		zap.S().Errorf("GetProducts: %v", err)
		prods = []entities.Product{}
	}
	if prods == nil {
		prods = []entities.Product{}
	}
	writeJson(w, prods)
}

func (h *Handler) GetFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	limit := 6
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		limit = n
	}
	prods, err := h.cats.GetFeaturedProducts(limit)
	if err != nil {
		zap.S().Errorf("GetFeaturedProducts: %v", err)
		prods = []entities.Product{}
	}
	if prods == nil {
		prods = []entities.Product{}
	}
	writeJson(w, prods)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	prod, err := h.cats.GetProductById(vars["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, prod)
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	facets, err := h.cats.GetFacets()
	if err != nil {
		zap.S().Errorf("GetCategories: %v", err)
		facets = services.CategoryFacets(nil)
	}
	writeJson(w, facets)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.ProductRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		zap.S().Errorf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	newId, err := h.cats.CreateProduct(req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, map[string]string{"id": newId})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req models.ProductRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		zap.S().Errorf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	updated, err := h.cats.UpdateProductById(vars["id"], req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, updated)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := h.cats.DeleteProductById(vars["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// cart

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	emptyCart := entities.CartResponse{
		Items:      []entities.CartLineItem{},
		TotalPrice: decimal.Zero,
	}
	email, ok := h.currentUserEmail(r)
	if !ok {
		// no user means an empty cart, not an error
		writeJson(w, emptyCart)
		return
	}
	cart, err := h.crs.GetCartItems(email)
	if err != nil {
		zap.S().Errorf("GetCart: %v", err)
		writeJson(w, emptyCart)
		return
	}
	writeJson(w, cart)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	email, ok := h.currentUserEmail(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	req := models.CartItemRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		zap.S().Errorf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = h.crs.AddCartItem(email, req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeCart(w, email)
}

func (h *Handler) UpdateCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	email, ok := h.currentUserEmail(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	req := models.QuantityRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		zap.S().Errorf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = h.crs.SetItemQuantity(email, vars["id"], req.Quantity)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeCart(w, email)
}

func (h *Handler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	email, ok := h.currentUserEmail(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	err := h.crs.RemoveCartItem(email, vars["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeCart(w, email)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	email, ok := h.currentUserEmail(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	resp, err := h.cks.Checkout(email)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, resp)
}

// writeCart responds with the cart reloaded from the store, so totals always
// reflect the state after the mutation fully applied.
func (h *Handler) writeCart(w http.ResponseWriter, email string) {
	cart, err := h.crs.GetCartItems(email)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJson(w, cart)
}

// contact

func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	req := models.ContactRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		zap.S().Errorf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	// fire-and-forget: the sender logs failures, the form never waits on SMTP
	go func() {
		if e := h.ms.SendContactMessage(req); e != nil {
			zap.S().Errorf("Contact: %v", e)
		}
	}()
	w.WriteHeader(http.StatusOK)
}

// middleware

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, e := h.us.CheckAuth(sessionId.Value)
		if !ok {
			if e != nil {
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ManagerAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		access, e := h.us.CheckAccess(sessionId.Value)
		if !access {
			if e != nil {
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				zap.S().Errorf("panic occured: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJson(w http.ResponseWriter, data any) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		zap.S().Errorf("Marshal err:%v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Write(jsonData)
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrServerError):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	case errors.Is(err, models.ErrUnautorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFoundError):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, err.Error(), http.StatusNotAcceptable)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
