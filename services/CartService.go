package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Doneddie/kampala-closet/entities"
	"github.com/Doneddie/kampala-closet/models"
	"github.com/Doneddie/kampala-closet/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TotalQuantity sums the quantities of the given line items, 0 for an empty
// cart.
func TotalQuantity(items []entities.CartLineItem) int {
	total := 0
	for _, item := range items {
		total = total + item.Quantity
	}
	return total
}

// TotalPrice sums unit price times quantity over the items and rounds the
// result to two decimals (half up). Accumulation is exact, rounding happens
// once at the end.
func TotalPrice(items []entities.CartLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// LineSubtotal is unit price times quantity rounded to two decimals.
func LineSubtotal(item entities.CartLineItem) decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
}

// BuildOrderSummary renders one line per item in input order followed by the
// formatted total. A missing size or color renders as "No size" / "No color".
func BuildOrderSummary(items []entities.CartLineItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		size := item.Size
		if size == "" {
			size = "No size"
		}
		color := item.Color
		if color == "" {
			color = "No color"
		}
		lines = append(lines, fmt.Sprintf("%s (%s, %s) - Qty: %d - $%s",
			item.ProductName, size, color, item.Quantity, LineSubtotal(item).StringFixed(2)))
	}
	total := "Total: $" + TotalPrice(items).StringFixed(2)
	if len(lines) == 0 {
		return total
	}
	return strings.Join(lines, "\n") + "\n\n" + total
}

// cartLocks serializes mutations per user so rapid quantity updates apply in
// order instead of racing each other.
type cartLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (cl *cartLocks) lock(userEmail string) *sync.Mutex {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	l, ok := cl.m[userEmail]
	if !ok {
		l = &sync.Mutex{}
		cl.m[userEmail] = l
	}
	return l
}

type CartService struct {
	pr    repository.ProductRepository
	cr    repository.CartRepository
	locks *cartLocks
}

func NewCartService(productRepo repository.ProductRepository, cartRepo repository.CartRepository) CartService {
	return CartService{
		pr:    productRepo,
		cr:    cartRepo,
		locks: &cartLocks{m: make(map[string]*sync.Mutex)},
	}
}

// GetCartItems reloads the stored cart and recomputes the totals from it, so
// the response never reflects a half-applied mutation.
func (cs *CartService) GetCartItems(userEmail string) (resp entities.CartResponse, err error) {
	items, e := cs.cr.ListCartItems(userEmail)
	if e != nil {
		err = e
		return
	}
	if items == nil {
		items = []entities.CartLineItem{}
	}
	resp = entities.CartResponse{
		Items:         items,
		TotalQuantity: TotalQuantity(items),
		TotalPrice:    TotalPrice(items),
	}
	return
}

// AddCartItem creates a line item snapshotting the product's name, image and
// price at add-time.
func (cs *CartService) AddCartItem(userEmail string, req models.CartItemRequest) (err error) {
	l := cs.locks.lock(userEmail)
	l.Lock()
	defer l.Unlock()

	p, ex, e := cs.pr.GetProductById(req.ProductId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		zap.S().Errorf("AddCartItem: product does not exist")
		err = models.ErrBadRequest
		return
	}
	if !p.InStock {
		zap.S().Errorf("AddCartItem: product is out of stock")
		err = models.ErrNotAllowed
		return
	}
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	image := p.ImageUrl
	if image == "" {
		image = entities.PlaceholderImage
	}
	item := entities.CartLineItem{
		Id:           uuid.NewString(),
		ProductId:    p.Id,
		ProductName:  p.Name,
		ProductImage: image,
		Price:        p.Price,
		Quantity:     quantity,
		Size:         req.Size,
		Color:        req.Color,
		UserEmail:    userEmail,
		AddedAt:      time.Now().UTC(),
	}
	err = cs.cr.SetCartItem(userEmail, item)
	return
}

// SetItemQuantity replaces the item's quantity; a quantity of zero or less
// removes the item instead of storing a zero.
func (cs *CartService) SetItemQuantity(userEmail string, itemId string, quantity int) (err error) {
	l := cs.locks.lock(userEmail)
	l.Lock()
	defer l.Unlock()

	if quantity <= 0 {
		err = cs.cr.RemoveCartItem(userEmail, itemId)
		return
	}
	item, ex, e := cs.cr.GetCartItem(userEmail, itemId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrNotFoundError
		return
	}
	item.Quantity = quantity
	err = cs.cr.SetCartItem(userEmail, item)
	return
}

func (cs *CartService) RemoveCartItem(userEmail string, itemId string) (err error) {
	l := cs.locks.lock(userEmail)
	l.Lock()
	defer l.Unlock()

	err = cs.cr.RemoveCartItem(userEmail, itemId)
	return
}
