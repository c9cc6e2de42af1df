package services

import (
	"net/url"

	"github.com/Doneddie/kampala-closet/entities"
	"github.com/Doneddie/kampala-closet/models"
	"github.com/Doneddie/kampala-closet/repository"

	"go.uber.org/zap"
)

// CheckoutService turns the stored cart into a pre-filled WhatsApp message.
// There is no payment or order persistence behind it, the conversation is the
// checkout.
type CheckoutService struct {
	cr    repository.CartRepository
	phone string
}

func NewCheckoutService(cartRepo repository.CartRepository, whatsappPhone string) CheckoutService {
	return CheckoutService{
		cr:    cartRepo,
		phone: whatsappPhone,
	}
}

func (cks *CheckoutService) Checkout(userEmail string) (resp entities.CheckoutResponse, err error) {
	items, e := cks.cr.ListCartItems(userEmail)
	if e != nil {
		err = e
		return
	}
	if len(items) == 0 {
		zap.S().Errorf("Checkout: cart is empty")
		err = models.ErrBadRequest
		return
	}
	message := "Hi! I'd like to place an order:\n\n" +
		BuildOrderSummary(items) +
		"\n\nPlease let me know about delivery/pickup options."
	resp = entities.CheckoutResponse{
		Message: message,
		Url:     "https://wa.me/" + cks.phone + "?text=" + url.QueryEscape(message),
	}
	return
}
