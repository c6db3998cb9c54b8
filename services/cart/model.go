package cart

import (
	"fmt"
)

// StorageKey is the local-storage key under which the cart is persisted as a json array.
const StorageKey = "@RocketShoes:cart"

// Product is a catalog product together with the amount the shopper wants to buy.
type Product struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Amount int     `json:"amount"`
}

type UpdateProductAmount struct {
	ProductID int
	Amount    int
}

// Notice is the message shown to the shopper when a cart operation fails.
type Notice string

const (
	NoticeOutOfStock   Notice = "Quantidade solicitada fora de estoque"
	NoticeAddFailed    Notice = "Erro na adição do produto"
	NoticeRemoveFailed Notice = "Erro na remoção do produto"
	NoticeUpdateFailed Notice = "Erro na alteração de quantidade do produto"
)

type NoticeError struct {
	Notice Notice
	Err    error
}

func (e *NoticeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Notice, e.Err)
}

func (e *NoticeError) Unwrap() error {
	return e.Err
}

func (e *NoticeError) GetNotice() string {
	return string(e.Notice)
}

func indexOf(products []Product, productID int) int {
	for i, p := range products {
		if p.ID == productID {
			return i
		}
	}
	return -1
}
