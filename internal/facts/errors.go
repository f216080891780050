package facts

import (
	"errors"
	"net/http"
)

// ErrEmptyDataset indicates the order_facts table holds no approved orders.
var ErrEmptyDataset = errors.New("no approved orders in dataset")

// MapHTTPStatus maps fact-loader errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyDataset) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
