package product

import (
	"bytes"
	"errors"

	"productdesk/internal/jsonutil"
)

// DecodeList decodes a /viewall response. The API sometimes answers with a
// bare object instead of an array; that is normalized to a one-element list.
func DecodeList(data []byte) ([]Product, error) {
	products, err := jsonutil.UnmarshalOneOrMany[Product](data, "product list")
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return products, nil
}

// DecodeOne decodes a /product/{id} response.
func DecodeOne(data []byte) (Product, error) {
	if string(bytes.TrimSpace(data)) == "null" {
		return Product{}, &DecodeError{Err: errors.New("product: null document")}
	}
	var p Product
	if err := jsonutil.UnmarshalWithContext(data, &p, "product"); err != nil {
		return Product{}, &DecodeError{Err: err}
	}
	return p, nil
}
