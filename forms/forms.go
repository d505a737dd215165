package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ash2code/minishop/models"
)

// ProductDraft holds the raw text fields of the product creation form before
// parsing. Drafts are transient; they are discarded once a submit succeeds.
type ProductDraft struct {
	Name  string `form:"name"`
	Price string `form:"price"`
	Stock string `form:"stock"`
}

// ParseError reports a field whose raw text could not be parsed.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Validator parses and validates form drafts.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// ParseProduct converts a draft into a ProductCreate, failing fast on any
// non-numeric price/stock instead of forwarding garbage upstream.
func (v *Validator) ParseProduct(draft ProductDraft) (models.ProductCreate, error) {
	name := strings.TrimSpace(draft.Name)

	price, err := strconv.ParseFloat(strings.TrimSpace(draft.Price), 64)
	if err != nil {
		return models.ProductCreate{}, &ParseError{Field: "price", Value: draft.Price, Err: err}
	}

	stock, err := strconv.Atoi(strings.TrimSpace(draft.Stock))
	if err != nil {
		return models.ProductCreate{}, &ParseError{Field: "stock", Value: draft.Stock, Err: err}
	}

	product := models.ProductCreate{
		Name:  name,
		Price: price,
		Stock: stock,
	}
	if err := v.validate.Struct(product); err != nil {
		return models.ProductCreate{}, err
	}
	return product, nil
}
